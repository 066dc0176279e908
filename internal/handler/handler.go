// internal/handler/handler.go
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ledger *service.Ledger
}

func New(ledger *service.Ledger) *Handler {
	return &Handler{ledger: ledger}
}

// RegisterRoutes mounts the ledger endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.POST("/transactions", h.CreateTransaction)
	v1.GET("/transactions", h.ListTransactions)
	v1.DELETE("/transactions/:id", h.DeleteTransaction)

	v1.GET("/categories", h.ListCategories)
	v1.POST("/categories", h.CreateCategory)
	v1.DELETE("/categories", h.DeleteCategory)

	v1.GET("/settings", h.GetSettings)
	v1.PATCH("/settings/currency", h.UpdateCurrency)

	v1.GET("/stats/balance", h.Balance)
	v1.GET("/stats/categories", h.CategoryStats)

	v1.GET("/history/periods", h.HistoryPeriods)
	v1.GET("/history", h.History)
}

func currentUser(c *gin.Context) (int64, bool) {
	userIDVal, ok := c.Get(middleware.UserIDKey)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user_id missing"})
		return 0, false
	}
	id, ok := userIDVal.(int64)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "invalid user_id"})
		return 0, false
	}
	return id, true
}

// respondError maps domain errors to HTTP status codes.
func respondError(c *gin.Context, op string, userID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")})
	case errors.Is(err, domain.ErrCategoryNotFound), errors.Is(err, domain.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": rootMessage(err)})
	case errors.Is(err, domain.ErrCategoryExists):
		c.JSON(http.StatusConflict, gin.H{"error": rootMessage(err)})
	default:
		slog.Error(op+" failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func rootMessage(err error) string {
	for _, sentinel := range []error{domain.ErrCategoryNotFound, domain.ErrTransactionNotFound, domain.ErrCategoryExists} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

// parseDate accepts "2006-01-02" or RFC 3339.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseRange(c *gin.Context) (from, to time.Time, ok bool) {
	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query params required"})
		return from, to, false
	}
	from, err := parseDate(fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD or RFC 3339"})
		return from, to, false
	}
	to, err = parseDate(toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD or RFC 3339"})
		return from, to, false
	}
	// a bare date as upper bound covers the whole day
	if len(strings.TrimSpace(toStr)) == len(time.DateOnly) {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, true
}
