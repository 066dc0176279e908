// internal/handler/transactions.go
package handler

import (
	"log/slog"
	"net/http"

	"finance-tracker/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	Amount      decimal.Decimal        `json:"amount"`
	Date        string                 `json:"date"`
	Description string                 `json:"description"`
	Type        domain.TransactionType `json:"type"`
	Category    string                 `json:"category"`
}

// CreateTransaction godoc
// @Summary Record an income or expense
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	in := domain.NewTransaction{
		Amount:      req.Amount,
		Description: req.Description,
		Type:        req.Type,
		Category:    req.Category,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD or RFC 3339"})
			return
		}
		in.Date = date
	}

	t, err := h.ledger.CreateTransaction(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, "CreateTransaction", userID, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// ListTransactions godoc
// @Summary List transactions in a date range
// @Param from query string true "Start date"
// @Param to query string true "End date"
// @Success 200 {array} service.TransactionView
// @Router /api/v1/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	views, err := h.ledger.ListTransactions(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, "ListTransactions", userID, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a UUID"})
		return
	}

	if err := h.ledger.DeleteTransaction(c.Request.Context(), userID, id); err != nil {
		respondError(c, "DeleteTransaction", userID, err)
		return
	}
	slog.Debug("DeleteTransaction handled", "user_id", userID, "id", id)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
