// internal/handler/categories.go
package handler

import (
	"net/http"

	"finance-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

type UpdateCurrencyRequest struct {
	Currency string `json:"currency"`
}

func (h *Handler) ListCategories(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	cats, err := h.ledger.ListCategories(c.Request.Context(), userID, domain.TransactionType(c.Query("type")))
	if err != nil {
		respondError(c, "ListCategories", userID, err)
		return
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	c.JSON(http.StatusOK, cats)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req domain.NewCategory
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	cat, err := h.ledger.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, "CreateCategory", userID, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// DeleteCategory takes name and type as query params.
func (h *Handler) DeleteCategory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	name := c.Query("name")
	t := domain.TransactionType(c.Query("type"))
	if err := h.ledger.DeleteCategory(c.Request.Context(), userID, name, t); err != nil {
		respondError(c, "DeleteCategory", userID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) GetSettings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	us, err := h.ledger.GetSettings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "GetSettings", userID, err)
		return
	}
	c.JSON(http.StatusOK, us)
}

func (h *Handler) UpdateCurrency(c *gin.Context) {
	var req UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	us, err := h.ledger.UpdateCurrency(c.Request.Context(), userID, req.Currency)
	if err != nil {
		respondError(c, "UpdateCurrency", userID, err)
		return
	}
	c.JSON(http.StatusOK, us)
}
