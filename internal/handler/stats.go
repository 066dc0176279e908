// internal/handler/stats.go
package handler

import (
	"net/http"
	"strconv"

	"finance-tracker/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BalanceResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// Balance godoc
// @Summary Income, expense and net balance for a date range (max 90 days)
// @Param from query string true "Start date"
// @Param to query string true "End date"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/stats/balance [get]
func (h *Handler) Balance(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	b, err := h.ledger.Balance(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, "Balance", userID, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Income: b.Income, Expense: b.Expense, Balance: b.Net()})
}

func (h *Handler) CategoryStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	stats, err := h.ledger.CategoryStats(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, "CategoryStats", userID, err)
		return
	}
	if stats == nil {
		stats = []domain.CategoryStat{}
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) HistoryPeriods(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	years, err := h.ledger.HistoryPeriods(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "HistoryPeriods", userID, err)
		return
	}
	c.JSON(http.StatusOK, years)
}

// History godoc
// @Summary Chart data for a year (12 points) or a month (one point per day)
// @Param timeframe query string true "month or year"
// @Param year query int true "Year"
// @Param month query int false "Month 1-12, required for timeframe=month"
// @Success 200 {array} domain.HistoryPoint
// @Router /api/v1/history [get]
func (h *Handler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year query param must be a number"})
		return
	}
	var month int
	if m := c.Query("month"); m != "" {
		if month, err = strconv.Atoi(m); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month query param must be a number"})
			return
		}
	}

	points, err := h.ledger.History(c.Request.Context(), userID, domain.Timeframe(c.Query("timeframe")), domain.Period{Year: year, Month: month})
	if err != nil {
		respondError(c, "History", userID, err)
		return
	}
	c.JSON(http.StatusOK, points)
}
