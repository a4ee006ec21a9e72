package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allworkdone/skills-exchange/internal/exchange"
	"github.com/allworkdone/skills-exchange/internal/matching"
)

// RequestExchange handles POST /api/exchanges.
func (h *Handler) RequestExchange(c *gin.Context) {
	var in exchange.RequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ex, chatID, err := h.Exchanges.Request(userID(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Exchange request sent",
		"exchange": ex,
		"chatId":   chatID,
	})
}

// ListExchanges handles GET /api/exchanges?status=...
func (h *Handler) ListExchanges(c *gin.Context) {
	exchanges, err := h.Exchanges.List(userID(c), c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exchanges)
}

type updateStatusInput struct {
	Status        string     `json:"status"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}

// UpdateExchangeStatus handles PUT /api/exchanges/:exchangeId.
func (h *Handler) UpdateExchangeStatus(c *gin.Context) {
	var in updateStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ex, err := h.Exchanges.UpdateStatus(c.Param("exchangeId"), userID(c), in.Status, in.ScheduledDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Exchange status updated",
		"exchange": ex,
	})
}

type submitReviewInput struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// SubmitReview handles POST /api/exchanges/:exchangeId/review.
func (h *Handler) SubmitReview(c *gin.Context) {
	var in submitReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ex, err := h.Exchanges.SubmitReview(c.Param("exchangeId"), userID(c), in.Rating, in.Review)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Review submitted successfully",
		"exchange": ex,
	})
}

// GetMatches handles GET /api/exchanges/matches.
func (h *Handler) GetMatches(c *gin.Context) {
	results, err := h.Exchanges.Matches(userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if results == nil {
		results = []matching.MatchResult{}
	}
	c.JSON(http.StatusOK, results)
}
