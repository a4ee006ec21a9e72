package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/allworkdone/skills-exchange/internal/apperr"
	"github.com/allworkdone/skills-exchange/internal/chathub"
	"github.com/allworkdone/skills-exchange/internal/chats"
	"github.com/allworkdone/skills-exchange/internal/exchange"
)

// Handler groups the HTTP surface over the core services.
type Handler struct {
	Exchanges *exchange.Service
	Chats     *chats.Service
	Hub       *chathub.Manager

	jwtSecret []byte
	log       *zap.SugaredLogger
}

func NewHandler(exchanges *exchange.Service, chatSvc *chats.Service, hub *chathub.Manager, jwtSecret []byte, log *zap.SugaredLogger) *Handler {
	return &Handler{
		Exchanges: exchanges,
		Chats:     chatSvc,
		Hub:       hub,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// RegisterRoutes mounts the REST surface and the WebSocket upgrade.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api", h.AuthRequired())
	{
		api.POST("/exchanges", h.RequestExchange)
		api.GET("/exchanges", h.ListExchanges)
		api.GET("/exchanges/matches", h.GetMatches)
		api.PUT("/exchanges/:exchangeId", h.UpdateExchangeStatus)
		api.POST("/exchanges/:exchangeId/review", h.SubmitReview)

		api.GET("/chats", h.ListChats)
		api.GET("/chats/:chatId", h.GetChat)
		api.POST("/chats/:chatId/messages", h.SendMessage)
		api.PUT("/chats/:chatId/read", h.MarkRead)
	}

	r.GET("/ws", h.ServeWebSocket)
}

// respondError maps the service error taxonomy onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperr.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	default:
		h.log.Errorw("internal error", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
