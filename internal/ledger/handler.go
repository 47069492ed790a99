package ledger

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ripple/infrastructure"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/reactions", h.react)
	r.GET("/reactions/:messageType/:messageId", h.list)
	r.POST("/receipts", h.markRead)
	r.GET("/receipts/:messageType/:messageId", h.receipts)
}

func (h *Handler) react(c *gin.Context) {
	var input struct {
		MessageID   string `json:"messageId" binding:"required"`
		MessageType string `json:"messageType" binding:"required"`
		Emoji       string `json:"emoji" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.service.React(c.Request.Context(), input.MessageID, input.MessageType, c.GetString("userID"), input.Emoji)
	if err != nil {
		respondError(c, err)
		return
	}

	counts, err := h.service.Counts(c.Request.Context(), input.MessageID, input.MessageType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome.String(), "counts": counts})
}

func (h *Handler) list(c *gin.Context) {
	reactions, err := h.service.Reactions(c.Request.Context(), c.Param("messageId"), c.Param("messageType"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reactions)
}

func (h *Handler) markRead(c *gin.Context) {
	var input struct {
		MessageIDs  []string `json:"messageIds" binding:"required"`
		MessageType string   `json:"messageType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.MarkRead(c.Request.Context(), c.GetString("userID"), input.MessageIDs, input.MessageType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) receipts(c *gin.Context) {
	receipts, err := h.service.Receipts(c.Request.Context(), c.Param("messageId"), c.Param("messageType"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipts)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, infrastructure.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
