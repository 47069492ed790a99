package messages

import (
	"errors"
	"net/http"
	"strconv"

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
	r.POST("/messages/direct", h.sendDirect)
	r.GET("/messages/direct/:userId", h.conversation)
	r.DELETE("/messages/direct/:id", h.deleteDirect)
	r.POST("/messages/direct/:id/read", h.markRead)
	r.POST("/messages/group/:groupId", h.sendGroup)
	r.GET("/messages/group/:groupId", h.groupHistory)
	r.GET("/messages/chat", h.chatHistory)
}

func (h *Handler) sendDirect(c *gin.Context) {
	var input struct {
		ReceiverID string `json:"receiverId" binding:"required"`
		Content    string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.service.SendDirect(c.Request.Context(), c.GetString("userID"), input.ReceiverID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) conversation(c *gin.Context) {
	list, err := h.service.Conversation(c.Request.Context(), c.GetString("userID"), c.Param("userId"), limitParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) deleteDirect(c *gin.Context) {
	err := h.service.DeleteDirect(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) markRead(c *gin.Context) {
	err := h.service.MarkDirectRead(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

func (h *Handler) sendGroup(c *gin.Context) {
	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.service.SendGroup(c.Request.Context(), c.GetString("userID"), c.Param("groupId"), input.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) groupHistory(c *gin.Context) {
	list, err := h.service.GroupHistory(c.Request.Context(), c.GetString("userID"), c.Param("groupId"), limitParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) chatHistory(c *gin.Context) {
	list, err := h.service.ChatHistory(c.Request.Context(), c.GetString("userID"), limitParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func limitParam(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return limit
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, infrastructure.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, infrastructure.ErrUnauthorized), errors.Is(err, infrastructure.ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, infrastructure.ErrNotConnected):
		c.JSON(http.StatusForbidden, gin.H{"error": "users are not connected"})
	case errors.Is(err, infrastructure.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
