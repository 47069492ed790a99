package connections

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
	r.POST("/connections/request", h.request)
	r.POST("/connections/:id/accept", h.accept)
	r.POST("/connections/:id/decline", h.decline)
	r.GET("/connections", h.list)
	r.GET("/connections/pending", h.pending)
}

func (h *Handler) request(c *gin.Context) {
	var input struct {
		ReceiverID string `json:"receiverId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rel, err := h.service.Request(c.Request.Context(), c.GetString("userID"), input.ReceiverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rel)
}

func (h *Handler) accept(c *gin.Context) {
	rel, err := h.service.Accept(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rel)
}

func (h *Handler) decline(c *gin.Context) {
	if err := h.service.Decline(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "declined"})
}

func (h *Handler) list(c *gin.Context) {
	rels, err := h.service.ListAccepted(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rels)
}

func (h *Handler) pending(c *gin.Context) {
	rels, err := h.service.ListPending(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rels)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, infrastructure.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, infrastructure.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, infrastructure.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
