package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brokerdesk/backend/internal/service"
)

// AssessmentHandler 评估问卷会话接口，全部公开（访客即可做评估）
type AssessmentHandler struct {
	service *service.AssessmentService
}

func NewAssessmentHandler(service *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: service}
}

type startSessionRequest struct {
	TenantID string `json:"tenant_id"`
}

func (h *AssessmentHandler) Start(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.service.Start(req.TenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *AssessmentHandler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

type sessionInputRequest struct {
	Text string `json:"text"`
}

func (h *AssessmentHandler) SetInput(c *gin.Context) {
	var req sessionInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.service.SetInput(c.Param("id"), req.Text)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type sessionOptionRequest struct {
	Option string `json:"option"`
}

func (h *AssessmentHandler) ToggleOption(c *gin.Context) {
	var req sessionOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.service.ToggleOption(c.Param("id"), req.Option)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Advance 单选题在请求体里带 option，其余题型 body 可为空
func (h *AssessmentHandler) Advance(c *gin.Context) {
	var req sessionOptionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	view, err := h.service.Advance(c.Param("id"), req.Option)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AssessmentHandler) Abandon(c *gin.Context) {
	if err := h.service.Abandon(c.Param("id")); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session abandoned"})
}

func writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionNotActive),
		errors.Is(err, service.ErrAnswerRequired),
		errors.Is(err, service.ErrSelectionRequired),
		errors.Is(err, service.ErrInvalidOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
