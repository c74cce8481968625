package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/service"
)

// CustomerHandler 客户中心接口
type CustomerHandler struct {
	service *service.CustomerService
}

func NewCustomerHandler(service *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.service.List(currentTenantID(c), c.Query("status"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCustomerStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.service.Get(c.Param("id"))
	if err != nil {
		writeCustomerError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Upsert(c *gin.Context) {
	var customer model.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer.TenantID = currentTenantID(c)
	saved, err := h.service.Upsert(&customer)
	if err != nil {
		writeCustomerError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

type updateCustomerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *CustomerHandler) UpdateStatus(c *gin.Context) {
	var req updateCustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.UpdateStatus(c.Param("id"), req.Status); err != nil {
		writeCustomerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

func (h *CustomerHandler) Interactions(c *gin.Context) {
	interactions, err := h.service.Interactions(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, interactions)
}

// RecentInteractions 全租户最近互动流（运营首页动态）
func (h *CustomerHandler) RecentInteractions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	interactions, err := h.service.RecentInteractions(currentTenantID(c), c.Query("type"), limit)
	if err != nil {
		writeCustomerError(c, err)
		return
	}
	c.JSON(http.StatusOK, interactions)
}

type logInteractionRequest struct {
	Type    string         `json:"type" binding:"required"`
	Content map[string]any `json:"content"`
}

func (h *CustomerHandler) LogInteraction(c *gin.Context) {
	var req logInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	interaction, err := h.service.LogInteraction(c.Param("id"), currentTenantID(c), req.Type, req.Content)
	if err != nil {
		writeCustomerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, interaction)
}

func (h *CustomerHandler) Relationships(c *gin.Context) {
	relationships, err := h.service.Relationships(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, relationships)
}

type addRelationshipRequest struct {
	ToCustomerID      string `json:"to_customer_id" binding:"required"`
	RelationshipType  string `json:"relationship_type" binding:"required"`
	RelationshipLabel string `json:"relationship_label"`
}

func (h *CustomerHandler) AddRelationship(c *gin.Context) {
	var req addRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rel, err := h.service.AddRelationship(currentTenantID(c), c.Param("id"), req.ToCustomerID, req.RelationshipType, req.RelationshipLabel)
	if err != nil {
		writeCustomerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rel)
}

func (h *CustomerHandler) DeleteRelationship(c *gin.Context) {
	if err := h.service.DeleteRelationship(c.Param("relId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func writeCustomerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCustomerStatus),
		errors.Is(err, service.ErrInvalidInteraction),
		errors.Is(err, service.ErrTenantRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
