package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/brokerdesk/backend/internal/service"
)

// ContractHandler 合同档案接口
type ContractHandler struct {
	service *service.ContractService
}

func NewContractHandler(service *service.ContractService) *ContractHandler {
	return &ContractHandler{service: service}
}

func (h *ContractHandler) List(c *gin.Context) {
	if customerID := c.Query("customer_id"); customerID != "" {
		contracts, err := h.service.ListByCustomer(customerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, contracts)
		return
	}
	contracts, err := h.service.List(currentTenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, contracts)
}

// Upload multipart 上传。customer_id 可选，缺省进入公共合同库。
func (h *ContractHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	contract, err := h.service.Upload(currentTenantID(c), c.PostForm("customer_id"), fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrFileNameRequired), errors.Is(err, service.ErrTenantRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			klog.Errorf("合同上传失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *ContractHandler) Download(c *gin.Context) {
	contract, rc, err := h.service.Download(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrContractNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", contract.ContractName))
	c.Header("Content-Type", "application/octet-stream")
	if _, err := io.Copy(c.Writer, rc); err != nil {
		klog.Errorf("合同下载中断: id=%s, error=%v", contract.ID, err)
	}
}

type linkCustomerRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
}

func (h *ContractHandler) LinkCustomer(c *gin.Context) {
	var req linkCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.LinkCustomer(c.Param("id"), req.CustomerID); err != nil {
		switch {
		case errors.Is(err, service.ErrContractNotFound), errors.Is(err, service.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer linked"})
}

type updateContractStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ContractHandler) UpdateStatus(c *gin.Context) {
	var req updateContractStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.UpdateStatus(c.Param("id"), req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidContractStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrContractNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

func (h *ContractHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrContractNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
