package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brokerdesk/backend/internal/service"
)

// InquiryHandler 公开的预约提交与运营侧的预约处理
type InquiryHandler struct {
	inquiryService *service.InquiryService
	reportService  *service.ReportService
}

func NewInquiryHandler(inquiryService *service.InquiryService, reportService *service.ReportService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService, reportService: reportService}
}

// Submit 公开接口：落地页提交预约
func (h *InquiryHandler) Submit(c *gin.Context) {
	var req service.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inquiry, err := h.inquiryService.Submit(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTenantRequired),
			errors.Is(err, service.ErrNameRequired),
			errors.Is(err, service.ErrPhoneRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}

func (h *InquiryHandler) List(c *gin.Context) {
	inquiries, err := h.inquiryService.List(currentTenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

func (h *InquiryHandler) Get(c *gin.Context) {
	inquiry, err := h.inquiryService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrInquiryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

type updateInquiryStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	var req updateInquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.inquiryService.UpdateStatus(c.Param("id"), req.Status, req.Notes); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInquiryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

// Transfer 把预约转入客户中心
func (h *InquiryHandler) Transfer(c *gin.Context) {
	customer, err := h.inquiryService.Transfer(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrInquiryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "已转入客户中心",
		"customer": customer,
	})
}

// Report 按评估答案即时生成分析报告
func (h *InquiryHandler) Report(c *gin.Context) {
	report, err := h.reportService.Build(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// Export 导出当前租户全部预约为 xlsx
func (h *InquiryHandler) Export(c *gin.Context) {
	inquiries, err := h.inquiryService.List(currentTenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	buf, err := service.ExportInquiriesExcel(inquiries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	fileName := fmt.Sprintf("inquiries_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
