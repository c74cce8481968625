package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brokerdesk/backend/internal/repository"
	"github.com/brokerdesk/backend/internal/service"
)

// ViewHandler 落地页解析与公开内容
type ViewHandler struct {
	tenantService   *service.TenantService
	planService     *service.PlanService
	caseService     *service.CaseService
	testimonialRepo repository.TestimonialRepository
	knowledgeRepo   repository.KnowledgeRepository
}

func NewViewHandler(
	tenantService *service.TenantService,
	planService *service.PlanService,
	caseService *service.CaseService,
	testimonialRepo repository.TestimonialRepository,
	knowledgeRepo repository.KnowledgeRepository,
) *ViewHandler {
	return &ViewHandler{
		tenantService:   tenantService,
		planService:     planService,
		caseService:     caseService,
		testimonialRepo: testimonialRepo,
		knowledgeRepo:   knowledgeRepo,
	}
}

// Resolve 解析当前访问应呈现的视图。slug 来自查询参数，
// 登录态来自可选的 Authorization 头。
func (h *ViewHandler) Resolve(c *gin.Context) {
	view, err := h.tenantService.Resolve(c.Query("slug"), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// Plans 公开方案列表。tenant_id 为空时返回默认方案集。
func (h *ViewHandler) Plans(c *gin.Context) {
	plans, err := h.planService.ListPublic(c.Query("tenant_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plans)
}

// Cases 公开理赔案例列表（不含已归档）
func (h *ViewHandler) Cases(c *gin.Context) {
	cases, err := h.caseService.ListPublished(c.Query("tenant_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cases)
}

func (h *ViewHandler) Testimonials(c *gin.Context) {
	items, err := h.testimonialRepo.ListPublic(c.Query("tenant_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ViewHandler) Knowledge(c *gin.Context) {
	items, err := h.knowledgeRepo.ListPublic(c.Query("tenant_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}
