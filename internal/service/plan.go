package service

import (
	"errors"

	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/repository"
)

var (
	ErrTitleRequired = errors.New("plan title is required")
	ErrPlanNotFound  = errors.New("plan not found")
)

// PlanService 方案目录管理。tenant_id 由调用方显式给定，不做隐式注入。
type PlanService struct {
	planRepo repository.PlanRepository
}

func NewPlanService(planRepo repository.PlanRepository) *PlanService {
	return &PlanService{planRepo: planRepo}
}

// ListPublic 访客视图：仅公开方案，tenantID 为空时返回默认全集
func (s *PlanService) ListPublic(tenantID string) ([]model.InsurancePlan, error) {
	return s.planRepo.ListPublic(tenantID)
}

func (s *PlanService) List(tenantID string) ([]model.InsurancePlan, error) {
	return s.planRepo.List(tenantID)
}

func (s *PlanService) Upsert(plan *model.InsurancePlan) (*model.InsurancePlan, error) {
	if plan.Title == "" {
		return nil, ErrTitleRequired
	}
	if plan.TenantID == "" {
		return nil, ErrTenantRequired
	}
	if err := s.planRepo.Upsert(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete 硬删除。被历史报告匹配引用过的方案删除后只是不再命中，
// 报告在读取时生成，没有悬挂引用需要清理。
func (s *PlanService) Delete(id string) error {
	return s.planRepo.Delete(id)
}

// SetLatest 数据层保证每租户最多一个 is_latest
func (s *PlanService) SetLatest(tenantID, planID string) error {
	err := s.planRepo.SetLatest(tenantID, planID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}
