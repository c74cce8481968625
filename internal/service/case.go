package service

import (
	"errors"

	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/repository"
)

var ErrCaseNotFound = errors.New("case not found")

// CaseService 理赔案例管理。归档的案例从公开视图隐藏但保留，可恢复。
type CaseService struct {
	caseRepo repository.CaseRepository
}

func NewCaseService(caseRepo repository.CaseRepository) *CaseService {
	return &CaseService{caseRepo: caseRepo}
}

func (s *CaseService) ListPublished(tenantID string) ([]model.Case, error) {
	return s.caseRepo.ListPublished(tenantID)
}

func (s *CaseService) List(tenantID string) ([]model.Case, error) {
	return s.caseRepo.List(tenantID)
}

func (s *CaseService) Upsert(c *model.Case) (*model.Case, error) {
	if c.Title == "" {
		return nil, ErrTitleRequired
	}
	if c.TenantID == "" {
		return nil, ErrTenantRequired
	}
	if err := s.caseRepo.Upsert(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CaseService) Delete(id string) error {
	return s.caseRepo.Delete(id)
}

func (s *CaseService) SetArchived(id string, archived bool) error {
	err := s.caseRepo.SetArchived(id, archived)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCaseNotFound
	}
	return err
}
