package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brokerdesk/backend/internal/model"
)

type caseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &caseRepository{db: db}
}

func (r *caseRepository) List(tenantID string) ([]model.Case, error) {
	var cases []model.Case
	query := r.db.Order("created_at desc")
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	err := query.Find(&cases).Error
	return cases, err
}

// ListPublished 公开视图只展示未归档案例
func (r *caseRepository) ListPublished(tenantID string) ([]model.Case, error) {
	var cases []model.Case
	query := r.db.Where("is_archived = ?", false).Order("created_at desc")
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	err := query.Find(&cases).Error
	return cases, err
}

func (r *caseRepository) Get(id string) (*model.Case, error) {
	var c model.Case
	err := r.db.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) Upsert(c *model.Case) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now()
		}
		return r.db.Create(c).Error
	}
	return r.db.Save(c).Error
}

func (r *caseRepository) Delete(id string) error {
	return r.db.Delete(&model.Case{}, "id = ?", id).Error
}

func (r *caseRepository) SetArchived(id string, archived bool) error {
	result := r.db.Model(&model.Case{}).Where("id = ?", id).Update("is_archived", archived)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
