package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brokerdesk/backend/internal/model"
)

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) List(tenantID string) ([]model.InsurancePlan, error) {
	var plans []model.InsurancePlan
	query := r.db.Order("created_at desc")
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	err := query.Find(&plans).Error
	return plans, err
}

func (r *planRepository) ListPublic(tenantID string) ([]model.InsurancePlan, error) {
	var plans []model.InsurancePlan
	query := r.db.Where("is_public = ?", true).Order("created_at desc")
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	err := query.Find(&plans).Error
	return plans, err
}

func (r *planRepository) Get(id string) (*model.InsurancePlan, error) {
	var plan model.InsurancePlan
	err := r.db.First(&plan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Upsert 无 ID 时插入并生成 ID，有 ID 时整行更新
func (r *planRepository) Upsert(plan *model.InsurancePlan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
		if plan.CreatedAt.IsZero() {
			plan.CreatedAt = time.Now()
		}
		return r.db.Create(plan).Error
	}
	return r.db.Save(plan).Error
}

func (r *planRepository) Delete(id string) error {
	return r.db.Delete(&model.InsurancePlan{}, "id = ?", id).Error
}

// SetLatest 同一事务内先清掉该租户的其他 is_latest，保证每租户最多一个最新方案
func (r *planRepository) SetLatest(tenantID, planID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.InsurancePlan{}).
			Where("tenant_id = ? AND is_latest = ?", tenantID, true).
			Update("is_latest", false).Error; err != nil {
			return err
		}

		result := tx.Model(&model.InsurancePlan{}).
			Where("id = ? AND tenant_id = ?", planID, tenantID).
			Update("is_latest", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
