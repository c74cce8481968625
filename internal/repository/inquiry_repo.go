package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brokerdesk/backend/internal/model"
)

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) List(tenantID string) ([]model.Inquiry, error) {
	var inquiries []model.Inquiry
	query := r.db.Order("created_at desc")
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	err := query.Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepository) Get(id string) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	err := r.db.First(&inquiry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) Create(inquiry *model.Inquiry) error {
	if inquiry.ID == "" {
		inquiry.ID = uuid.NewString()
	}
	if inquiry.CreatedAt.IsZero() {
		inquiry.CreatedAt = time.Now()
	}
	return r.db.Create(inquiry).Error
}

// UpdateStatus 部分更新，不校验状态迁移是否合法（任意状态可达任意状态）
func (r *inquiryRepository) UpdateStatus(id, status, notes string) error {
	updates := map[string]any{"status": status}
	if notes != "" {
		updates["handling_notes"] = notes
	}
	result := r.db.Model(&model.Inquiry{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inquiryRepository) MarkTransferred(id string) error {
	return r.db.Model(&model.Inquiry{}).Where("id = ?", id).Update("is_transferred", true).Error
}

func (r *inquiryRepository) Delete(id string) error {
	return r.db.Delete(&model.Inquiry{}, "id = ?", id).Error
}
