package repository

import (
	"gorm.io/gorm"

	"github.com/brokerdesk/backend/internal/model"
)

type testimonialRepository struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (r *testimonialRepository) ListPublic(tenantID string) ([]model.Testimonial, error) {
	var testimonials []model.Testimonial
	query := r.db.Where("is_public = ?", true).Order("created_at desc")
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	err := query.Find(&testimonials).Error
	return testimonials, err
}

type knowledgeRepository struct {
	db *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) KnowledgeRepository {
	return &knowledgeRepository{db: db}
}

func (r *knowledgeRepository) ListPublic(tenantID string) ([]model.KnowledgeItem, error) {
	var items []model.KnowledgeItem
	query := r.db.Where("is_public = ?", true).Order("created_at desc")
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	err := query.Find(&items).Error
	return items, err
}
