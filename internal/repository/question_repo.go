package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brokerdesk/backend/internal/model"
)

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// List 返回租户自定义题加系统默认题（tenant_id IS NULL），按 sort_order 升序。
// tenantID 为空串时只返回系统默认题。
func (r *questionRepository) List(tenantID string) ([]model.AssessmentQuestion, error) {
	var questions []model.AssessmentQuestion
	query := r.db.Order("sort_order asc, created_at asc")
	if tenantID != "" {
		query = query.Where("tenant_id = ? OR tenant_id IS NULL", tenantID)
	} else {
		query = query.Where("tenant_id IS NULL")
	}
	err := query.Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Get(id string) (*model.AssessmentQuestion, error) {
	var q model.AssessmentQuestion
	err := r.db.First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) Upsert(q *model.AssessmentQuestion) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
		if q.CreatedAt.IsZero() {
			q.CreatedAt = time.Now()
		}
		return r.db.Create(q).Error
	}
	return r.db.Save(q).Error
}

func (r *questionRepository) Delete(id string) error {
	return r.db.Delete(&model.AssessmentQuestion{}, "id = ?", id).Error
}
