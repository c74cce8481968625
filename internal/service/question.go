package service

import (
	"errors"

	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/repository"
)

var (
	ErrQuestionRequired    = errors.New("question text is required")
	ErrInvalidInputType    = errors.New("unknown question input type")
	ErrOptionsRequired     = errors.New("choice questions require at least one option")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrSystemQuestionWrite = errors.New("system template questions cannot be modified")
)

// QuestionService 评估题目配置。系统默认题（tenant_id 为空）对运营只读。
type QuestionService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// List 返回租户题目加系统默认题，已按 sort_order 排好
func (s *QuestionService) List(tenantID string) ([]model.AssessmentQuestion, error) {
	return s.questionRepo.List(tenantID)
}

// Upsert 选项型问题必须带非空 options；其他题型忽略 options
func (s *QuestionService) Upsert(tenantID string, q *model.AssessmentQuestion) (*model.AssessmentQuestion, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	if q.Question == "" {
		return nil, ErrQuestionRequired
	}
	switch q.InputType {
	case model.InputTypeText, model.InputTypeNumber, model.InputTypeDate:
		q.Options = nil
	case model.InputTypeSingleChoice, model.InputTypeMultipleChoice:
		if len(q.Options) == 0 {
			return nil, ErrOptionsRequired
		}
	default:
		return nil, ErrInvalidInputType
	}

	if q.ID != "" {
		existing, err := s.questionRepo.Get(q.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		if err != nil {
			return nil, err
		}
		if existing.TenantID == nil || *existing.TenantID != tenantID {
			return nil, ErrSystemQuestionWrite
		}
	}
	q.TenantID = &tenantID

	if err := s.questionRepo.Upsert(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(tenantID, id string) error {
	existing, err := s.questionRepo.Get(id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrQuestionNotFound
	}
	if err != nil {
		return err
	}
	if existing.TenantID == nil || *existing.TenantID != tenantID {
		return ErrSystemQuestionWrite
	}
	return s.questionRepo.Delete(id)
}
