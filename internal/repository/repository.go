package repository

import (
	"errors"

	"github.com/brokerdesk/backend/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

// TenantRepository 租户与资料只读查询。租户的创建在本系统之外完成。
type TenantRepository interface {
	GetBySlug(slug string) (*model.Tenant, error)
	GetByUserID(userID string) (*model.Tenant, error)
	GetProfile(tenantID string) (*model.Profile, error)
	GetProfileByPhone(phone string) (*model.Profile, error)
	CreateTenant(tenant *model.Tenant) error
	CreateProfile(profile *model.Profile) error
}

// PlanRepository tenantID 为空串时返回全量（仅供已授权的运营流程使用）
type PlanRepository interface {
	List(tenantID string) ([]model.InsurancePlan, error)
	ListPublic(tenantID string) ([]model.InsurancePlan, error)
	Get(id string) (*model.InsurancePlan, error)
	Upsert(plan *model.InsurancePlan) error
	Delete(id string) error
	SetLatest(tenantID, planID string) error
}

type CaseRepository interface {
	List(tenantID string) ([]model.Case, error)
	ListPublished(tenantID string) ([]model.Case, error)
	Get(id string) (*model.Case, error)
	Upsert(c *model.Case) error
	Delete(id string) error
	SetArchived(id string, archived bool) error
}

type InquiryRepository interface {
	List(tenantID string) ([]model.Inquiry, error)
	Get(id string) (*model.Inquiry, error)
	Create(inquiry *model.Inquiry) error
	UpdateStatus(id, status, notes string) error
	MarkTransferred(id string) error
	Delete(id string) error
}

// QuestionRepository List 同时返回租户自定义题与系统默认题（tenant_id IS NULL）
type QuestionRepository interface {
	List(tenantID string) ([]model.AssessmentQuestion, error)
	Get(id string) (*model.AssessmentQuestion, error)
	Upsert(q *model.AssessmentQuestion) error
	Delete(id string) error
}

type CustomerRepository interface {
	List(tenantID, status string) ([]model.Customer, error)
	Get(id string) (*model.Customer, error)
	GetByPhone(tenantID, phone string) (*model.Customer, error)
	Upsert(customer *model.Customer) error
	Update(id string, updates map[string]any) error
	Delete(id string) error
}

type InteractionRepository interface {
	ListByCustomer(customerID string) ([]model.CustomerInteraction, error)
	ListRecent(tenantID, interactionType string, limit int) ([]model.CustomerInteraction, error)
	Create(interaction *model.CustomerInteraction) error
}

type RelationshipRepository interface {
	ListFrom(customerID string) ([]model.CustomerRelationship, error)
	Create(rel *model.CustomerRelationship) error
	Delete(id string) error
}

type ContractRepository interface {
	List(tenantID string) ([]model.Contract, error)
	ListByCustomer(customerID string) ([]model.Contract, error)
	Get(id string) (*model.Contract, error)
	Create(contract *model.Contract) error
	LinkCustomer(contractID, customerID string) error
	UpdateStatus(id, status string) error
	Delete(id string) error
}

type TestimonialRepository interface {
	ListPublic(tenantID string) ([]model.Testimonial, error)
}

type KnowledgeRepository interface {
	ListPublic(tenantID string) ([]model.KnowledgeItem, error)
}
