package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brokerdesk/backend/internal/model"
)

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) List(tenantID, status string) ([]model.Customer, error) {
	var customers []model.Customer
	query := r.db.Order("created_at desc")
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&customers).Error
	return customers, err
}

func (r *customerRepository) Get(id string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByPhone(tenantID, phone string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.Where("tenant_id = ? AND phone = ?", tenantID, phone).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Upsert(customer *model.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
		now := time.Now()
		if customer.CreatedAt.IsZero() {
			customer.CreatedAt = now
		}
		customer.UpdatedAt = now
		return r.db.Create(customer).Error
	}
	customer.UpdatedAt = time.Now()
	return r.db.Save(customer).Error
}

func (r *customerRepository) Update(id string, updates map[string]any) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&model.Customer{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) Delete(id string) error {
	return r.db.Delete(&model.Customer{}, "id = ?", id).Error
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) ListByCustomer(customerID string) ([]model.CustomerInteraction, error) {
	var interactions []model.CustomerInteraction
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&interactions).Error
	return interactions, err
}

// ListRecent 全租户最近事件流，带客户基本信息
func (r *interactionRepository) ListRecent(tenantID, interactionType string, limit int) ([]model.CustomerInteraction, error) {
	if limit <= 0 {
		limit = 50
	}
	var interactions []model.CustomerInteraction
	query := r.db.Preload("Customer").Order("created_at desc").Limit(limit)
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if interactionType != "" {
		query = query.Where("type = ?", interactionType)
	}
	err := query.Find(&interactions).Error
	return interactions, err
}

func (r *interactionRepository) Create(interaction *model.CustomerInteraction) error {
	if interaction.ID == "" {
		interaction.ID = uuid.NewString()
	}
	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now()
	}
	return r.db.Create(interaction).Error
}

type relationshipRepository struct {
	db *gorm.DB
}

func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

func (r *relationshipRepository) ListFrom(customerID string) ([]model.CustomerRelationship, error) {
	var rels []model.CustomerRelationship
	err := r.db.Preload("RelatedCustomer").
		Where("from_customer_id = ?", customerID).
		Find(&rels).Error
	return rels, err
}

// Create 只建单向边，不生成反向边，也不阻止自环（与历史行为一致）
func (r *relationshipRepository) Create(rel *model.CustomerRelationship) error {
	if rel.ID == "" {
		rel.ID = uuid.NewString()
	}
	if rel.CreatedAt.IsZero() {
		rel.CreatedAt = time.Now()
	}
	return r.db.Create(rel).Error
}

func (r *relationshipRepository) Delete(id string) error {
	return r.db.Delete(&model.CustomerRelationship{}, "id = ?", id).Error
}
