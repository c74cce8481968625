package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brokerdesk/backend/internal/model"
)

type contractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) List(tenantID string) ([]model.Contract, error) {
	var contracts []model.Contract
	query := r.db.Preload("Customer").Order("created_at desc")
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	err := query.Find(&contracts).Error
	return contracts, err
}

func (r *contractRepository) ListByCustomer(customerID string) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&contracts).Error
	return contracts, err
}

func (r *contractRepository) Get(id string) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.First(&contract, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) Create(contract *model.Contract) error {
	if contract.ID == "" {
		contract.ID = uuid.NewString()
	}
	now := time.Now()
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = now
	}
	contract.UpdatedAt = now
	return r.db.Create(contract).Error
}

func (r *contractRepository) LinkCustomer(contractID, customerID string) error {
	result := r.db.Model(&model.Contract{}).
		Where("id = ?", contractID).
		Updates(map[string]any{"customer_id": customerID, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *contractRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&model.Contract{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
}

func (r *contractRepository) Delete(id string) error {
	return r.db.Delete(&model.Contract{}, "id = ?", id).Error
}
