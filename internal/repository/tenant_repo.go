package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brokerdesk/backend/internal/model"
)

type tenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) GetBySlug(slug string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.db.Where("slug = ?", slug).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetByUserID 先取用户 Profile，再按 profile.tenant_id 取租户
func (r *tenantRepository) GetByUserID(userID string) (*model.Tenant, error) {
	var profile model.Profile
	err := r.db.Select("tenant_id").Where("id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && profile.TenantID == "") {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var tenant model.Tenant
	err = r.db.Where("id = ?", profile.TenantID).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepository) GetProfile(tenantID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Where("tenant_id = ? AND role = ?", tenantID, "admin").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *tenantRepository) GetProfileByPhone(phone string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Where("phone = ?", phone).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *tenantRepository) CreateTenant(tenant *model.Tenant) error {
	if tenant.ID == "" {
		tenant.ID = uuid.NewString()
	}
	return r.db.Create(tenant).Error
}

func (r *tenantRepository) CreateProfile(profile *model.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	return r.db.Create(profile).Error
}
