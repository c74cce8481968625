package service

import (
	"errors"

	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/repository"
)

var (
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrInvalidCustomerStatus = errors.New("unknown customer status")
	ErrInvalidInteraction    = errors.New("unknown interaction type")
)

// CustomerService 客户中心：档案、互动流水、家庭关系
type CustomerService struct {
	customerRepo     repository.CustomerRepository
	interactionRepo  repository.InteractionRepository
	relationshipRepo repository.RelationshipRepository
}

func NewCustomerService(
	customerRepo repository.CustomerRepository,
	interactionRepo repository.InteractionRepository,
	relationshipRepo repository.RelationshipRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo:     customerRepo,
		interactionRepo:  interactionRepo,
		relationshipRepo: relationshipRepo,
	}
}

func (s *CustomerService) List(tenantID, status string) ([]model.Customer, error) {
	if status != "" && !validCustomerStatus(status) {
		return nil, ErrInvalidCustomerStatus
	}
	return s.customerRepo.List(tenantID, status)
}

func (s *CustomerService) Get(id string) (*model.Customer, error) {
	customer, err := s.customerRepo.Get(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCustomerNotFound
	}
	return customer, err
}

func (s *CustomerService) Upsert(customer *model.Customer) (*model.Customer, error) {
	if customer.TenantID == "" {
		return nil, ErrTenantRequired
	}
	if customer.Status == "" {
		customer.Status = model.CustomerStatusVisitor
	}
	if !validCustomerStatus(customer.Status) {
		return nil, ErrInvalidCustomerStatus
	}
	if err := s.customerRepo.Upsert(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateStatus 状态可任意调整，不强制 visitor->lead->prospect->contract_client 单向
func (s *CustomerService) UpdateStatus(id, status string) error {
	if !validCustomerStatus(status) {
		return ErrInvalidCustomerStatus
	}
	err := s.customerRepo.Update(id, map[string]any{"status": status})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCustomerNotFound
	}
	return err
}

func (s *CustomerService) Interactions(customerID string) ([]model.CustomerInteraction, error) {
	return s.interactionRepo.ListByCustomer(customerID)
}

func (s *CustomerService) RecentInteractions(tenantID, interactionType string, limit int) ([]model.CustomerInteraction, error) {
	if interactionType != "" && !validInteractionType(interactionType) {
		return nil, ErrInvalidInteraction
	}
	return s.interactionRepo.ListRecent(tenantID, interactionType, limit)
}

// LogInteraction 追加一条互动记录，流水只增不改
func (s *CustomerService) LogInteraction(customerID, tenantID, interactionType string, content map[string]any) (*model.CustomerInteraction, error) {
	if !validInteractionType(interactionType) {
		return nil, ErrInvalidInteraction
	}
	if _, err := s.Get(customerID); err != nil {
		return nil, err
	}
	interaction := &model.CustomerInteraction{
		CustomerID: customerID,
		TenantID:   tenantID,
		Type:       interactionType,
		Content:    content,
	}
	if err := s.interactionRepo.Create(interaction); err != nil {
		return nil, err
	}
	return interaction, nil
}

func (s *CustomerService) Relationships(customerID string) ([]model.CustomerRelationship, error) {
	return s.relationshipRepo.ListFrom(customerID)
}

// AddRelationship 单向边。不建反向边，不做环/自环校验（与既有数据模型一致）。
func (s *CustomerService) AddRelationship(tenantID, fromID, toID, relType, label string) (*model.CustomerRelationship, error) {
	if _, err := s.Get(fromID); err != nil {
		return nil, err
	}
	if _, err := s.Get(toID); err != nil {
		return nil, err
	}
	rel := &model.CustomerRelationship{
		TenantID:          tenantID,
		FromCustomerID:    fromID,
		ToCustomerID:      toID,
		RelationshipType:  relType,
		RelationshipLabel: label,
	}
	if err := s.relationshipRepo.Create(rel); err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *CustomerService) DeleteRelationship(id string) error {
	return s.relationshipRepo.Delete(id)
}

func validCustomerStatus(status string) bool {
	switch status {
	case model.CustomerStatusVisitor, model.CustomerStatusLead,
		model.CustomerStatusProspect, model.CustomerStatusContractClient:
		return true
	}
	return false
}

func validInteractionType(t string) bool {
	switch t {
	case model.InteractionTypeBrowsing, model.InteractionTypeInquiry,
		model.InteractionTypeCommunication, model.InteractionTypeManualLog:
		return true
	}
	return false
}
