package service

import (
	"context"
	"errors"

	"k8s.io/klog/v2"

	"github.com/brokerdesk/backend/internal/eventbus"
	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/repository"
)

var (
	ErrTenantRequired  = errors.New("tenant is required")
	ErrNameRequired    = errors.New("customer name is required")
	ErrPhoneRequired   = errors.New("phone is required")
	ErrInvalidStatus   = errors.New("unknown inquiry status")
	ErrInquiryNotFound = errors.New("inquiry not found")
)

// DefaultInquirySubject 预约表单的默认咨询主题
const DefaultInquirySubject = "家庭保障方案定制"

// TransferredNote 转入客户中心后写入的处理备注
const TransferredNote = "已转入客户中心"

type CreateInquiryRequest struct {
	TenantID       string            `json:"tenant_id"`
	CustomerName   string            `json:"customer_name" binding:"required"`
	Phone          string            `json:"phone" binding:"required"`
	Subject        string            `json:"subject"`
	AssessmentData map[string]string `json:"assessment_data"`
}

// InquiryService 预约/咨询流水线：提交、状态流转、转入客户中心
type InquiryService struct {
	inquiryRepo     repository.InquiryRepository
	customerRepo    repository.CustomerRepository
	interactionRepo repository.InteractionRepository
	bus             *eventbus.InquiryEventBus
}

func NewInquiryService(
	inquiryRepo repository.InquiryRepository,
	customerRepo repository.CustomerRepository,
	interactionRepo repository.InteractionRepository,
	bus *eventbus.InquiryEventBus,
) *InquiryService {
	return &InquiryService{
		inquiryRepo:     inquiryRepo,
		customerRepo:    customerRepo,
		interactionRepo: interactionRepo,
		bus:             bus,
	}
}

// Submit 提交预约。无租户上下文直接拒绝，不落任何数据。
// AssessmentData 可为空 map（未做评估直接预约）。
func (s *InquiryService) Submit(ctx context.Context, req CreateInquiryRequest) (*model.Inquiry, error) {
	if req.TenantID == "" {
		return nil, ErrTenantRequired
	}
	if req.CustomerName == "" {
		return nil, ErrNameRequired
	}
	if req.Phone == "" {
		return nil, ErrPhoneRequired
	}

	subject := req.Subject
	if subject == "" {
		subject = DefaultInquirySubject
	}
	assessmentData := req.AssessmentData
	if assessmentData == nil {
		assessmentData = map[string]string{}
	}

	inquiry := &model.Inquiry{
		TenantID:       req.TenantID,
		CustomerName:   req.CustomerName,
		Phone:          req.Phone,
		Subject:        subject,
		AssessmentData: assessmentData,
		Status:         model.InquiryStatusPending,
	}
	if err := s.inquiryRepo.Create(inquiry); err != nil {
		return nil, err
	}

	if err := s.bus.Publish(ctx, eventbus.InquiryEvent{
		Type:      eventbus.InquiryEventCreated,
		InquiryID: inquiry.ID,
		TenantID:  inquiry.TenantID,
		Subject:   inquiry.Subject,
	}); err != nil {
		klog.Errorf("发布预约创建事件失败: inquiryID=%s, error=%v", inquiry.ID, err)
	}

	klog.V(6).Infof("新预约已创建: inquiryID=%s, tenantID=%s", inquiry.ID, inquiry.TenantID)
	return inquiry, nil
}

func (s *InquiryService) List(tenantID string) ([]model.Inquiry, error) {
	return s.inquiryRepo.List(tenantID)
}

func (s *InquiryService) Get(id string) (*model.Inquiry, error) {
	inquiry, err := s.inquiryRepo.Get(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInquiryNotFound
	}
	return inquiry, err
}

// UpdateStatus 状态流转不做合法性校验：任意状态可以改为任意状态
func (s *InquiryService) UpdateStatus(id, status, notes string) error {
	switch status {
	case model.InquiryStatusPending, model.InquiryStatusContacted, model.InquiryStatusClosed:
	default:
		return ErrInvalidStatus
	}
	err := s.inquiryRepo.UpdateStatus(id, status, notes)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInquiryNotFound
	}
	return err
}

// Transfer 将咨询客户转入客户中心：建立 prospect 客户档案，
// 记录一条 inquiry 互动（携带主题、备注与评估数据），并关闭原预约。
func (s *InquiryService) Transfer(ctx context.Context, id string) (*model.Customer, error) {
	inquiry, err := s.inquiryRepo.Get(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInquiryNotFound
	}
	if err != nil {
		return nil, err
	}

	customer := &model.Customer{
		TenantID: inquiry.TenantID,
		FullName: inquiry.CustomerName,
		Phone:    inquiry.Phone,
		Status:   model.CustomerStatusProspect,
		Metadata: map[string]any{
			"source":           "inquiry_transfer",
			"original_subject": inquiry.Subject,
		},
	}
	if err := s.customerRepo.Upsert(customer); err != nil {
		return nil, err
	}

	notes := inquiry.HandlingNotes
	if notes == "" {
		notes = "从理赔咨询自动转入"
	}
	interaction := &model.CustomerInteraction{
		CustomerID: customer.ID,
		TenantID:   inquiry.TenantID,
		Type:       model.InteractionTypeInquiry,
		Content: map[string]any{
			"subject":         inquiry.Subject,
			"notes":           notes,
			"assessment_data": inquiry.AssessmentData,
		},
	}
	if err := s.interactionRepo.Create(interaction); err != nil {
		return nil, err
	}

	if err := s.inquiryRepo.UpdateStatus(id, model.InquiryStatusClosed, TransferredNote); err != nil {
		return nil, err
	}
	if err := s.inquiryRepo.MarkTransferred(id); err != nil {
		return nil, err
	}

	if err := s.bus.Publish(ctx, eventbus.InquiryEvent{
		Type:       eventbus.InquiryEventTransferred,
		InquiryID:  inquiry.ID,
		TenantID:   inquiry.TenantID,
		CustomerID: customer.ID,
		Subject:    inquiry.Subject,
	}); err != nil {
		klog.Errorf("发布转入事件失败: inquiryID=%s, error=%v", inquiry.ID, err)
	}

	klog.V(6).Infof("预约已转入客户中心: inquiryID=%s, customerID=%s", inquiry.ID, customer.ID)
	return customer, nil
}
