package service

import (
	"context"
	"errors"
	"testing"

	"github.com/brokerdesk/backend/internal/eventbus"
	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/repository"
)

func newInquiryService(t *testing.T) (*InquiryService, repository.CustomerRepository, repository.InteractionRepository, *eventbus.InquiryEventBus) {
	t.Helper()
	db := newServiceTestDB(t)
	inquiryRepo := repository.NewInquiryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	bus := eventbus.NewInquiryEventBus()
	return NewInquiryService(inquiryRepo, customerRepo, interactionRepo, bus), customerRepo, interactionRepo, bus
}

func TestInquirySubmitRequiresTenant(t *testing.T) {
	svc, _, _, _ := newInquiryService(t)

	_, err := svc.Submit(context.Background(), CreateInquiryRequest{
		CustomerName: "张三",
		Phone:        "13800000000",
	})
	if !errors.Is(err, ErrTenantRequired) {
		t.Fatalf("expected ErrTenantRequired, got %v", err)
	}
}

func TestInquirySubmitDefaults(t *testing.T) {
	svc, _, _, bus := newInquiryService(t)

	var events []eventbus.InquiryEvent
	bus.Subscribe(eventbus.InquiryEventCreated, func(_ context.Context, e eventbus.InquiryEvent) error {
		events = append(events, e)
		return nil
	})

	inquiry, err := svc.Submit(context.Background(), CreateInquiryRequest{
		TenantID:     "t1",
		CustomerName: "张三",
		Phone:        "13800000000",
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if inquiry.Subject != DefaultInquirySubject {
		t.Fatalf("expected default subject, got %q", inquiry.Subject)
	}
	if inquiry.Status != model.InquiryStatusPending {
		t.Fatalf("expected pending, got %q", inquiry.Status)
	}
	if inquiry.AssessmentData == nil || len(inquiry.AssessmentData) != 0 {
		t.Fatalf("expected empty assessment data map, got %v", inquiry.AssessmentData)
	}
	if len(events) != 1 || events[0].InquiryID != inquiry.ID {
		t.Fatalf("expected created event, got %v", events)
	}
}

func TestInquiryUpdateStatusRejectsUnknown(t *testing.T) {
	svc, _, _, _ := newInquiryService(t)

	inquiry, err := svc.Submit(context.Background(), CreateInquiryRequest{
		TenantID: "t1", CustomerName: "张三", Phone: "13800000000",
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	if err := svc.UpdateStatus(inquiry.ID, "escalated", ""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if err := svc.UpdateStatus(inquiry.ID, model.InquiryStatusContacted, "已联系"); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
}

func TestInquiryTransfer(t *testing.T) {
	svc, customerRepo, interactionRepo, bus := newInquiryService(t)

	var transferEvents []eventbus.InquiryEvent
	bus.Subscribe(eventbus.InquiryEventTransferred, func(_ context.Context, e eventbus.InquiryEvent) error {
		transferEvents = append(transferEvents, e)
		return nil
	})

	inquiry, err := svc.Submit(context.Background(), CreateInquiryRequest{
		TenantID:     "t1",
		CustomerName: "张三",
		Phone:        "13800000000",
		Subject:      "重疾理赔咨询",
		AssessmentData: map[string]string{
			"您的年龄是？": "35",
		},
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	customer, err := svc.Transfer(context.Background(), inquiry.ID)
	if err != nil {
		t.Fatalf("Transfer error: %v", err)
	}
	if customer.Status != model.CustomerStatusProspect {
		t.Fatalf("expected prospect, got %q", customer.Status)
	}
	if customer.FullName != "张三" || customer.Phone != "13800000000" {
		t.Fatalf("unexpected customer: %+v", customer)
	}
	if customer.Metadata["source"] != "inquiry_transfer" {
		t.Fatalf("expected transfer metadata, got %v", customer.Metadata)
	}

	saved, err := customerRepo.Get(customer.ID)
	if err != nil {
		t.Fatalf("customer not persisted: %v", err)
	}
	if saved.Status != model.CustomerStatusProspect {
		t.Fatalf("unexpected persisted status: %q", saved.Status)
	}

	interactions, err := interactionRepo.ListByCustomer(customer.ID)
	if err != nil {
		t.Fatalf("ListByCustomer error: %v", err)
	}
	if len(interactions) != 1 || interactions[0].Type != model.InteractionTypeInquiry {
		t.Fatalf("expected one inquiry interaction, got %+v", interactions)
	}
	if interactions[0].Content["subject"] != "重疾理赔咨询" {
		t.Fatalf("expected subject carried over, got %v", interactions[0].Content)
	}

	closed, err := svc.Get(inquiry.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if closed.Status != model.InquiryStatusClosed || !closed.IsTransferred {
		t.Fatalf("expected closed + transferred, got status=%q transferred=%v", closed.Status, closed.IsTransferred)
	}
	if closed.HandlingNotes != TransferredNote {
		t.Fatalf("expected transfer note, got %q", closed.HandlingNotes)
	}

	if len(transferEvents) != 1 || transferEvents[0].CustomerID != customer.ID {
		t.Fatalf("expected transfer event, got %v", transferEvents)
	}
}
