package repository

import (
	"testing"
	"time"

	"github.com/brokerdesk/backend/internal/model"
)

func TestCustomerRepositoryStatusFilter(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))

	lead := &model.Customer{TenantID: "t1", FullName: "张三", Status: model.CustomerStatusLead}
	prospect := &model.Customer{TenantID: "t1", FullName: "李四", Status: model.CustomerStatusProspect}
	otherTenant := &model.Customer{TenantID: "t2", FullName: "王五", Status: model.CustomerStatusLead}
	for _, c := range []*model.Customer{lead, prospect, otherTenant} {
		if err := repo.Upsert(c); err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}

	leads, err := repo.List("t1", model.CustomerStatusLead)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(leads) != 1 || leads[0].ID != lead.ID {
		t.Fatalf("expected only tenant lead, got %+v", leads)
	}

	all, err := repo.List("t1", "")
	if err != nil {
		t.Fatalf("List all error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 tenant customers, got %d", len(all))
	}
}

func TestInteractionRepositoryListRecent(t *testing.T) {
	db := newTestDB(t)
	customerRepo := NewCustomerRepository(db)
	repo := NewInteractionRepository(db)

	customer := &model.Customer{TenantID: "t1", FullName: "张三"}
	if err := customerRepo.Upsert(customer); err != nil {
		t.Fatalf("seed customer error: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	for i, interactionType := range []string{
		model.InteractionTypeBrowsing,
		model.InteractionTypeInquiry,
		model.InteractionTypeCommunication,
	} {
		interaction := &model.CustomerInteraction{
			CustomerID: customer.ID,
			TenantID:   "t1",
			Type:       interactionType,
			Content:    map[string]any{"seq": i},
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(interaction); err != nil {
			t.Fatalf("seed interaction error: %v", err)
		}
	}

	recent, err := repo.ListRecent("t1", "", 2)
	if err != nil {
		t.Fatalf("ListRecent error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected limit 2, got %d", len(recent))
	}
	if recent[0].Type != model.InteractionTypeCommunication {
		t.Fatalf("expected newest first, got %q", recent[0].Type)
	}
	if recent[0].Customer == nil || recent[0].Customer.FullName != "张三" {
		t.Fatalf("expected customer preloaded, got %+v", recent[0].Customer)
	}

	inquiries, err := repo.ListRecent("t1", model.InteractionTypeInquiry, 10)
	if err != nil {
		t.Fatalf("ListRecent filtered error: %v", err)
	}
	if len(inquiries) != 1 || inquiries[0].Type != model.InteractionTypeInquiry {
		t.Fatalf("expected only inquiry interactions, got %+v", inquiries)
	}
}

func TestRelationshipRepositoryListFrom(t *testing.T) {
	db := newTestDB(t)
	customerRepo := NewCustomerRepository(db)
	repo := NewRelationshipRepository(db)

	from := &model.Customer{TenantID: "t1", FullName: "张三"}
	to := &model.Customer{TenantID: "t1", FullName: "张小三"}
	for _, c := range []*model.Customer{from, to} {
		if err := customerRepo.Upsert(c); err != nil {
			t.Fatalf("seed customer error: %v", err)
		}
	}

	rel := &model.CustomerRelationship{
		TenantID:          "t1",
		FromCustomerID:    from.ID,
		ToCustomerID:      to.ID,
		RelationshipType:  "child",
		RelationshipLabel: "长子",
	}
	if err := repo.Create(rel); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	rels, err := repo.ListFrom(from.ID)
	if err != nil {
		t.Fatalf("ListFrom error: %v", err)
	}
	if len(rels) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(rels))
	}
	if rels[0].RelatedCustomer == nil || rels[0].RelatedCustomer.FullName != "张小三" {
		t.Fatalf("expected related customer preloaded, got %+v", rels[0].RelatedCustomer)
	}

	// 反向不可见：单向边
	reverse, err := repo.ListFrom(to.ID)
	if err != nil {
		t.Fatalf("ListFrom reverse error: %v", err)
	}
	if len(reverse) != 0 {
		t.Fatalf("expected no reverse edge, got %+v", reverse)
	}
}
