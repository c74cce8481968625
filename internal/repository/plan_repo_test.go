package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/brokerdesk/backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Tenant{}, &model.Profile{},
		&model.InsurancePlan{}, &model.Case{}, &model.Inquiry{}, &model.AssessmentQuestion{},
		&model.Testimonial{}, &model.KnowledgeItem{},
		&model.Customer{}, &model.CustomerInteraction{}, &model.CustomerRelationship{}, &model.Contract{},
	); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

func TestPlanRepositoryUpsertRoundTrip(t *testing.T) {
	repo := NewPlanRepository(newTestDB(t))

	plan := &model.InsurancePlan{
		TenantID:  "t1",
		Title:     "百万医疗险",
		Type:      "医疗",
		Highlight: "住院全覆盖",
	}
	if err := repo.Upsert(plan); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if plan.ID == "" {
		t.Fatalf("expected generated id")
	}

	got, err := repo.Get(plan.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Title != "百万医疗险" || got.Type != "医疗" {
		t.Fatalf("unexpected plan: %+v", got)
	}

	got.Highlight = "门诊住院全覆盖"
	if err := repo.Upsert(got); err != nil {
		t.Fatalf("Upsert update error: %v", err)
	}
	updated, err := repo.Get(plan.ID)
	if err != nil {
		t.Fatalf("Get after update error: %v", err)
	}
	if updated.Highlight != "门诊住院全覆盖" {
		t.Fatalf("expected updated highlight, got %q", updated.Highlight)
	}
}

func TestPlanRepositorySetLatestSingleWinner(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlanRepository(db)

	planA := &model.InsurancePlan{TenantID: "t1", Title: "方案A", IsLatest: true}
	planB := &model.InsurancePlan{TenantID: "t1", Title: "方案B"}
	other := &model.InsurancePlan{TenantID: "t2", Title: "别家方案", IsLatest: true}
	for _, p := range []*model.InsurancePlan{planA, planB, other} {
		if err := repo.Upsert(p); err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}

	if err := repo.SetLatest("t1", planB.ID); err != nil {
		t.Fatalf("SetLatest error: %v", err)
	}

	var latest []model.InsurancePlan
	if err := db.Where("tenant_id = ? AND is_latest = ?", "t1", true).Find(&latest).Error; err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(latest) != 1 || latest[0].ID != planB.ID {
		t.Fatalf("expected single latest plan B, got %+v", latest)
	}

	// 其他租户的最新标记不受影响
	otherGot, err := repo.Get(other.ID)
	if err != nil {
		t.Fatalf("Get other error: %v", err)
	}
	if !otherGot.IsLatest {
		t.Fatalf("expected other tenant latest flag untouched")
	}

	// 跨租户指定不存在的组合
	if err := repo.SetLatest("t1", other.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlanRepositoryListPublic(t *testing.T) {
	repo := NewPlanRepository(newTestDB(t))

	public := &model.InsurancePlan{TenantID: "t1", Title: "公开方案", IsPublic: true, CreatedAt: time.Now().Add(-time.Hour)}
	hidden := &model.InsurancePlan{TenantID: "t1", Title: "内部方案", IsPublic: false}
	if err := repo.Upsert(public); err != nil {
		t.Fatalf("seed public error: %v", err)
	}
	if err := repo.Upsert(hidden); err != nil {
		t.Fatalf("seed hidden error: %v", err)
	}

	plans, err := repo.ListPublic("t1")
	if err != nil {
		t.Fatalf("ListPublic error: %v", err)
	}
	if len(plans) != 1 || plans[0].ID != public.ID {
		t.Fatalf("expected only public plan, got %+v", plans)
	}
}
