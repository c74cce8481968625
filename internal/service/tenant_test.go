package service

import (
	"testing"

	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/repository"
)

func seedTenantWithProfile(t *testing.T, repo repository.TenantRepository, name, slug, phone string) (*model.Tenant, *model.Profile) {
	t.Helper()
	tenant := &model.Tenant{Name: name, Slug: slug}
	if err := repo.CreateTenant(tenant); err != nil {
		t.Fatalf("create tenant error: %v", err)
	}
	profile := &model.Profile{TenantID: tenant.ID, Role: "admin", Phone: phone, FullName: name}
	if err := repo.CreateProfile(profile); err != nil {
		t.Fatalf("create profile error: %v", err)
	}
	return tenant, profile
}

func TestTenantResolveSlugWinsOverLogin(t *testing.T) {
	tenantRepo := repository.NewTenantRepository(newServiceTestDB(t))
	shared, _ := seedTenantWithProfile(t, tenantRepo, "分享经纪人", "shared", "13800000001")
	_, ownProfile := seedTenantWithProfile(t, tenantRepo, "登录经纪人", "mine", "13800000002")

	svc := NewTenantService(tenantRepo)

	// 已登录用户打开别人的分享链接，看到的是分享租户的落地页
	view, err := svc.Resolve("shared", ownProfile.ID)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if view.Tenant == nil || view.Tenant.ID != shared.ID {
		t.Fatalf("expected shared tenant, got %+v", view.Tenant)
	}
	if view.ViewMode != ViewModeLanding || !view.IsSharedView {
		t.Fatalf("expected shared landing view, got %+v", view)
	}
	if view.Profile == nil || view.Profile.TenantID != shared.ID {
		t.Fatalf("expected shared tenant profile, got %+v", view.Profile)
	}
}

func TestTenantResolveUnknownSlugFallsThrough(t *testing.T) {
	tenantRepo := repository.NewTenantRepository(newServiceTestDB(t))
	own, ownProfile := seedTenantWithProfile(t, tenantRepo, "登录经纪人", "mine", "13800000002")

	svc := NewTenantService(tenantRepo)

	// 未登录 + slug 未命中 -> 登录页
	view, err := svc.Resolve("no-such-slug", "")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if view.ViewMode != ViewModeLogin || view.Tenant != nil {
		t.Fatalf("expected login view, got %+v", view)
	}

	// 已登录 + slug 未命中 -> 本人落地页
	view, err = svc.Resolve("no-such-slug", ownProfile.ID)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if view.ViewMode != ViewModeLanding || view.IsSharedView {
		t.Fatalf("expected own landing view, got %+v", view)
	}
	if view.Tenant == nil || view.Tenant.ID != own.ID {
		t.Fatalf("expected own tenant, got %+v", view.Tenant)
	}
}

func TestTenantResolveLoginWithoutTenant(t *testing.T) {
	tenantRepo := repository.NewTenantRepository(newServiceTestDB(t))
	svc := NewTenantService(tenantRepo)

	// 登录态指向不存在的用户：落地页但无租户，前端按默认内容渲染
	view, err := svc.Resolve("", "ghost-user")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if view.ViewMode != ViewModeLanding || view.Tenant != nil || view.Profile != nil {
		t.Fatalf("expected empty landing view, got %+v", view)
	}
}

func TestTenantResolveDeterministic(t *testing.T) {
	tenantRepo := repository.NewTenantRepository(newServiceTestDB(t))
	seedTenantWithProfile(t, tenantRepo, "分享经纪人", "shared", "13800000001")

	svc := NewTenantService(tenantRepo)
	first, err := svc.Resolve("shared", "")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := svc.Resolve("shared", "")
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if again.Tenant.ID != first.Tenant.ID || again.ViewMode != first.ViewMode {
			t.Fatalf("resolution not stable: %+v vs %+v", again, first)
		}
	}
}
