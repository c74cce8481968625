package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/brokerdesk/backend/internal/eventbus"
	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/repository"
	"github.com/brokerdesk/backend/internal/service"
)

func newInquiryTestRouter(t *testing.T) (*gin.Engine, *service.AuthService, repository.TenantRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Tenant{}, &model.Profile{}, &model.Inquiry{},
		&model.Customer{}, &model.CustomerInteraction{},
	); err != nil {
		t.Fatalf("migrate error: %v", err)
	}

	tenantRepo := repository.NewTenantRepository(db)
	inquiryService := service.NewInquiryService(
		repository.NewInquiryRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewInteractionRepository(db),
		eventbus.NewInquiryEventBus(),
	)
	authService := service.NewAuthService(tenantRepo, "test-secret", time.Hour)
	h := NewInquiryHandler(inquiryService, nil)

	r := gin.New()
	r.POST("/api/inquiries", h.Submit)
	admin := r.Group("/api/admin", AuthMiddleware(authService))
	admin.GET("/inquiries", h.List)
	return r, authService, tenantRepo
}

func TestInquirySubmitEndpoint(t *testing.T) {
	r, _, _ := newInquiryTestRouter(t)

	body, _ := json.Marshal(map[string]any{
		"tenant_id":     "t1",
		"customer_name": "张三",
		"phone":         "13800000000",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var inquiry model.Inquiry
	if err := json.Unmarshal(w.Body.Bytes(), &inquiry); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if inquiry.Subject != service.DefaultInquirySubject || inquiry.Status != model.InquiryStatusPending {
		t.Fatalf("unexpected inquiry: %+v", inquiry)
	}
}

func TestInquirySubmitEndpointRejectsMissingFields(t *testing.T) {
	r, _, _ := newInquiryTestRouter(t)

	body, _ := json.Marshal(map[string]any{"tenant_id": "t1"})
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r, authService, tenantRepo := newInquiryTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	tenant := &model.Tenant{Name: "经纪人", Slug: "broker"}
	if err := tenantRepo.CreateTenant(tenant); err != nil {
		t.Fatalf("create tenant error: %v", err)
	}
	hash, err := service.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if err := tenantRepo.CreateProfile(&model.Profile{
		TenantID: tenant.ID, Role: "admin", Phone: "13800000000", PasswordHash: hash,
	}); err != nil {
		t.Fatalf("create profile error: %v", err)
	}
	token, _, err := authService.Login("13800000000", "secret123")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", w.Code, w.Body.String())
	}
}
