package service

import (
	"errors"

	"k8s.io/klog/v2"

	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/repository"
)

// ViewMode 页面视图态
type ViewMode string

const (
	ViewModeLanding ViewMode = "landing"
	ViewModeLogin   ViewMode = "login"
)

// ResolvedView 租户解析结果。ResolvedView 确定后下游内容拉取才允许发起。
type ResolvedView struct {
	Tenant       *model.Tenant  `json:"tenant"`
	Profile      *model.Profile `json:"profile"`
	ViewMode     ViewMode       `json:"view_mode"`
	IsSharedView bool           `json:"is_shared_view"`
}

// TenantService 解析当前请求可见的租户与视图态
type TenantService struct {
	tenantRepo repository.TenantRepository
}

func NewTenantService(tenantRepo repository.TenantRepository) *TenantService {
	return &TenantService{tenantRepo: tenantRepo}
}

// Resolve 按严格优先级解析视图，是 (slug, userID) 的纯函数：
//  1. slug 非空且命中租户：分享视图，忽略登录态，landing；
//     slug 未命中则静默落到下一级；
//  2. 无登录态：login；
//  3. 有登录态：取该用户名下租户（可能没有），landing。
//
// 解析过程只读，不产生任何写入。
func (s *TenantService) Resolve(slug, userID string) (*ResolvedView, error) {
	if slug != "" {
		tenant, err := s.tenantRepo.GetBySlug(slug)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if tenant != nil {
			view := &ResolvedView{
				Tenant:       tenant,
				ViewMode:     ViewModeLanding,
				IsSharedView: true,
			}
			profile, err := s.tenantRepo.GetProfile(tenant.ID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			view.Profile = profile
			klog.V(6).Infof("按 slug 解析到分享视图: slug=%s, tenantID=%s", slug, tenant.ID)
			return view, nil
		}
		klog.V(6).Infof("slug 未命中租户，降级继续解析: slug=%s", slug)
	}

	if userID == "" {
		return &ResolvedView{ViewMode: ViewModeLogin}, nil
	}

	view := &ResolvedView{ViewMode: ViewModeLanding}
	tenant, err := s.tenantRepo.GetByUserID(userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if tenant != nil {
		view.Tenant = tenant
		profile, err := s.tenantRepo.GetProfile(tenant.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		view.Profile = profile
	}
	// 用户名下没有租户时 tenant 保持为空，下游按"仅默认内容"拉取
	return view, nil
}
