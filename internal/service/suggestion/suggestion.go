package suggestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrProviderNotConfigured = errors.New("suggestion provider endpoint not configured")

// Suggestion 运营内容建议条目，供后台编辑方案与科普文案时参考
type Suggestion struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
}

// Provider 内容建议源
type Provider interface {
	Suggest(ctx context.Context, category string, limit int) ([]Suggestion, error)
}

// StaticProvider 内置建议库，无外部依赖，作为兜底数据源
type StaticProvider struct {
	entries []Suggestion
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{entries: builtinSuggestions}
}

func (p *StaticProvider) Suggest(_ context.Context, category string, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		limit = 10
	}
	result := make([]Suggestion, 0, limit)
	for _, entry := range p.entries {
		if category != "" && entry.Category != category {
			continue
		}
		result = append(result, entry)
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

var builtinSuggestions = []Suggestion{
	{Category: "重疾", Title: "重疾险保额怎么定", Summary: "建议覆盖 3-5 年家庭支出，优先考虑收入中断风险。", Source: "builtin"},
	{Category: "重疾", Title: "多次赔付是否值得加钱", Summary: "预算有限时先把单次赔付保额做足，再考虑多次赔付。", Source: "builtin"},
	{Category: "医疗", Title: "百万医疗的免赔额", Summary: "常见一万元免赔额，小额门诊住院需另行规划。", Source: "builtin"},
	{Category: "医疗", Title: "续保条款怎么看", Summary: "关注保证续保期限与停售后的转保安排。", Source: "builtin"},
	{Category: "养老", Title: "年金险的适用人群", Summary: "适合已有基础保障、追求确定性现金流的家庭。", Source: "builtin"},
	{Category: "意外", Title: "意外险的职业类别", Summary: "高危职业投保前先核对职业类别表，避免拒赔。", Source: "builtin"},
}

// RemoteProvider 调用外部建议服务，未配置 endpoint 时直接返回错误
type RemoteProvider struct {
	client   *resty.Client
	endpoint string
}

func NewRemoteProvider(endpoint string, timeout time.Duration) *RemoteProvider {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &RemoteProvider{client: client, endpoint: endpoint}
}

func (p *RemoteProvider) Suggest(ctx context.Context, category string, limit int) ([]Suggestion, error) {
	if p.endpoint == "" {
		return nil, ErrProviderNotConfigured
	}
	if limit <= 0 {
		limit = 10
	}
	var result []Suggestion
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("category", category).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		SetResult(&result).
		Get(p.endpoint)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("suggestion service returned %s", resp.Status())
	}
	return result, nil
}

// FallbackProvider 优先远端，失败或未配置时退回静态库
type FallbackProvider struct {
	primary  Provider
	fallback Provider
}

func NewFallbackProvider(primary, fallback Provider) *FallbackProvider {
	return &FallbackProvider{primary: primary, fallback: fallback}
}

func (p *FallbackProvider) Suggest(ctx context.Context, category string, limit int) ([]Suggestion, error) {
	result, err := p.primary.Suggest(ctx, category, limit)
	if err == nil {
		return result, nil
	}
	return p.fallback.Suggest(ctx, category, limit)
}
