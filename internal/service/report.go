package service

import (
	"strings"

	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/repository"
)

// 报告匹配的固定关键词词典。命中任一词即认为该关键词成立。
var reportKeywordMap = map[string][]string{
	"重疾": {"重大疾病", "癌症", "百万"},
	"医疗": {"门诊", "住院", "药"},
	"养老": {"退休", "教育", "理财"},
	"意外": {"身故", "骨折", "交通"},
}

// maxRecommendedPlans 报告最多展示的匹配方案数
const maxRecommendedPlans = 3

// knowledgeWordsPerPlan 展示用的"检索知识量"系数，与匹配质量无关
const knowledgeWordsPerPlan = 450

// Report 运营侧伪报告：关键词子串过滤，非评分检索
type Report struct {
	Inquiry          *model.Inquiry        `json:"inquiry"`
	FoundKeywords    []string              `json:"found_keywords"`
	RecommendedPlans []model.InsurancePlan `json:"recommended_plans"`
	KnowledgeVolume  int                   `json:"knowledge_volume"`
}

type ReportService struct {
	inquiryRepo repository.InquiryRepository
	planRepo    repository.PlanRepository
}

func NewReportService(inquiryRepo repository.InquiryRepository, planRepo repository.PlanRepository) *ReportService {
	return &ReportService{inquiryRepo: inquiryRepo, planRepo: planRepo}
}

// Build 按预约的评估答案生成报告。方案目录保持插入序，截断前 3 个命中项。
func (s *ReportService) Build(inquiryID string) (*Report, error) {
	inquiry, err := s.inquiryRepo.Get(inquiryID)
	if err != nil {
		return nil, err
	}
	plans, err := s.planRepo.List(inquiry.TenantID)
	if err != nil {
		return nil, err
	}

	found := findKeywords(inquiry.AssessmentData)
	recommended := RecommendPlans(plans, found)

	return &Report{
		Inquiry:          inquiry,
		FoundKeywords:    found,
		RecommendedPlans: recommended,
		KnowledgeVolume:  len(recommended) * knowledgeWordsPerPlan,
	}, nil
}

// findKeywords 对每条答案的字符串值做子串扫描，收集命中的词典键
func findKeywords(assessmentData map[string]string) []string {
	var found []string
	seen := make(map[string]bool)
	for _, answer := range assessmentData {
		for keyword, words := range reportKeywordMap {
			if seen[keyword] {
				continue
			}
			for _, word := range words {
				if strings.Contains(answer, word) {
					found = append(found, keyword)
					seen[keyword] = true
					break
				}
			}
		}
	}
	return found
}

// RecommendPlans 命中关键词是方案 type/title/highlight 的子串即入选，
// 目录序，最多 maxRecommendedPlans 个。零命中的方案永不展示。
func RecommendPlans(plans []model.InsurancePlan, keywords []string) []model.InsurancePlan {
	matched := make([]model.InsurancePlan, 0, maxRecommendedPlans)
	for _, plan := range plans {
		for _, keyword := range keywords {
			if strings.Contains(plan.Type, keyword) ||
				strings.Contains(plan.Title, keyword) ||
				strings.Contains(plan.Highlight, keyword) {
				matched = append(matched, plan)
				break
			}
		}
		if len(matched) == maxRecommendedPlans {
			break
		}
	}
	return matched
}
