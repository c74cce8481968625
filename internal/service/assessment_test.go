package service

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/repository"
)

func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Tenant{}, &model.Profile{},
		&model.InsurancePlan{}, &model.Case{}, &model.Inquiry{}, &model.AssessmentQuestion{},
		&model.Customer{}, &model.CustomerInteraction{}, &model.CustomerRelationship{}, &model.Contract{},
	); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

func seedAssessmentQuestions(t *testing.T, repo repository.QuestionRepository) {
	t.Helper()
	tenantID := "t1"
	questions := []*model.AssessmentQuestion{
		{TenantID: &tenantID, Question: "您的年龄是？", InputType: model.InputTypeNumber, Order: 1},
		{TenantID: &tenantID, Question: "您最关注哪类保障？", InputType: model.InputTypeSingleChoice,
			Options: []string{"重大疾病", "意外身故"}, Order: 2},
		{TenantID: &tenantID, Question: "家庭成员有哪些？", InputType: model.InputTypeMultipleChoice,
			Options: []string{"配偶", "子女", "父母"}, Order: 3},
	}
	for _, q := range questions {
		if err := repo.Upsert(q); err != nil {
			t.Fatalf("seed question error: %v", err)
		}
	}
}

func TestAssessmentFullFlow(t *testing.T) {
	questionRepo := repository.NewQuestionRepository(newServiceTestDB(t))
	seedAssessmentQuestions(t, questionRepo)

	svc := NewAssessmentService(questionRepo)
	var completedTenant string
	var completedAnswers map[string]string
	var completions int
	svc.SetOnComplete(func(tenantID string, answers map[string]string) {
		completions++
		completedTenant = tenantID
		completedAnswers = answers
	})

	view, err := svc.Start("t1")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if view.Status != "in_progress" || view.Step != 0 || view.Total != 3 {
		t.Fatalf("unexpected initial view: %+v", view)
	}
	if view.Question == nil || view.Question.Question != "您的年龄是？" {
		t.Fatalf("expected first question, got %+v", view.Question)
	}

	// 空缓冲不能推进
	if _, err := svc.Advance(view.ID, ""); !errors.Is(err, ErrAnswerRequired) {
		t.Fatalf("expected ErrAnswerRequired, got %v", err)
	}

	if _, err := svc.SetInput(view.ID, "35"); err != nil {
		t.Fatalf("SetInput error: %v", err)
	}
	step1, err := svc.Advance(view.ID, "")
	if err != nil {
		t.Fatalf("Advance text error: %v", err)
	}
	if step1.Step != 1 || step1.Question.InputType != model.InputTypeSingleChoice {
		t.Fatalf("unexpected view after text answer: %+v", step1)
	}

	// 单选：无选项或非法选项都拒绝，合法选项立即推进
	if _, err := svc.Advance(view.ID, ""); !errors.Is(err, ErrAnswerRequired) {
		t.Fatalf("expected ErrAnswerRequired, got %v", err)
	}
	if _, err := svc.Advance(view.ID, "不存在的选项"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	step2, err := svc.Advance(view.ID, "重大疾病")
	if err != nil {
		t.Fatalf("Advance single choice error: %v", err)
	}
	if step2.Step != 2 {
		t.Fatalf("expected step 2, got %d", step2.Step)
	}

	// 多选：空选择不能确认，选项可反选
	if _, err := svc.Advance(view.ID, ""); !errors.Is(err, ErrSelectionRequired) {
		t.Fatalf("expected ErrSelectionRequired, got %v", err)
	}
	if _, err := svc.ToggleOption(view.ID, "邻居"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	for _, option := range []string{"配偶", "子女", "父母"} {
		if _, err := svc.ToggleOption(view.ID, option); err != nil {
			t.Fatalf("ToggleOption error: %v", err)
		}
	}
	if _, err := svc.ToggleOption(view.ID, "父母"); err != nil {
		t.Fatalf("ToggleOption off error: %v", err)
	}

	final, err := svc.Advance(view.ID, "")
	if err != nil {
		t.Fatalf("Advance final error: %v", err)
	}
	if final.Status != "completed" {
		t.Fatalf("expected completed, got %q", final.Status)
	}
	if final.Answers["您的年龄是？"] != "35" {
		t.Fatalf("unexpected text answer: %q", final.Answers["您的年龄是？"])
	}
	if final.Answers["您最关注哪类保障？"] != "重大疾病" {
		t.Fatalf("unexpected single choice answer: %q", final.Answers["您最关注哪类保障？"])
	}
	if final.Answers["家庭成员有哪些？"] != "配偶、子女" {
		t.Fatalf("unexpected multi choice answer: %q", final.Answers["家庭成员有哪些？"])
	}

	if completions != 1 || completedTenant != "t1" || len(completedAnswers) != 3 {
		t.Fatalf("unexpected completion callback: n=%d tenant=%q answers=%v", completions, completedTenant, completedAnswers)
	}

	// 完成后会话销毁
	if _, err := svc.Get(view.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
}

func TestAssessmentAbandonDiscardsAnswers(t *testing.T) {
	questionRepo := repository.NewQuestionRepository(newServiceTestDB(t))
	seedAssessmentQuestions(t, questionRepo)

	svc := NewAssessmentService(questionRepo)
	var completions int
	svc.SetOnComplete(func(string, map[string]string) { completions++ })

	view, err := svc.Start("t1")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if _, err := svc.SetInput(view.ID, "40"); err != nil {
		t.Fatalf("SetInput error: %v", err)
	}
	if _, err := svc.Advance(view.ID, ""); err != nil {
		t.Fatalf("Advance error: %v", err)
	}

	if err := svc.Abandon(view.ID); err != nil {
		t.Fatalf("Abandon error: %v", err)
	}
	if _, err := svc.Get(view.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
	if completions != 0 {
		t.Fatalf("abandoned session must not trigger completion")
	}
}

func TestAssessmentStartWithoutQuestions(t *testing.T) {
	questionRepo := repository.NewQuestionRepository(newServiceTestDB(t))
	svc := NewAssessmentService(questionRepo)

	view, err := svc.Start("empty-tenant")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if view.Status != "awaiting_questions" || view.Total != 0 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if _, err := svc.SetInput(view.ID, "x"); !errors.Is(err, ErrSessionNotActive) {
		t.Fatalf("expected ErrSessionNotActive, got %v", err)
	}
	if _, err := svc.Advance(view.ID, ""); !errors.Is(err, ErrSessionNotActive) {
		t.Fatalf("expected ErrSessionNotActive, got %v", err)
	}
	// 空题目会话仍可放弃
	if err := svc.Abandon(view.ID); err != nil {
		t.Fatalf("Abandon error: %v", err)
	}
}

// 同文异类的两道题共用答案键，后答的覆盖先答的
func TestAssessmentDuplicateQuestionTextOverwrites(t *testing.T) {
	questionRepo := repository.NewQuestionRepository(newServiceTestDB(t))
	tenantID := "t1"
	for i, inputType := range []string{model.InputTypeText, model.InputTypeText} {
		q := &model.AssessmentQuestion{
			TenantID:  &tenantID,
			Question:  "备注",
			InputType: inputType,
			Order:     i,
		}
		if err := questionRepo.Upsert(q); err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}

	svc := NewAssessmentService(questionRepo)
	view, err := svc.Start(tenantID)
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if _, err := svc.SetInput(view.ID, "第一条"); err != nil {
		t.Fatalf("SetInput error: %v", err)
	}
	if _, err := svc.Advance(view.ID, ""); err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	if _, err := svc.SetInput(view.ID, "第二条"); err != nil {
		t.Fatalf("SetInput error: %v", err)
	}
	final, err := svc.Advance(view.ID, "")
	if err != nil {
		t.Fatalf("Advance final error: %v", err)
	}
	if len(final.Answers) != 1 || final.Answers["备注"] != "第二条" {
		t.Fatalf("expected later answer to win: %v", final.Answers)
	}
}
