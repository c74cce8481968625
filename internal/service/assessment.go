package service

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/repository"
	"github.com/brokerdesk/backend/internal/service/statemachine"
)

// AnswerSeparator 多选答案序列化的统一分隔符
const AnswerSeparator = "、"

// 会话闲置超过该时长后在下次 Start 时被顺带清理，避免泄漏。
// 没有后台任务，清理完全是惰性的。
const sessionIdleTimeout = 24 * time.Hour

var (
	ErrSessionNotFound   = errors.New("assessment session not found")
	ErrSessionNotActive  = errors.New("assessment session is not in progress")
	ErrAnswerRequired    = errors.New("answer is required to advance")
	ErrSelectionRequired = errors.New("at least one option must be selected")
	ErrInvalidOption     = errors.New("option is not part of the current question")
)

// CompletionFunc 评估完成回调，每次完成恰好调用一次，收到完整的 问题->答案 表
type CompletionFunc func(tenantID string, answers map[string]string)

// assessmentSession 单次评估的全部临时状态。
// 答案以问题文本为键：后续的报告匹配与问卷回显都按文本取值，
// 同文异类的两道题会在表中互相覆盖（已知行为，见测试）。
type assessmentSession struct {
	id            string
	tenantID      string
	status        statemachine.SessionStatus
	questions     []model.AssessmentQuestion
	step          int
	answers       map[string]string
	tempText      string
	tempSelection []string
	lastActive    time.Time
}

// SessionView 会话对外快照
type SessionView struct {
	ID            string                    `json:"id"`
	Status        string                    `json:"status"`
	Step          int                       `json:"step"`
	Total         int                       `json:"total"`
	Question      *model.AssessmentQuestion `json:"question,omitempty"`
	TempSelection []string                  `json:"temp_selection,omitempty"`
	Answers       map[string]string         `json:"answers,omitempty"` // 仅完成时返回
}

// AssessmentService 风险评估问卷引擎。会话只存在于内存，不做持久化，
// 关闭即丢弃，重新打开从头开始。
type AssessmentService struct {
	questionRepo repository.QuestionRepository
	sm           *statemachine.SessionStateMachine

	mu         sync.Mutex
	sessions   map[string]*assessmentSession
	onComplete CompletionFunc
}

func NewAssessmentService(questionRepo repository.QuestionRepository) *AssessmentService {
	return &AssessmentService{
		questionRepo: questionRepo,
		sm:           statemachine.NewSessionStateMachine(),
		sessions:     make(map[string]*assessmentSession),
	}
}

// SetOnComplete 注册完成回调（应在服务启动装配阶段调用一次）
func (s *AssessmentService) SetOnComplete(fn CompletionFunc) {
	s.onComplete = fn
}

// Start 开启一次新评估：按租户加载题目快照，从第 0 题开始。
// 题目为空时会话停在 awaiting_questions 状态，不可作答。
func (s *AssessmentService) Start(tenantID string) (*SessionView, error) {
	questions, err := s.questionRepo.List(tenantID)
	if err != nil {
		return nil, err
	}

	session := &assessmentSession{
		id:         uuid.NewString(),
		tenantID:   tenantID,
		status:     statemachine.SessionStatusAwaiting,
		questions:  questions,
		answers:    make(map[string]string),
		lastActive: time.Now(),
	}
	if len(questions) > 0 {
		if err := s.sm.Transition(session.status, statemachine.SessionStatusInProgress, session.id); err != nil {
			return nil, err
		}
		session.status = statemachine.SessionStatusInProgress
	}

	s.mu.Lock()
	s.pruneIdleLocked()
	s.sessions[session.id] = session
	s.mu.Unlock()

	klog.V(6).Infof("评估会话已创建: sessionID=%s, tenantID=%s, questions=%d", session.id, tenantID, len(questions))
	return session.view(), nil
}

// Get 返回会话当前快照
func (s *AssessmentService) Get(sessionID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session.view(), nil
}

// SetInput 更新当前题的文本缓冲（text/number/date 型）
func (s *AssessmentService) SetInput(sessionID, text string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.status != statemachine.SessionStatusInProgress {
		return nil, ErrSessionNotActive
	}
	session.tempText = text
	session.lastActive = time.Now()
	return session.view(), nil
}

// ToggleOption 切换多选缓冲中某个选项的存在性，不推进步骤
func (s *AssessmentService) ToggleOption(sessionID, option string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.status != statemachine.SessionStatusInProgress {
		return nil, ErrSessionNotActive
	}
	question := session.questions[session.step]
	if question.InputType != model.InputTypeMultipleChoice {
		return nil, ErrInvalidOption
	}
	if !containsString(question.Options, option) {
		return nil, ErrInvalidOption
	}

	for i, selected := range session.tempSelection {
		if selected == option {
			session.tempSelection = append(session.tempSelection[:i], session.tempSelection[i+1:]...)
			session.lastActive = time.Now()
			return session.view(), nil
		}
	}
	session.tempSelection = append(session.tempSelection, option)
	session.lastActive = time.Now()
	return session.view(), nil
}

// Advance 推进一步。答案值按题型推导：
//   - text/number/date：取文本缓冲，空缓冲拒绝推进；
//   - single_choice：option 即答案，选中立即推进；
//   - multiple_choice：取多选缓冲按 AnswerSeparator 连接，空缓冲拒绝推进（确认按钮禁用的服务端等价物）。
//
// 记录答案后两个缓冲一并重置。走到最后一题则会话完成：回调收到完整答案表，会话销毁。
func (s *AssessmentService) Advance(sessionID, option string) (*SessionView, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if session.status != statemachine.SessionStatusInProgress {
		s.mu.Unlock()
		return nil, ErrSessionNotActive
	}

	question := session.questions[session.step]
	var answer string
	switch question.InputType {
	case model.InputTypeSingleChoice:
		if option == "" {
			s.mu.Unlock()
			return nil, ErrAnswerRequired
		}
		if !containsString(question.Options, option) {
			s.mu.Unlock()
			return nil, ErrInvalidOption
		}
		answer = option
	case model.InputTypeMultipleChoice:
		if len(session.tempSelection) == 0 {
			s.mu.Unlock()
			return nil, ErrSelectionRequired
		}
		answer = strings.Join(session.tempSelection, AnswerSeparator)
	default: // text, number, date
		if strings.TrimSpace(session.tempText) == "" {
			s.mu.Unlock()
			return nil, ErrAnswerRequired
		}
		answer = session.tempText
	}

	session.answers[question.Question] = answer
	session.tempText = ""
	session.tempSelection = nil
	session.lastActive = time.Now()

	if session.step < len(session.questions)-1 {
		session.step++
		view := session.view()
		s.mu.Unlock()
		return view, nil
	}

	// 最后一题：完成并销毁会话
	if err := s.sm.Transition(session.status, statemachine.SessionStatusCompleted, session.id); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	session.status = statemachine.SessionStatusCompleted
	answers := make(map[string]string, len(session.answers))
	for k, v := range session.answers {
		answers[k] = v
	}
	delete(s.sessions, session.id)
	view := &SessionView{
		ID:      session.id,
		Status:  string(session.status),
		Step:    session.step,
		Total:   len(session.questions),
		Answers: answers,
	}
	tenantID := session.tenantID
	onComplete := s.onComplete
	s.mu.Unlock()

	klog.V(6).Infof("评估完成: sessionID=%s, answers=%d", view.ID, len(answers))
	if onComplete != nil {
		onComplete(tenantID, answers)
	}
	return view, nil
}

// Abandon 放弃会话，丢弃全部已积累的答案
func (s *AssessmentService) Abandon(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if err := s.sm.Transition(session.status, statemachine.SessionStatusAbandoned, session.id); err != nil {
		return err
	}
	delete(s.sessions, sessionID)
	klog.V(6).Infof("评估会话已放弃: sessionID=%s", sessionID)
	return nil
}

// pruneIdleLocked 惰性清理长时间无活动的会话，调用方需持有锁
func (s *AssessmentService) pruneIdleLocked() {
	cutoff := time.Now().Add(-sessionIdleTimeout)
	for id, session := range s.sessions {
		if session.lastActive.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

func (session *assessmentSession) view() *SessionView {
	view := &SessionView{
		ID:     session.id,
		Status: string(session.status),
		Step:   session.step,
		Total:  len(session.questions),
	}
	if session.status == statemachine.SessionStatusInProgress {
		question := session.questions[session.step]
		view.Question = &question
		view.TempSelection = session.tempSelection
	}
	return view
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
