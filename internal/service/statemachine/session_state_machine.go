package statemachine

import (
	"fmt"

	"k8s.io/klog/v2"
)

// SessionStatus 定义评估会话的所有可能状态
type SessionStatus string

const (
	SessionStatusAwaiting   SessionStatus = "awaiting_questions" // 题目未加载或为空
	SessionStatusInProgress SessionStatus = "in_progress"        // 正在逐题作答
	SessionStatusCompleted  SessionStatus = "completed"          // 全部题目作答完毕
	SessionStatusAbandoned  SessionStatus = "abandoned"          // 用户中途关闭，答案丢弃
)

// SessionTransition 定义会话状态迁移
type SessionTransition struct {
	From SessionStatus
	To   SessionStatus
}

// SessionStateMachine 评估会话状态机。只进不退：没有回到上一题的迁移。
type SessionStateMachine struct {
	allowedTransitions map[SessionTransition]bool
}

func NewSessionStateMachine() *SessionStateMachine {
	sm := &SessionStateMachine{
		allowedTransitions: make(map[SessionTransition]bool),
	}

	// awaiting_questions -> in_progress -> completed/abandoned
	transitions := []SessionTransition{
		{SessionStatusAwaiting, SessionStatusInProgress},
		{SessionStatusAwaiting, SessionStatusAbandoned},
		{SessionStatusInProgress, SessionStatusCompleted},
		{SessionStatusInProgress, SessionStatusAbandoned},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition 检查状态迁移是否合法
func (sm *SessionStateMachine) CanTransition(from, to SessionStatus) bool {
	if from == to {
		return false // 不允许状态不变
	}
	return sm.allowedTransitions[SessionTransition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *SessionStateMachine) ValidateTransition(from, to SessionStatus) error {
	if !sm.CanTransition(from, to) {
		return &InvalidSessionStateTransitionError{
			From: string(from),
			To:   string(to),
		}
	}
	return nil
}

// Transition 执行状态迁移（带日志）
func (sm *SessionStateMachine) Transition(from, to SessionStatus, sessionID string) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("会话状态迁移被拒绝: sessionID=%s, %s -> %s, error=%v",
			sessionID, from, to, err)
		return err
	}

	klog.V(6).Infof("会话状态迁移成功: sessionID=%s, %s -> %s", sessionID, from, to)
	return nil
}

// InvalidSessionStateTransitionError 无效的会话状态迁移错误
type InvalidSessionStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidSessionStateTransitionError) Error() string {
	return fmt.Sprintf("invalid session state transition: %s -> %s", e.From, e.To)
}
