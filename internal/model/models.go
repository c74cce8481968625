package model

import (
	"time"
)

// Tenant 独立经纪人账号，所有内容按租户隔离
type Tenant struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Slug      string    `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile 租户展示资料，同时承载后台登录身份（role=admin 的行为经纪人本人）
type Profile struct {
	ID           string         `json:"id" gorm:"primaryKey;size:36"`
	TenantID     string         `json:"tenant_id" gorm:"size:36;index"`
	Role         string         `json:"role" gorm:"size:50;default:admin"`
	Phone        string         `json:"phone" gorm:"size:30;uniqueIndex"`
	PasswordHash string         `json:"-" gorm:"size:100"`
	FullName     string         `json:"full_name" gorm:"size:100"`
	AvatarURL    string         `json:"avatar_url" gorm:"size:500"`
	Title        string         `json:"title" gorm:"size:100"`
	Company      string         `json:"company" gorm:"size:100"`
	Metadata     map[string]any `json:"metadata" gorm:"serializer:json"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type InsurancePlan struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	TenantID    string    `json:"tenant_id" gorm:"size:36;index;not null"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Company     string    `json:"company" gorm:"size:100"`
	Type        string    `json:"type" gorm:"size:100"`
	Highlight   string    `json:"highlight" gorm:"size:500"`
	Benefit     string    `json:"benefit" gorm:"size:500"`
	Description string    `json:"description" gorm:"type:text"`
	TermsURL    string    `json:"terms_url" gorm:"size:500"`
	RawContent  string    `json:"raw_content" gorm:"type:text"`
	IsPublic    bool      `json:"is_public" gorm:"default:true"`
	IsLatest    bool      `json:"is_latest" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
}

type Case struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	TenantID      string    `json:"tenant_id" gorm:"size:36;index;not null"`
	Title         string    `json:"title" gorm:"size:255;not null"`
	Tag           string    `json:"tag" gorm:"size:100"`
	Image         string    `json:"image" gorm:"size:500"`
	Description   string    `json:"description" gorm:"type:text"`
	ExpertInsight string    `json:"expert_insight" gorm:"type:text"`
	IsArchived    bool      `json:"is_archived" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
}

// Inquiry 访客预约/咨询，assessment_data 可为空 map（未做评估直接预约）
type Inquiry struct {
	ID            string            `json:"id" gorm:"primaryKey;size:36"`
	TenantID      string            `json:"tenant_id" gorm:"size:36;index;not null"`
	CustomerName  string            `json:"customer_name" gorm:"size:100;not null"`
	Phone         string            `json:"phone" gorm:"size:30;not null"`
	Subject       string            `json:"subject" gorm:"size:255"`
	AssessmentData map[string]string `json:"assessment_data" gorm:"serializer:json"`
	Status        string            `json:"status" gorm:"size:20;default:pending"` // pending, contacted, closed
	HandlingNotes string            `json:"handling_notes" gorm:"size:1000"`
	IsTransferred bool              `json:"is_transferred" gorm:"default:false"`
	CreatedAt     time.Time         `json:"created_at"`
}

// AssessmentQuestion 风险评估问题。TenantID 为空表示系统默认模板题，对所有租户可见。
type AssessmentQuestion struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	TenantID    *string   `json:"tenant_id" gorm:"size:36;index"`
	Category    string    `json:"category" gorm:"size:100"`
	Question    string    `json:"question" gorm:"size:500;not null"`
	InputType   string    `json:"input_type" gorm:"size:20;not null"` // text, number, date, single_choice, multiple_choice
	Options     []string  `json:"options" gorm:"serializer:json"`
	Placeholder string    `json:"placeholder" gorm:"size:255"`
	Order       int       `json:"order" gorm:"column:sort_order;default:0"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsChoice 是否为选项型问题（选项型问题要求 Options 非空）
func (q *AssessmentQuestion) IsChoice() bool {
	return q.InputType == InputTypeSingleChoice || q.InputType == InputTypeMultipleChoice
}

const (
	InputTypeText           = "text"
	InputTypeNumber         = "number"
	InputTypeDate           = "date"
	InputTypeSingleChoice   = "single_choice"
	InputTypeMultipleChoice = "multiple_choice"
)

const (
	InquiryStatusPending   = "pending"
	InquiryStatusContacted = "contacted"
	InquiryStatusClosed    = "closed"
)

type Testimonial struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	TenantID  string    `json:"tenant_id" gorm:"size:36;index"`
	Name      string    `json:"name" gorm:"size:100"`
	Role      string    `json:"role" gorm:"size:100"`
	Content   string    `json:"content" gorm:"type:text"`
	Tag       string    `json:"tag" gorm:"size:100"`
	IsPublic  bool      `json:"is_public" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
}

type KnowledgeItem struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	TenantID    string    `json:"tenant_id" gorm:"size:36;index"`
	Title       string    `json:"title" gorm:"size:255"`
	Category    string    `json:"category" gorm:"size:100"`
	DescContent string    `json:"desc_content" gorm:"type:text"`
	IconName    string    `json:"icon_name" gorm:"size:100"`
	IsPublic    bool      `json:"is_public" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}
