package model

import (
	"time"
)

// Customer 客户档案。状态不强制单向流转，操作员可任意调整。
type Customer struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	TenantID  string         `json:"tenant_id" gorm:"size:36;index"`
	FullName  string         `json:"full_name" gorm:"size:100"`
	Email     string         `json:"email" gorm:"size:255"`
	Phone     string         `json:"phone" gorm:"size:30;index"`
	Status    string         `json:"status" gorm:"size:20;default:visitor"` // visitor, lead, prospect, contract_client
	IDCard    string         `json:"id_card" gorm:"size:30"`
	Address   string         `json:"address" gorm:"size:255"`
	Referrer  string         `json:"referrer" gorm:"size:100"`
	Metadata  map[string]any `json:"metadata" gorm:"serializer:json"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

const (
	CustomerStatusVisitor        = "visitor"
	CustomerStatusLead           = "lead"
	CustomerStatusProspect       = "prospect"
	CustomerStatusContractClient = "contract_client"
)

// CustomerInteraction 客户事件流水，只追加不修改
type CustomerInteraction struct {
	ID         string         `json:"id" gorm:"primaryKey;size:36"`
	CustomerID string         `json:"customer_id" gorm:"size:36;index;not null"`
	TenantID   string         `json:"tenant_id" gorm:"size:36;index"`
	Type       string         `json:"type" gorm:"size:20;not null"` // browsing, inquiry, communication, manual_log
	Content    map[string]any `json:"content" gorm:"serializer:json"`
	CreatedAt  time.Time      `json:"created_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

const (
	InteractionTypeBrowsing      = "browsing"
	InteractionTypeInquiry       = "inquiry"
	InteractionTypeCommunication = "communication"
	InteractionTypeManualLog     = "manual_log"
)

// CustomerRelationship 家庭关系有向边。不维护反向边，不做环检测。
type CustomerRelationship struct {
	ID                string    `json:"id" gorm:"primaryKey;size:36"`
	TenantID          string    `json:"tenant_id" gorm:"size:36;index"`
	FromCustomerID    string    `json:"from_customer_id" gorm:"size:36;index;not null"`
	ToCustomerID      string    `json:"to_customer_id" gorm:"size:36;not null"`
	RelationshipType  string    `json:"relationship_type" gorm:"size:20"` // spouse, child, parent, sibling, other
	RelationshipLabel string    `json:"relationship_label" gorm:"size:100"`
	CreatedAt         time.Time `json:"created_at"`

	RelatedCustomer *Customer `json:"related_customer,omitempty" gorm:"foreignKey:ToCustomerID"`
}

// Contract 合同档案，FilePath 指向对象存储。
// Status=processed 仅为展示位，仓内没有真实 OCR 流水线。
type Contract struct {
	ID           string         `json:"id" gorm:"primaryKey;size:36"`
	CustomerID   *string        `json:"customer_id" gorm:"size:36;index"`
	TenantID     string         `json:"tenant_id" gorm:"size:36;index"`
	ContractName string         `json:"contract_name" gorm:"size:255"`
	FilePath     string         `json:"file_path" gorm:"size:500;not null"`
	Status       string         `json:"status" gorm:"size:20;default:pending"` // pending, processed, failed
	OCRResult    map[string]any `json:"ocr_result" gorm:"serializer:json"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

const (
	ContractStatusPending   = "pending"
	ContractStatusProcessed = "processed"
	ContractStatusFailed    = "failed"
)
