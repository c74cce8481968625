package eventbus

type InquiryEventType string

const (
	InquiryEventCreated     InquiryEventType = "Created"
	InquiryEventTransferred InquiryEventType = "Transferred"
)

type InquiryEvent struct {
	Type       InquiryEventType
	InquiryID  string
	TenantID   string
	CustomerID string // 仅 Transferred 事件携带
	Subject    string
}

type InquiryEventHandler = Handler[InquiryEvent]
type InquiryEventBus = Bus[InquiryEventType, InquiryEvent]

func NewInquiryEventBus() *InquiryEventBus {
	return NewBus[InquiryEventType, InquiryEvent](func(e InquiryEvent) InquiryEventType {
		return e.Type
	})
}
