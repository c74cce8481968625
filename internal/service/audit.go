package service

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/brokerdesk/backend/internal/eventbus"
)

// RegisterInquiryAudit 订阅预约事件写审计日志，返回取消订阅函数
func RegisterInquiryAudit(bus *eventbus.InquiryEventBus) func() {
	unsubCreated := bus.Subscribe(eventbus.InquiryEventCreated, func(_ context.Context, e eventbus.InquiryEvent) error {
		klog.Infof("审计: 新预约 inquiryID=%s tenantID=%s subject=%s", e.InquiryID, e.TenantID, e.Subject)
		return nil
	})
	unsubTransferred := bus.Subscribe(eventbus.InquiryEventTransferred, func(_ context.Context, e eventbus.InquiryEvent) error {
		klog.Infof("审计: 预约转入客户中心 inquiryID=%s customerID=%s", e.InquiryID, e.CustomerID)
		return nil
	})
	return func() {
		unsubCreated()
		unsubTransferred()
	}
}
