package domain

import (
	"context"
	"time"
)

// 订单事件统一发到一个主题，消费侧按 event 字段分发。
const (
	OrderEventsTopic = "shop.order.events"

	OrderCreatedEvent = "order.created"
	OrderUpdatedEvent = "order.updated"
	OrderDeletedEvent = "order.deleted"
)

// OrderEvent 订单变更事件载荷
type OrderEvent struct {
	Event       string    `json:"event"`
	OrderNumber string    `json:"order_number"`
	CustomerID  uint      `json:"customer_id"`
	Status      string    `json:"status"`
	Total       string    `json:"total"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewOrderEvent 从聚合当前状态构造事件
func NewOrderEvent(event string, o *Order) OrderEvent {
	return OrderEvent{
		Event:       event,
		OrderNumber: o.Number,
		CustomerID:  o.CustomerID,
		Status:      string(o.Status),
		Total:       o.Total.String(),
		Timestamp:   time.Now(),
	}
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
	PublishInTx(ctx context.Context, tx any, topic string, key string, event any) error
}
