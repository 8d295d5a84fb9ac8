package domain

import (
	"context"
	"time"
)

const (
	ProductCreatedEventType  = "shop.product.created"
	ProductUpdatedEventType  = "shop.product.updated"
	ProductDeletedEventType  = "shop.product.deleted"
	CategoryChangedEventType = "shop.category.changed"
)

// ProductCreatedEvent 商品创建事件
type ProductCreatedEvent struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Price     string    `json:"price"`
	Quantity  int       `json:"quantity"`
	BrandID   uint      `json:"brand_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductUpdatedEvent 商品更新事件
type ProductUpdatedEvent struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Price     string    `json:"price"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductDeletedEvent 商品删除事件（软删除）
type ProductDeletedEvent struct {
	ProductID uint      `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CategoryChangedEvent 分类变更事件
type CategoryChangedEvent struct {
	CategoryID uint      `json:"category_id"`
	Name       string    `json:"name"`
	ParentID   *uint     `json:"parent_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
	PublishInTx(ctx context.Context, tx any, topic string, key string, event any) error
}
