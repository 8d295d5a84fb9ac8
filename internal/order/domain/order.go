// Package domain 包含订单聚合与行项目定价逻辑
package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusDeclined   OrderStatus = "declined"
)

// ValidStatus 是否为已知状态
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusDeclined:
		return true
	}
	return false
}

// Order 订单聚合根。Items 归属于订单，只能通过订单的编辑流程修改。
// Total 为冗余持久化的派生值，任何行项目变动后由 RecomputeTotal 全量重算。
type Order struct {
	gorm.Model
	Number        string          `gorm:"column:number;type:varchar(32);uniqueIndex;not null" json:"number"`
	CustomerID    uint            `gorm:"column:customer_id;index;not null" json:"customer_id"`
	Status        OrderStatus     `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
	ShippingPrice decimal.Decimal `gorm:"column:shipping_price;type:decimal(12,2);not null" json:"shipping_price"`
	Notes         string          `gorm:"column:notes;type:text" json:"notes"`
	Total         decimal.Decimal `gorm:"column:total;type:decimal(12,2);not null" json:"total"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
}

func (Order) TableName() string { return "orders" }

// OrderItem 订单行项目。
// UnitPrice 是选品时刻的价格快照，之后商品调价不影响已有行。
type OrderItem struct {
	gorm.Model
	OrderID   uint            `gorm:"column:order_id;index;not null" json:"order_id"`
	ProductID uint            `gorm:"column:product_id;index;not null" json:"product_id"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"column:line_total;type:decimal(12,2);not null" json:"line_total"`
}

func (OrderItem) TableName() string { return "order_items" }
