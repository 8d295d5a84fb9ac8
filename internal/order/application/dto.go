package application

import "github.com/wyfcoding/shopadmin/internal/order/domain"

// LineInput 下单/加行时的行输入
type LineInput struct {
	ProductID uint
	Quantity  int
}

// CreateOrderCommand 创建订单命令。金额使用十进制字符串。
type CreateOrderCommand struct {
	CustomerID    uint
	Status        string
	ShippingPrice string
	Notes         string
	Lines         []LineInput
}

// LineMutationResult 行项目变动后的派生值，供 UI 即时刷新。
// Items 仅在增删行时填充（行集合发生了变化）。
type LineMutationResult struct {
	OrderID    uint               `json:"order_id"`
	LineID     uint               `json:"line_id,omitempty"`
	LineTotal  string             `json:"line_total,omitempty"`
	OrderTotal string             `json:"order_total"`
	Items      []domain.OrderItem `json:"items,omitempty"`
}
