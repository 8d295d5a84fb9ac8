package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/shopadmin/internal/order/domain"
)

// OrderCommandService 订单写操作。
// 每次行项目变动都在单个事务内保存整个聚合并重算总额，
// 客户端提交的总额一律不信任。
type OrderCommandService struct {
	repo      domain.OrderRepository
	catalog   domain.ProductCatalog
	publisher domain.EventPublisher
}

func NewOrderCommandService(repo domain.OrderRepository, catalog domain.ProductCatalog, publisher domain.EventPublisher) *OrderCommandService {
	return &OrderCommandService{repo: repo, catalog: catalog, publisher: publisher}
}

// CreateOrder 创建订单，初始行在同一事务内写入。
// 订单号用雪花 ID 生成，保证唯一。
func (s *OrderCommandService) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	status := domain.OrderStatus(cmd.Status)
	if cmd.Status == "" {
		status = domain.OrderStatusPending
	}
	if !domain.ValidStatus(status) {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown order status"}
	}

	order := &domain.Order{
		Number:     fmt.Sprintf("OR-%d", idgen.GenID()),
		CustomerID: cmd.CustomerID,
		Status:     status,
		Notes:      cmd.Notes,
	}

	shipping, err := parseMoney("shipping_price", cmd.ShippingPrice)
	if err != nil {
		return nil, err
	}
	if err := order.SetShippingPrice(shipping); err != nil {
		return nil, err
	}

	for _, line := range cmd.Lines {
		price, err := s.lookupPrice(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if _, err := order.AddLine(line.ProductID, line.Quantity, price); err != nil {
			return nil, err
		}
	}

	if err := s.saveAndPublish(ctx, order, domain.OrderCreatedEvent); err != nil {
		return nil, err
	}
	return order, nil
}

// AddLine 追加一行并返回更新后的行集合与总额
func (s *OrderCommandService) AddLine(ctx context.Context, orderID uint, productID uint, quantity int) (*LineMutationResult, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	price, err := s.lookupPrice(ctx, productID)
	if err != nil {
		return nil, err
	}
	item, err := order.AddLine(productID, quantity, price)
	if err != nil {
		return nil, err
	}
	if err := s.saveAndPublish(ctx, order, domain.OrderUpdatedEvent); err != nil {
		return nil, err
	}
	return &LineMutationResult{
		OrderID:    order.ID,
		LineID:     item.ID,
		LineTotal:  item.LineTotal.String(),
		OrderTotal: order.Total.String(),
		Items:      order.Items,
	}, nil
}

// RemoveLine 删除一行并返回更新后的行集合与总额
func (s *OrderCommandService) RemoveLine(ctx context.Context, orderID uint, lineID uint) (*LineMutationResult, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.RemoveLine(lineID); err != nil {
		return nil, err
	}
	if err := s.saveAndPublish(ctx, order, domain.OrderUpdatedEvent); err != nil {
		return nil, err
	}
	return &LineMutationResult{
		OrderID:    order.ID,
		OrderTotal: order.Total.String(),
		Items:      order.Items,
	}, nil
}

// SelectLineProduct 行选品：查当前价格写入快照并重算。
// 商品缺失/不可见时整个操作失败，行保持原单价。
func (s *OrderCommandService) SelectLineProduct(ctx context.Context, orderID, lineID, productID uint) (*LineMutationResult, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	price, err := s.lookupPrice(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := order.SelectProduct(lineID, productID, price); err != nil {
		return nil, err
	}
	if err := s.saveAndPublish(ctx, order, domain.OrderUpdatedEvent); err != nil {
		return nil, err
	}
	return s.lineResult(order, lineID), nil
}

// ChangeLineQuantity 修改行数量并返回派生值
func (s *OrderCommandService) ChangeLineQuantity(ctx context.Context, orderID, lineID uint, quantity int) (*LineMutationResult, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.SetQuantity(lineID, quantity); err != nil {
		return nil, err
	}
	if err := s.saveAndPublish(ctx, order, domain.OrderUpdatedEvent); err != nil {
		return nil, err
	}
	return s.lineResult(order, lineID), nil
}

// UpdateShipping 修改运费并重算
func (s *OrderCommandService) UpdateShipping(ctx context.Context, orderID uint, shippingPrice string) (*LineMutationResult, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	price, err := parseMoney("shipping_price", shippingPrice)
	if err != nil {
		return nil, err
	}
	if err := order.SetShippingPrice(price); err != nil {
		return nil, err
	}
	if err := s.saveAndPublish(ctx, order, domain.OrderUpdatedEvent); err != nil {
		return nil, err
	}
	return &LineMutationResult{OrderID: order.ID, OrderTotal: order.Total.String()}, nil
}

// ChangeStatus 修改订单状态
func (s *OrderCommandService) ChangeStatus(ctx context.Context, orderID uint, status string) error {
	if !domain.ValidStatus(domain.OrderStatus(status)) {
		return &domain.ValidationError{Field: "status", Reason: "unknown order status"}
	}
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	order.Status = domain.OrderStatus(status)
	return s.saveAndPublish(ctx, order, domain.OrderUpdatedEvent)
}

// DeleteOrder 软删除订单
func (s *OrderCommandService) DeleteOrder(ctx context.Context, orderID uint) error {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, orderID); err != nil {
			return err
		}
		if s.publisher == nil {
			return nil
		}
		event := domain.NewOrderEvent(domain.OrderDeletedEvent, order)
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.OrderEventsTopic, order.Number, event)
	})
}

func (s *OrderCommandService) saveAndPublish(ctx context.Context, order *domain.Order, eventType string) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, order); err != nil {
			return err
		}
		if s.publisher == nil {
			return nil
		}
		event := domain.NewOrderEvent(eventType, order)
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.OrderEventsTopic, order.Number, event)
	})
}

func (s *OrderCommandService) lookupPrice(ctx context.Context, productID uint) (decimal.Decimal, error) {
	price, err := s.catalog.UnitPrice(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := domain.ValidateUnitPrice(price); err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

func (s *OrderCommandService) lineResult(order *domain.Order, lineID uint) *LineMutationResult {
	res := &LineMutationResult{OrderID: order.ID, LineID: lineID, OrderTotal: order.Total.String()}
	for i := range order.Items {
		if order.Items[i].ID == lineID {
			res.LineTotal = order.Items[i].LineTotal.String()
			break
		}
	}
	return res
}

func parseMoney(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &domain.ValidationError{Field: field, Reason: "must be a decimal number"}
	}
	return v, nil
}
