package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/shopadmin/internal/order/domain"
	"gorm.io/gorm"
)

type orderRepository struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txCtx := contextx.WithTx(ctx, tx)
		return fn(txCtx)
	})
}

func (r *orderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db
}

// Save 持久化订单及其全部行项目，并清掉聚合里已不存在的行。
// 在 WithTx 内调用时整个聚合的写入落在同一事务。
func (r *orderRepository) Save(ctx context.Context, order *domain.Order) error {
	db := r.getDB(ctx)
	if order.ID == 0 {
		return db.WithContext(ctx).Create(order).Error
	}
	if err := db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error; err != nil {
		return err
	}

	keep := make([]uint, 0, len(order.Items))
	for i := range order.Items {
		keep = append(keep, order.Items[i].ID)
	}
	q := db.WithContext(ctx).Where("order_id = ?", order.ID)
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	return q.Unscoped().Delete(&domain.OrderItem{}).Error
}

func (r *orderRepository) Get(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.getDB(ctx).WithContext(ctx).Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	var order domain.Order
	err := r.getDB(ctx).WithContext(ctx).Preload("Items").Where("number = ?", number).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, status domain.OrderStatus, offset, limit int) ([]*domain.Order, int64, error) {
	q := r.getDB(ctx).WithContext(ctx).Model(&domain.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []*domain.Order
	err := q.Preload("Items").Order("id DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) CountByStatus(ctx context.Context, status domain.OrderStatus) (int64, error) {
	var total int64
	err := r.getDB(ctx).WithContext(ctx).Model(&domain.Order{}).Where("status = ?", status).Count(&total).Error
	return total, err
}

func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Delete(&domain.OrderItem{}, "order_id = ?", id).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&domain.Order{}, id).Error
}
