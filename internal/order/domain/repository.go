package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderRepository 订单仓储接口。
// Save 持久化整个聚合（订单 + 全部行项目），必须在单个事务内完成。
type OrderRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Save(ctx context.Context, order *Order) error
	Get(ctx context.Context, id uint) (*Order, error)
	GetByNumber(ctx context.Context, number string) (*Order, error)
	List(ctx context.Context, status OrderStatus, offset, limit int) ([]*Order, int64, error)
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// ProductCatalog 商品目录查询端口（由 catalog 上下文实现）。
// 商品缺失、已删除或不可见时返回 ErrProductNotFound。
type ProductCatalog interface {
	UnitPrice(ctx context.Context, productID uint) (decimal.Decimal, error)
}

// OrderSearchRepository 订单搜索投影（Elasticsearch）
type OrderSearchRepository interface {
	Index(ctx context.Context, order *Order) error
	Search(ctx context.Context, query string, limit int) ([]*Order, error)
}
