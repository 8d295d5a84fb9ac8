package application

import (
	"context"

	"github.com/wyfcoding/shopadmin/internal/order/domain"
)

// OrderQueryService 订单读操作
type OrderQueryService struct {
	repo   domain.OrderRepository
	search domain.OrderSearchRepository
}

func NewOrderQueryService(repo domain.OrderRepository, search domain.OrderSearchRepository) *OrderQueryService {
	return &OrderQueryService{repo: repo, search: search}
}

func (s *OrderQueryService) GetOrder(ctx context.Context, id uint) (*domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *OrderQueryService) GetOrderByNumber(ctx context.Context, number string) (*domain.Order, error) {
	return s.repo.GetByNumber(ctx, number)
}

// ListOrders 分页查询，status 为空时不过滤。
func (s *OrderQueryService) ListOrders(ctx context.Context, status domain.OrderStatus, page, size int) ([]*domain.Order, int64, error) {
	if size <= 0 {
		size = 20
	}
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, status, offset, size)
}

// ProcessingCount 处理中订单数（导航徽标）
func (s *OrderQueryService) ProcessingCount(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, domain.OrderStatusProcessing)
}

// SearchOrders 经 Elasticsearch 投影做全文搜索；未配置搜索时返回空。
func (s *OrderQueryService) SearchOrders(ctx context.Context, query string, limit int) ([]*domain.Order, error) {
	if s.search == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.search.Search(ctx, query, limit)
}
