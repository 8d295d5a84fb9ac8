package search

import (
	"context"
	"fmt"

	"github.com/wyfcoding/pkg/search"
	"github.com/wyfcoding/shopadmin/internal/order/domain"
)

type orderSearchRepository struct {
	client *search.Client
	index  string
}

// NewOrderSearchRepository 创建订单搜索仓储实现。
func NewOrderSearchRepository(client *search.Client) domain.OrderSearchRepository {
	return &orderSearchRepository{
		client: client,
		index:  "orders",
	}
}

func (r *orderSearchRepository) Index(ctx context.Context, order *domain.Order) error {
	docID := fmt.Sprintf("%d", order.ID)
	return r.client.Index(ctx, r.index, docID, order)
}

// Search 按订单号/备注做全文匹配，供后台全局搜索使用。
func (r *orderSearchRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Order, error) {
	esQuery := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"number", "notes", "status"},
			},
		},
		"size": limit,
	}

	var searchRes struct {
		Hits struct {
			Hits []struct {
				Source domain.Order `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := r.client.Search(ctx, r.index, esQuery, &searchRes); err != nil {
		return nil, fmt.Errorf("es search failed: %w", err)
	}

	orders := make([]*domain.Order, len(searchRes.Hits.Hits))
	for i, hit := range searchRes.Hits.Hits {
		o := hit.Source
		orders[i] = &o
	}

	return orders, nil
}
