package application

import (
	"context"
	"strconv"

	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/shopadmin/internal/backoffice/domain"
	catalogapp "github.com/wyfcoding/shopadmin/internal/catalog/application"
	orderapp "github.com/wyfcoding/shopadmin/internal/order/application"
)

const globalSearchLimit = 20

// GlobalSearchService 跨资源的全局搜索：商品、分类走主库模糊匹配，
// 订单走 Elasticsearch 投影。单个资源失败只记日志，不影响其余结果。
type GlobalSearchService struct {
	catalog *catalogapp.CatalogQueryService
	orders  *orderapp.OrderQueryService
}

func NewGlobalSearchService(catalog *catalogapp.CatalogQueryService, orders *orderapp.OrderQueryService) *GlobalSearchService {
	return &GlobalSearchService{catalog: catalog, orders: orders}
}

// Search 返回按资源分组拼接的结果列表
func (s *GlobalSearchService) Search(ctx context.Context, query string) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, globalSearchLimit)

	products, err := s.catalog.SearchProducts(ctx, query, globalSearchLimit)
	if err != nil {
		logging.Error(ctx, "search products failed", "query", query, "error", err)
	}
	for _, p := range products {
		r := domain.SearchResult{
			Resource: "products",
			ID:       p.ID,
			Title:    p.Name,
			Details:  map[string]string{"Price": p.Price.StringFixed(2)},
		}
		if p.Brand != nil {
			r.Details["Brand"] = p.Brand.Name
		}
		results = append(results, r)
	}

	categories, err := s.catalog.SearchCategories(ctx, query, globalSearchLimit)
	if err != nil {
		logging.Error(ctx, "search categories failed", "query", query, "error", err)
	}
	for _, c := range categories {
		results = append(results, domain.SearchResult{
			Resource: "categories",
			ID:       c.ID,
			Title:    c.Name,
		})
	}

	orders, err := s.orders.SearchOrders(ctx, query, globalSearchLimit)
	if err != nil {
		logging.Error(ctx, "search orders failed", "query", query, "error", err)
	}
	for _, o := range orders {
		results = append(results, domain.SearchResult{
			Resource: "orders",
			ID:       o.ID,
			Title:    o.Number,
			Details: map[string]string{
				"Status":   string(o.Status),
				"Total":    o.Total.StringFixed(2),
				"Customer": strconv.FormatUint(uint64(o.CustomerID), 10),
			},
		})
	}

	return results
}
