package application

import (
	"context"

	"github.com/wyfcoding/shopadmin/internal/catalog/domain"
)

// CatalogQueryService 商品目录读操作
type CatalogQueryService struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	brands     domain.BrandRepository
}

func NewCatalogQueryService(
	products domain.ProductRepository,
	categories domain.CategoryRepository,
	brands domain.BrandRepository,
) *CatalogQueryService {
	return &CatalogQueryService{products: products, categories: categories, brands: brands}
}

func (s *CatalogQueryService) GetProduct(ctx context.Context, id uint, opts domain.QueryOptions) (*domain.Product, error) {
	return s.products.GetByID(ctx, id, opts)
}

// ListProducts 分页查询商品列表
func (s *CatalogQueryService) ListProducts(ctx context.Context, filter domain.ProductFilter, page, size int) ([]*domain.Product, int64, error) {
	if size <= 0 {
		size = 20
	}
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	return s.products.List(ctx, filter, offset, size)
}

// SearchProducts 按 name/slug/description 模糊搜索，供全局搜索使用。
func (s *CatalogQueryService) SearchProducts(ctx context.Context, query string, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	products, _, err := s.products.List(ctx, domain.ProductFilter{Search: query, WithBrand: true}, 0, limit)
	return products, err
}

// CountProducts 商品总数（导航徽标）
func (s *CatalogQueryService) CountProducts(ctx context.Context) (int64, error) {
	return s.products.Count(ctx)
}

func (s *CatalogQueryService) GetCategory(ctx context.Context, id uint, opts domain.QueryOptions) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id, opts)
}

func (s *CatalogQueryService) ListCategories(ctx context.Context, opts domain.QueryOptions) ([]*domain.Category, error) {
	return s.categories.List(ctx, opts)
}

func (s *CatalogQueryService) SearchCategories(ctx context.Context, query string, limit int) ([]*domain.Category, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.categories.Search(ctx, query, limit)
}

func (s *CatalogQueryService) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	return s.brands.List(ctx)
}
