package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/shopadmin/internal/catalog/domain"
)

// CatalogCommandService 商品目录写操作
type CatalogCommandService struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	brands     domain.BrandRepository
	publisher  domain.EventPublisher
}

func NewCatalogCommandService(
	products domain.ProductRepository,
	categories domain.CategoryRepository,
	brands domain.BrandRepository,
	publisher domain.EventPublisher,
) *CatalogCommandService {
	return &CatalogCommandService{products: products, categories: categories, brands: brands, publisher: publisher}
}

// CreateProduct 创建商品。slug 为空时由名称自动生成。
func (s *CatalogCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	price, err := parseMoney("price", cmd.Price)
	if err != nil {
		return nil, err
	}

	slug := cmd.Slug
	if slug == "" {
		slug = domain.Slugify(cmd.Name)
	}
	if err := s.ensureSlugFree(ctx, slug, 0); err != nil {
		return nil, err
	}
	if err := s.ensureSKUFree(ctx, cmd.SKU); err != nil {
		return nil, err
	}
	if err := s.ensureProductNameFree(ctx, cmd.Name, 0); err != nil {
		return nil, err
	}

	if _, err := s.brands.GetByID(ctx, cmd.BrandID); err != nil {
		return nil, err
	}
	cats, err := s.resolveCategories(ctx, cmd.CategoryIDs)
	if err != nil {
		return nil, err
	}

	p := &domain.Product{
		Name:        cmd.Name,
		Slug:        slug,
		SKU:         cmd.SKU,
		Description: cmd.Description,
		Price:       price,
		Quantity:    cmd.Quantity,
		Type:        domain.ProductType(cmd.Type),
		IsVisible:   cmd.IsVisible,
		IsFeatured:  cmd.IsFeatured,
		ImagePath:   cmd.ImagePath,
		BrandID:     cmd.BrandID,
		Categories:  cats,
	}
	if cmd.PublishedAt != "" {
		t, err := time.Parse(time.DateOnly, cmd.PublishedAt)
		if err != nil {
			return nil, &domain.ValidationError{Field: "published_at", Reason: "must be a YYYY-MM-DD date"}
		}
		p.PublishedAt = &t
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}

	event := domain.ProductCreatedEvent{
		ProductID: p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Price:     p.Price.String(),
		Quantity:  p.Quantity,
		BrandID:   p.BrandID,
		Timestamp: time.Now(),
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.ProductCreatedEventType, p.Slug, event); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// UpdateProduct 更新商品。slug 一经生成保持不变。
func (s *CatalogCommandService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, cmd.ProductID, domain.QueryOptions{})
	if err != nil {
		return nil, err
	}

	price, err := parseMoney("price", cmd.Price)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProductNameFree(ctx, cmd.Name, p.ID); err != nil {
		return nil, err
	}
	cats, err := s.resolveCategories(ctx, cmd.CategoryIDs)
	if err != nil {
		return nil, err
	}

	p.Name = cmd.Name
	p.Description = cmd.Description
	p.Price = price
	p.Quantity = cmd.Quantity
	p.Type = domain.ProductType(cmd.Type)
	p.IsVisible = cmd.IsVisible
	p.IsFeatured = cmd.IsFeatured
	if cmd.ImagePath != "" {
		p.ImagePath = cmd.ImagePath
	}
	if cmd.BrandID != 0 && cmd.BrandID != p.BrandID {
		if _, err := s.brands.GetByID(ctx, cmd.BrandID); err != nil {
			return nil, err
		}
		p.BrandID = cmd.BrandID
	}
	if cats != nil {
		p.Categories = cats
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}

	event := domain.ProductUpdatedEvent{
		ProductID: p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Price:     p.Price.String(),
		Quantity:  p.Quantity,
		Timestamp: time.Now(),
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.ProductUpdatedEventType, p.Slug, event); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// DeleteProduct 软删除商品
func (s *CatalogCommandService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.products.GetByID(ctx, id, domain.QueryOptions{}); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if s.publisher == nil {
		return nil
	}
	event := domain.ProductDeletedEvent{ProductID: id, Timestamp: time.Now()}
	return s.publisher.Publish(ctx, domain.ProductDeletedEventType, "", event)
}

// RestoreProduct 恢复软删除的商品
func (s *CatalogCommandService) RestoreProduct(ctx context.Context, id uint) error {
	if _, err := s.products.GetByID(ctx, id, domain.QueryOptions{IncludeDeleted: true}); err != nil {
		return err
	}
	return s.products.Restore(ctx, id)
}

// CreateCategory 创建分类
func (s *CatalogCommandService) CreateCategory(ctx context.Context, cmd CreateCategoryCommand) (*domain.Category, error) {
	slug := cmd.Slug
	if slug == "" {
		slug = domain.Slugify(cmd.Name)
	}
	if cmd.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if err := s.ensureCategoryNameFree(ctx, cmd.Name, 0); err != nil {
		return nil, err
	}
	if cmd.ParentID != nil {
		if _, err := s.categories.GetByID(ctx, *cmd.ParentID, domain.QueryOptions{}); err != nil {
			return nil, err
		}
	}

	c := &domain.Category{
		Name:        cmd.Name,
		Slug:        slug,
		Description: cmd.Description,
		IsVisible:   cmd.IsVisible,
		ParentID:    cmd.ParentID,
	}
	if err := s.categories.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publishCategoryChanged(ctx, c)
	return c, nil
}

// UpdateCategory 更新分类；改变 parent_id 前做环检测。
func (s *CatalogCommandService) UpdateCategory(ctx context.Context, cmd UpdateCategoryCommand) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, cmd.CategoryID, domain.QueryOptions{})
	if err != nil {
		return nil, err
	}
	if err := s.ensureCategoryNameFree(ctx, cmd.Name, c.ID); err != nil {
		return nil, err
	}

	if !sameParent(c.ParentID, cmd.ParentID) && cmd.ParentID != nil {
		if _, err := s.categories.GetByID(ctx, *cmd.ParentID, domain.QueryOptions{}); err != nil {
			return nil, err
		}
		resolve := func(id uint) (*uint, error) {
			parent, err := s.categories.GetByID(ctx, id, domain.QueryOptions{})
			if err != nil {
				return nil, err
			}
			return parent.ParentID, nil
		}
		if err := domain.CheckParentCycle(c.ID, cmd.ParentID, resolve); err != nil {
			return nil, err
		}
	}

	c.Name = cmd.Name
	c.Description = cmd.Description
	c.IsVisible = cmd.IsVisible
	c.ParentID = cmd.ParentID
	if err := s.categories.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publishCategoryChanged(ctx, c)
	return c, nil
}

// DeleteCategory 软删除分类
func (s *CatalogCommandService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categories.GetByID(ctx, id, domain.QueryOptions{}); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

// CreateBrand 创建品牌
func (s *CatalogCommandService) CreateBrand(ctx context.Context, cmd CreateBrandCommand) (*domain.Brand, error) {
	if cmd.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if _, err := s.brands.GetByName(ctx, cmd.Name); err == nil {
		return nil, domain.ErrNameTaken
	} else if !errors.Is(err, domain.ErrBrandNotFound) {
		return nil, err
	}
	b := &domain.Brand{Name: cmd.Name, Slug: domain.Slugify(cmd.Name), IsVisible: cmd.IsVisible}
	if err := s.brands.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CatalogCommandService) publishCategoryChanged(ctx context.Context, c *domain.Category) {
	if s.publisher == nil {
		return
	}
	event := domain.CategoryChangedEvent{
		CategoryID: c.ID,
		Name:       c.Name,
		ParentID:   c.ParentID,
		Timestamp:  time.Now(),
	}
	_ = s.publisher.Publish(ctx, domain.CategoryChangedEventType, c.Slug, event)
}

func (s *CatalogCommandService) ensureSlugFree(ctx context.Context, slug string, selfID uint) error {
	existing, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return domain.ErrSlugTaken
	}
	return nil
}

func (s *CatalogCommandService) ensureSKUFree(ctx context.Context, sku string) error {
	if _, err := s.products.GetBySKU(ctx, sku); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil
		}
		return err
	}
	return domain.ErrSKUTaken
}

func (s *CatalogCommandService) ensureProductNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := s.products.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return domain.ErrNameTaken
	}
	return nil
}

func (s *CatalogCommandService) ensureCategoryNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := s.categories.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return domain.ErrNameTaken
	}
	return nil
}

func (s *CatalogCommandService) resolveCategories(ctx context.Context, ids []uint) ([]*domain.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cats := make([]*domain.Category, 0, len(ids))
	for _, id := range ids {
		c, err := s.categories.GetByID(ctx, id, domain.QueryOptions{})
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, nil
}

func parseMoney(field, raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &domain.ValidationError{Field: field, Reason: "must be a decimal number"}
	}
	if err := domain.ValidateMoney(field, v); err != nil {
		return decimal.Zero, err
	}
	return v, nil
}

func sameParent(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
