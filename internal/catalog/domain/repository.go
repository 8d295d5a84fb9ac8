package domain

import "context"

// QueryOptions 数据层查询选项。
// IncludeDeleted 把软删除记录也纳入查询；EagerLoad 指定需要预加载的关联。
type QueryOptions struct {
	IncludeDeleted bool
	EagerLoad      []string
}

// ProductFilter 商品列表过滤条件
type ProductFilter struct {
	Visible        *bool
	BrandID        uint
	Search         string
	IncludeDeleted bool
	WithBrand      bool
}

type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uint, opts QueryOptions) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	GetByName(ctx context.Context, name string) (*Product, error)
	List(ctx context.Context, filter ProductFilter, offset, limit int) ([]*Product, int64, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
}

type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id uint, opts QueryOptions) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context, opts QueryOptions) ([]*Category, error)
	Search(ctx context.Context, query string, limit int) ([]*Category, error)
	Delete(ctx context.Context, id uint) error
}

type BrandRepository interface {
	Save(ctx context.Context, brand *Brand) error
	GetByID(ctx context.Context, id uint) (*Brand, error)
	GetByName(ctx context.Context, name string) (*Brand, error)
	List(ctx context.Context) ([]*Brand, error)
}
