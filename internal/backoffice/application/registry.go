// Package application 组装后台资源模式、导航与全局搜索。
package application

import (
	"context"
	"sort"
	"strconv"

	"github.com/wyfcoding/shopadmin/internal/backoffice/domain"
	catalogapp "github.com/wyfcoding/shopadmin/internal/catalog/application"
	orderapp "github.com/wyfcoding/shopadmin/internal/order/application"
)

// 订单处理积压超过该值时徽标转为警告色
const processingWarnThreshold = 10

// Registry 持有全部资源模式与徽标提供者，在启动时构造一次。
type Registry struct {
	resources []domain.Resource
	badges    map[string]domain.BadgeProvider
}

// NewRegistry 构造商品/分类/订单三个资源的 UI 模式。
func NewRegistry(catalogQuery *catalogapp.CatalogQueryService, orderQuery *orderapp.OrderQueryService) *Registry {
	r := &Registry{badges: make(map[string]domain.BadgeProvider)}
	r.resources = []domain.Resource{
		productResource(),
		orderResource(),
		categoryResource(),
	}

	r.badges["products"] = func(ctx context.Context) (domain.Badge, error) {
		n, err := catalogQuery.CountProducts(ctx)
		if err != nil {
			return domain.Badge{}, err
		}
		return domain.Badge{Value: strconv.FormatInt(n, 10), Color: "primary"}, nil
	}
	r.badges["orders"] = func(ctx context.Context) (domain.Badge, error) {
		n, err := orderQuery.ProcessingCount(ctx)
		if err != nil {
			return domain.Badge{}, err
		}
		color := "primary"
		if n > processingWarnThreshold {
			color = "warning"
		}
		return domain.Badge{Value: strconv.FormatInt(n, 10), Color: color}, nil
	}
	return r
}

// Resources 返回全部资源模式
func (r *Registry) Resources() []domain.Resource {
	return r.resources
}

// Resource 按名称查找
func (r *Registry) Resource(name string) (domain.Resource, bool) {
	for _, res := range r.resources {
		if res.Name == name {
			return res, true
		}
	}
	return domain.Resource{}, false
}

// Navigation 渲染导航条目，徽标实时计算；徽标查询失败不阻断导航。
func (r *Registry) Navigation(ctx context.Context) []domain.NavigationItem {
	items := make([]domain.NavigationItem, 0, len(r.resources))
	for _, res := range r.resources {
		item := domain.NavigationItem{
			Resource: res.Name,
			Title:    res.Title,
			Icon:     res.Navigation.Icon,
			Group:    res.Navigation.Group,
			Sort:     res.Navigation.Sort,
		}
		if provider, ok := r.badges[res.Name]; ok {
			if badge, err := provider(ctx); err == nil {
				item.Badge = &badge
			}
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Sort < items[j].Sort })
	return items
}

func intPtr(v int) *int { return &v }

func productResource() domain.Resource {
	return domain.Resource{
		Name:           "products",
		Title:          "Products",
		TitleAttribute: "name",
		Navigation:     domain.Navigation{Icon: "heroicon-o-bolt", Group: "Shop", Sort: 0},
		Fields: []domain.Field{
			{Name: "name", Label: "Name", Type: domain.FieldText, Required: true},
			{Name: "slug", Label: "Slug", Type: domain.FieldText, Required: true, ReadOnly: true},
			{Name: "description", Label: "Description", Type: domain.FieldMarkdown},
			{Name: "sku", Label: "SKU (Stock Keeping Unit)", Type: domain.FieldText, Required: true},
			{Name: "price", Label: "Price", Type: domain.FieldDecimal, Required: true},
			{Name: "quantity", Label: "Quantity", Type: domain.FieldInteger, Required: true, Min: intPtr(0), Max: intPtr(100)},
			{Name: "type", Label: "Type", Type: domain.FieldSelect, Required: true, Options: map[string]string{
				"downloadable": "Downloadable",
				"deliverable":  "Deliverable",
			}},
			{Name: "is_visible", Label: "Visibility", Type: domain.FieldToggle, Helper: "Enable or disable product visibility"},
			{Name: "is_featured", Label: "Featured", Type: domain.FieldToggle, Helper: "Enable or disable product featured status"},
			{Name: "published_at", Label: "Availability", Type: domain.FieldDate},
			{Name: "brand_id", Label: "Brand", Type: domain.FieldRelation, Required: true, Relation: "brands"},
			{Name: "category_ids", Label: "Categories", Type: domain.FieldRelation, Required: true, Relation: "categories"},
		},
		Columns: []domain.Column{
			{Name: "image_path", Label: "Image", Kind: domain.ColumnImage},
			{Name: "name", Label: "Name", Kind: domain.ColumnText, Searchable: true, Sortable: true},
			{Name: "brand.name", Label: "Brand", Kind: domain.ColumnText, Searchable: true, Sortable: true, Toggleable: true},
			{Name: "is_visible", Label: "Visibility", Kind: domain.ColumnBool, Sortable: true, Toggleable: true},
			{Name: "price", Label: "Price", Kind: domain.ColumnText, Sortable: true, Toggleable: true},
			{Name: "quantity", Label: "Quantity", Kind: domain.ColumnText, Sortable: true, Toggleable: true},
			{Name: "published_at", Label: "Published", Kind: domain.ColumnDate, Sortable: true},
			{Name: "type", Label: "Type", Kind: domain.ColumnText},
		},
		Filters: []domain.Filter{
			{Name: "is_visible", Label: "Visibility", Type: domain.FilterTernary},
			{Name: "brand_id", Label: "Brand", Type: domain.FilterSelect, Relation: "brands"},
		},
		GloballySearchable: []string{"name", "slug", "description"},
		SearchLimit:        20,
	}
}

func orderResource() domain.Resource {
	return domain.Resource{
		Name:           "orders",
		Title:          "Orders",
		TitleAttribute: "number",
		Navigation:     domain.Navigation{Icon: "heroicon-o-shopping-bag", Group: "Shop", Sort: 3},
		Fields: []domain.Field{
			{Name: "number", Label: "Number", Type: domain.FieldText, Required: true, ReadOnly: true},
			{Name: "customer_id", Label: "Customer", Type: domain.FieldRelation, Required: true, Relation: "customers"},
			{Name: "shipping_price", Label: "Shipping Costs", Type: domain.FieldDecimal, Required: true},
			{Name: "status", Label: "Status", Type: domain.FieldSelect, Required: true, Options: map[string]string{
				"pending":    "Pending",
				"processing": "Processing",
				"completed":  "Completed",
				"declined":   "Declined",
			}},
			{Name: "notes", Label: "Notes", Type: domain.FieldMarkdown},
			{Name: "items", Label: "Order Items", Type: domain.FieldRepeater, Fields: []domain.Field{
				{Name: "product_id", Label: "Product", Type: domain.FieldRelation, Required: true, Relation: "products"},
				{Name: "quantity", Label: "Quantity", Type: domain.FieldInteger, Required: true, Min: intPtr(1)},
				{Name: "unit_price", Label: "Unit Price", Type: domain.FieldDecimal, Required: true, ReadOnly: true},
				{Name: "line_total", Label: "Total Price", Type: domain.FieldDecimal, ReadOnly: true},
			}},
		},
		Columns: []domain.Column{
			{Name: "number", Label: "Number", Kind: domain.ColumnText, Searchable: true, Sortable: true},
			{Name: "customer_id", Label: "Customer", Kind: domain.ColumnText, Searchable: true, Sortable: true, Toggleable: true},
			{Name: "status", Label: "Status", Kind: domain.ColumnText, Searchable: true, Sortable: true},
			{Name: "total", Label: "Total", Kind: domain.ColumnText, Sortable: true},
			{Name: "created_at", Label: "Order date", Kind: domain.ColumnDate},
		},
		GloballySearchable: []string{"number", "notes"},
		SearchLimit:        20,
	}
}

func categoryResource() domain.Resource {
	return domain.Resource{
		Name:           "categories",
		Title:          "Categories",
		TitleAttribute: "name",
		Navigation:     domain.Navigation{Icon: "heroicon-o-tag", Group: "Shop", Sort: 4},
		Fields: []domain.Field{
			{Name: "name", Label: "Name", Type: domain.FieldText, Required: true},
			{Name: "slug", Label: "Slug", Type: domain.FieldText, Required: true, ReadOnly: true},
			{Name: "description", Label: "Description", Type: domain.FieldMarkdown},
			{Name: "is_visible", Label: "Visibility", Type: domain.FieldToggle, Helper: "Enable or disable category visibility"},
			{Name: "parent_id", Label: "Parent", Type: domain.FieldRelation, Relation: "categories"},
		},
		Columns: []domain.Column{
			{Name: "name", Label: "Name", Kind: domain.ColumnText, Searchable: true, Sortable: true},
			{Name: "parent.name", Label: "Parent", Kind: domain.ColumnText, Searchable: true, Sortable: true},
			{Name: "is_visible", Label: "Visibility", Kind: domain.ColumnBool, Sortable: true},
			{Name: "updated_at", Label: "Updated date", Kind: domain.ColumnDate, Sortable: true},
		},
		GloballySearchable: []string{"name", "slug"},
		SearchLimit:        20,
	}
}
