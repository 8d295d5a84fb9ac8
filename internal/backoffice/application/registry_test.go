package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/shopadmin/internal/backoffice/domain"
	catalogapp "github.com/wyfcoding/shopadmin/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/shopadmin/internal/catalog/domain"
	catalogmysql "github.com/wyfcoding/shopadmin/internal/catalog/infrastructure/persistence/mysql"
	orderapp "github.com/wyfcoding/shopadmin/internal/order/application"
	orderdomain "github.com/wyfcoding/shopadmin/internal/order/domain"
	ordermysql "github.com/wyfcoding/shopadmin/internal/order/infrastructure/persistence/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixtures struct {
	db           *gorm.DB
	catalogQuery *catalogapp.CatalogQueryService
	orderQuery   *orderapp.OrderQueryService
	registry     *Registry
}

func setupFixtures(t *testing.T) *fixtures {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Brand{},
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	))

	catalogQuery := catalogapp.NewCatalogQueryService(
		catalogmysql.NewProductRepository(db),
		catalogmysql.NewCategoryRepository(db),
		catalogmysql.NewBrandRepository(db),
	)
	orderQuery := orderapp.NewOrderQueryService(ordermysql.NewOrderRepository(db), nil)

	return &fixtures{
		db:           db,
		catalogQuery: catalogQuery,
		orderQuery:   orderQuery,
		registry:     NewRegistry(catalogQuery, orderQuery),
	}
}

func TestRegistryResources(t *testing.T) {
	f := setupFixtures(t)

	resources := f.registry.Resources()
	require.Len(t, resources, 3)

	products, ok := f.registry.Resource("products")
	require.True(t, ok)
	assert.Equal(t, "name", products.TitleAttribute)
	assert.Equal(t, "heroicon-o-bolt", products.Navigation.Icon)
	assert.Equal(t, []string{"name", "slug", "description"}, products.GloballySearchable)
	assert.Equal(t, 20, products.SearchLimit)

	orders, ok := f.registry.Resource("orders")
	require.True(t, ok)
	assert.Equal(t, "number", orders.TitleAttribute)
	assert.Equal(t, "heroicon-o-shopping-bag", orders.Navigation.Icon)

	// 行项目以嵌套字段组出现在订单表单里
	var found bool
	for _, field := range orders.Fields {
		if field.Name == "items" {
			found = true
			assert.NotEmpty(t, field.Fields)
		}
	}
	assert.True(t, found)

	_, ok = f.registry.Resource("customers")
	assert.False(t, ok)
}

func TestNavigationSortedWithBadges(t *testing.T) {
	f := setupFixtures(t)
	ctx := context.Background()

	brand := &catalogdomain.Brand{Name: "Acme", Slug: "acme", IsVisible: true}
	require.NoError(t, f.db.Create(brand).Error)
	require.NoError(t, f.db.Create(&catalogdomain.Product{
		Name: "Socks", Slug: "socks", SKU: "S-1",
		Price: decimal.RequireFromString("9.99"),
		Type:  catalogdomain.ProductTypeDeliverable, BrandID: brand.ID,
	}).Error)
	require.NoError(t, f.db.Create(&orderdomain.Order{
		Number: "OR-1", Status: orderdomain.OrderStatusProcessing,
	}).Error)

	items := f.registry.Navigation(ctx)
	require.Len(t, items, 3)
	assert.Equal(t, "products", items[0].Resource)
	assert.Equal(t, "orders", items[1].Resource)
	assert.Equal(t, "categories", items[2].Resource)

	require.NotNil(t, items[0].Badge)
	assert.Equal(t, "1", items[0].Badge.Value)
	assert.Equal(t, "primary", items[0].Badge.Color)

	require.NotNil(t, items[1].Badge)
	assert.Equal(t, "1", items[1].Badge.Value)
	assert.Equal(t, "primary", items[1].Badge.Color)

	// 分类没有徽标
	assert.Nil(t, items[2].Badge)
}

func TestOrderBadgeTurnsWarningOnBacklog(t *testing.T) {
	f := setupFixtures(t)
	ctx := context.Background()

	for i := 0; i < processingWarnThreshold+1; i++ {
		require.NoError(t, f.db.Create(&orderdomain.Order{
			Number: "OR-" + string(rune('A'+i)), Status: orderdomain.OrderStatusProcessing,
		}).Error)
	}

	var badge *domain.Badge
	for _, item := range f.registry.Navigation(ctx) {
		if item.Resource == "orders" {
			badge = item.Badge
		}
	}
	require.NotNil(t, badge)
	assert.Equal(t, "11", badge.Value)
	assert.Equal(t, "warning", badge.Color)
}

func TestGlobalSearch(t *testing.T) {
	f := setupFixtures(t)
	ctx := context.Background()

	brand := &catalogdomain.Brand{Name: "Acme", Slug: "acme", IsVisible: true}
	require.NoError(t, f.db.Create(brand).Error)
	require.NoError(t, f.db.Create(&catalogdomain.Product{
		Name: "Awesome Socks", Slug: "awesome-socks", SKU: "S-1",
		Price: decimal.RequireFromString("9.99"),
		Type:  catalogdomain.ProductTypeDeliverable, BrandID: brand.ID,
	}).Error)
	require.NoError(t, f.db.Create(&catalogdomain.Category{
		Name: "Socks", Slug: "socks", IsVisible: true,
	}).Error)

	search := NewGlobalSearchService(f.catalogQuery, f.orderQuery)
	results := search.Search(ctx, "socks")
	require.Len(t, results, 2)

	assert.Equal(t, "products", results[0].Resource)
	assert.Equal(t, "Awesome Socks", results[0].Title)
	assert.Equal(t, "9.99", results[0].Details["Price"])
	assert.Equal(t, "Acme", results[0].Details["Brand"])

	assert.Equal(t, "categories", results[1].Resource)
	assert.Equal(t, "Socks", results[1].Title)
}
