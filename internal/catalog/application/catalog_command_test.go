package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/shopadmin/internal/catalog/domain"
	"github.com/wyfcoding/shopadmin/internal/catalog/infrastructure/persistence/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	cmd   *CatalogCommandService
	query *CatalogQueryService
	brand *domain.Brand
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Brand{}, &domain.Category{}, &domain.Product{}))

	products := mysql.NewProductRepository(db)
	categories := mysql.NewCategoryRepository(db)
	brands := mysql.NewBrandRepository(db)

	env := &testEnv{
		cmd:   NewCatalogCommandService(products, categories, brands, nil),
		query: NewCatalogQueryService(products, categories, brands),
	}

	brand, err := env.cmd.CreateBrand(context.Background(), CreateBrandCommand{Name: "Acme", IsVisible: true})
	require.NoError(t, err)
	env.brand = brand
	return env
}

func validProduct(env *testEnv) CreateProductCommand {
	return CreateProductCommand{
		Name:      "Awesome Socks",
		SKU:       "SOCK-001",
		Price:     "9.99",
		Quantity:  10,
		Type:      "deliverable",
		IsVisible: true,
		BrandID:   env.brand.ID,
	}
}

func TestCreateProduct(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.cmd.CreateProduct(ctx, validProduct(env))
	require.NoError(t, err)
	assert.Equal(t, "awesome-socks", p.Slug)
	assert.Equal(t, "9.99", p.Price.String())

	got, err := env.query.GetProduct(ctx, p.ID, domain.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Awesome Socks", got.Name)
}

func TestCreateProductRejectsDuplicateSlug(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.cmd.CreateProduct(ctx, validProduct(env))
	require.NoError(t, err)

	dup := validProduct(env)
	dup.SKU = "SOCK-002"
	_, err = env.cmd.CreateProduct(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrSlugTaken)
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.cmd.CreateProduct(ctx, validProduct(env))
	require.NoError(t, err)

	dup := validProduct(env)
	dup.Name = "Other Socks"
	_, err = env.cmd.CreateProduct(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrSKUTaken)
}

func TestCreateProductRejectsDuplicateName(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.cmd.CreateProduct(ctx, validProduct(env))
	require.NoError(t, err)

	dup := validProduct(env)
	dup.Slug = "other-slug"
	dup.SKU = "SOCK-002"
	_, err = env.cmd.CreateProduct(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrNameTaken)
}

func TestUpdateProductRejectsTakenName(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	first, err := env.cmd.CreateProduct(ctx, validProduct(env))
	require.NoError(t, err)

	second := validProduct(env)
	second.Name = "Plain Hat"
	second.SKU = "HAT-001"
	p, err := env.cmd.CreateProduct(ctx, second)
	require.NoError(t, err)

	// 改成别人的名字被拒
	_, err = env.cmd.UpdateProduct(ctx, UpdateProductCommand{
		ProductID: p.ID,
		Name:      first.Name,
		Price:     "9.99",
		Quantity:  10,
		Type:      "deliverable",
		IsVisible: true,
	})
	assert.ErrorIs(t, err, domain.ErrNameTaken)

	// 保留自己的名字没问题
	_, err = env.cmd.UpdateProduct(ctx, UpdateProductCommand{
		ProductID: p.ID,
		Name:      "Plain Hat",
		Price:     "12.00",
		Quantity:  10,
		Type:      "deliverable",
		IsVisible: true,
	})
	assert.NoError(t, err)
}

func TestCategoryRejectsDuplicateName(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.cmd.CreateCategory(ctx, CreateCategoryCommand{Name: "Clothing", IsVisible: true})
	require.NoError(t, err)

	_, err = env.cmd.CreateCategory(ctx, CreateCategoryCommand{Name: "Clothing", Slug: "clothing-2", IsVisible: true})
	assert.ErrorIs(t, err, domain.ErrNameTaken)

	other, err := env.cmd.CreateCategory(ctx, CreateCategoryCommand{Name: "Outlet", IsVisible: true})
	require.NoError(t, err)

	_, err = env.cmd.UpdateCategory(ctx, UpdateCategoryCommand{
		CategoryID: other.ID,
		Name:       "Clothing",
		IsVisible:  true,
	})
	assert.ErrorIs(t, err, domain.ErrNameTaken)

	// 更新时保留原名不算冲突
	_, err = env.cmd.UpdateCategory(ctx, UpdateCategoryCommand{
		CategoryID: other.ID,
		Name:       "Outlet",
		IsVisible:  false,
	})
	assert.NoError(t, err)
}

func TestCreateBrandRejectsDuplicateName(t *testing.T) {
	env := setupEnv(t)

	// setupEnv 已创建品牌 Acme
	_, err := env.cmd.CreateBrand(context.Background(), CreateBrandCommand{Name: "Acme", IsVisible: true})
	assert.ErrorIs(t, err, domain.ErrNameTaken)
}

func TestCreateProductValidation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	var verr *domain.ValidationError

	cmd := validProduct(env)
	cmd.Price = "9.999"
	_, err := env.cmd.CreateProduct(ctx, cmd)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price", verr.Field)

	cmd = validProduct(env)
	cmd.Quantity = 101
	_, err = env.cmd.CreateProduct(ctx, cmd)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Field)

	cmd = validProduct(env)
	cmd.BrandID = 999
	_, err = env.cmd.CreateProduct(ctx, cmd)
	assert.ErrorIs(t, err, domain.ErrBrandNotFound)

	cmd = validProduct(env)
	cmd.PublishedAt = "03/01/2026"
	_, err = env.cmd.CreateProduct(ctx, cmd)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "published_at", verr.Field)
}

func TestUpdateProduct(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.cmd.CreateProduct(ctx, validProduct(env))
	require.NoError(t, err)

	updated, err := env.cmd.UpdateProduct(ctx, UpdateProductCommand{
		ProductID: p.ID,
		Name:      "Awesome Socks v2",
		Price:     "12.50",
		Quantity:  5,
		Type:      "deliverable",
		IsVisible: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Awesome Socks v2", updated.Name)
	// slug 一经生成不再变
	assert.Equal(t, "awesome-socks", updated.Slug)
	assert.Equal(t, "12.5", updated.Price.String())
	assert.False(t, updated.IsVisible)
}

func TestDeleteAndRestoreProduct(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.cmd.CreateProduct(ctx, validProduct(env))
	require.NoError(t, err)

	require.NoError(t, env.cmd.DeleteProduct(ctx, p.ID))
	_, err = env.query.GetProduct(ctx, p.ID, domain.QueryOptions{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// 软删除的记录仍可带 IncludeDeleted 查到
	got, err := env.query.GetProduct(ctx, p.ID, domain.QueryOptions{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	require.NoError(t, env.cmd.RestoreProduct(ctx, p.ID))
	_, err = env.query.GetProduct(ctx, p.ID, domain.QueryOptions{})
	assert.NoError(t, err)
}

func TestCategoryTree(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	root, err := env.cmd.CreateCategory(ctx, CreateCategoryCommand{Name: "Clothing", IsVisible: true})
	require.NoError(t, err)
	assert.Equal(t, "clothing", root.Slug)

	child, err := env.cmd.CreateCategory(ctx, CreateCategoryCommand{Name: "Socks", ParentID: &root.ID, IsVisible: true})
	require.NoError(t, err)

	// 把根节点挂到自己的子节点下必须被拒绝
	_, err = env.cmd.UpdateCategory(ctx, UpdateCategoryCommand{
		CategoryID: root.ID,
		Name:       "Clothing",
		ParentID:   &child.ID,
		IsVisible:  true,
	})
	assert.ErrorIs(t, err, domain.ErrCategoryCycle)

	// 合法移动：子节点挂到新的根
	other, err := env.cmd.CreateCategory(ctx, CreateCategoryCommand{Name: "Outlet", IsVisible: true})
	require.NoError(t, err)
	moved, err := env.cmd.UpdateCategory(ctx, UpdateCategoryCommand{
		CategoryID: child.ID,
		Name:       "Socks",
		ParentID:   &other.ID,
		IsVisible:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, other.ID, *moved.ParentID)

	// 未知父节点
	missing := uint(999)
	_, err = env.cmd.CreateCategory(ctx, CreateCategoryCommand{Name: "Ghost", ParentID: &missing})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestSearchProducts(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.cmd.CreateProduct(ctx, validProduct(env))
	require.NoError(t, err)

	second := validProduct(env)
	second.Name = "Plain Hat"
	second.SKU = "HAT-001"
	_, err = env.cmd.CreateProduct(ctx, second)
	require.NoError(t, err)

	found, err := env.query.SearchProducts(ctx, "socks", 20)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Awesome Socks", found[0].Name)
	require.NotNil(t, found[0].Brand)
	assert.Equal(t, "Acme", found[0].Brand.Name)
}
