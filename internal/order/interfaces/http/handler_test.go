package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/shopadmin/internal/order/application"
	"github.com/wyfcoding/shopadmin/internal/order/domain"
	ordermysql "github.com/wyfcoding/shopadmin/internal/order/infrastructure/persistence/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubCatalog struct{ prices map[uint]string }

func (c *stubCatalog) UnitPrice(_ context.Context, productID uint) (decimal.Decimal, error) {
	raw, ok := c.prices[productID]
	if !ok {
		return decimal.Zero, domain.ErrProductNotFound
	}
	return decimal.NewFromString(raw)
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Order{}, &domain.OrderItem{}))

	repo := ordermysql.NewOrderRepository(db)
	catalog := &stubCatalog{prices: map[uint]string{10: "10.00", 11: "3.50"}}
	cmd := application.NewOrderCommandService(repo, catalog, nil)
	query := application.NewOrderQueryService(repo, nil)

	r := gin.New()
	NewOrderHandler(cmd, query).RegisterRoutes(r.Group(""))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderHTTP(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id":    7,
		"shipping_price": "5.00",
		"items": []gin.H{
			{"product_id": 10, "quantity": 2},
			{"product_id": 11, "quantity": 4},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"OR-`)
	assert.Contains(t, w.Body.String(), `"total":"39"`)
}

func TestCreateOrderUnknownProductHTTP(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id": 7,
		"items":       []gin.H{{"product_id": 999, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderBadPayloadHTTP(t *testing.T) {
	r := setupRouter(t)

	// customer_id 缺失
	w := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{"notes": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLineMutationsHTTP(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id":    7,
		"shipping_price": "5.00",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// 追加一行
	w = doJSON(t, r, http.MethodPost, "/api/v1/orders/1/items", gin.H{
		"product_id": 10, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"line_total":"20"`)
	assert.Contains(t, w.Body.String(), `"order_total":"25"`)

	// 改数量
	w = doJSON(t, r, http.MethodPut, "/api/v1/orders/1/items/1/quantity", gin.H{"quantity": 5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"line_total":"50"`)
	assert.Contains(t, w.Body.String(), `"order_total":"55"`)

	// 换商品：单价快照换成新品价格
	w = doJSON(t, r, http.MethodPut, "/api/v1/orders/1/items/1/product", gin.H{"product_id": 11})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"line_total":"17.5"`)

	// 改运费
	w = doJSON(t, r, http.MethodPut, "/api/v1/orders/1/shipping", gin.H{"shipping_price": "0"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"order_total":"17.5"`)

	// 删行
	w = doJSON(t, r, http.MethodDelete, "/api/v1/orders/1/items/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"order_total":"0"`)

	// 删除不存在的行
	w = doJSON(t, r, http.MethodDelete, "/api/v1/orders/1/items/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChangeStatusHTTP(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{"customer_id": 7})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/v1/orders/1/status", gin.H{"status": "processing"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/v1/orders/1/status", gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/orders?status=processing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestGetOrderNotFoundHTTP(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/orders/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
