// Package catalog 把商品目录上下文适配成订单上下文的查询端口
package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	catalogdomain "github.com/wyfcoding/shopadmin/internal/catalog/domain"
	"github.com/wyfcoding/shopadmin/internal/order/domain"
)

type productCatalog struct {
	products catalogdomain.ProductRepository
}

// NewProductCatalog 基于目录仓储实现订单侧的 ProductCatalog 端口
func NewProductCatalog(products catalogdomain.ProductRepository) domain.ProductCatalog {
	return &productCatalog{products: products}
}

// UnitPrice 返回商品当前单价。
// 软删除或不可见的商品对下单不可用，统一报 ErrProductNotFound。
func (c *productCatalog) UnitPrice(ctx context.Context, productID uint) (decimal.Decimal, error) {
	p, err := c.products.GetByID(ctx, productID, catalogdomain.QueryOptions{})
	if err != nil {
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			return decimal.Zero, domain.ErrProductNotFound
		}
		return decimal.Zero, err
	}
	if !p.IsVisible {
		return decimal.Zero, domain.ErrProductNotFound
	}
	return p.Price, nil
}
