package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "awesome-socks", Slugify("Awesome Socks"))
	assert.Equal(t, "t-shirt-2-pack", Slugify("  T-Shirt (2 Pack)! "))
	assert.Equal(t, "cafe", Slugify("café"))
	assert.Equal(t, "creme-brulee", Slugify("Crème Brûlée"))
	assert.Equal(t, "", Slugify("!!!"))
	assert.Equal(t, "abc123", Slugify("ABC123"))
}

func TestProductValidate(t *testing.T) {
	valid := func() *Product {
		return &Product{
			Name:     "Socks",
			SKU:      "SKU-1",
			Price:    money("9.99"),
			Quantity: 10,
			Type:     ProductTypeDeliverable,
		}
	}

	assert.NoError(t, valid().Validate())

	cases := []struct {
		name   string
		mutate func(*Product)
		field  string
	}{
		{"empty name", func(p *Product) { p.Name = "" }, "name"},
		{"empty sku", func(p *Product) { p.SKU = "" }, "sku"},
		{"negative price", func(p *Product) { p.Price = money("-1") }, "price"},
		{"price too precise", func(p *Product) { p.Price = money("9.999") }, "price"},
		{"negative quantity", func(p *Product) { p.Quantity = -1 }, "quantity"},
		{"quantity over cap", func(p *Product) { p.Quantity = MaxStockQuantity + 1 }, "quantity"},
		{"unknown type", func(p *Product) { p.Type = "virtual" }, "type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid()
			tc.mutate(p)
			err := p.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidateMoney(t *testing.T) {
	assert.NoError(t, ValidateMoney("price", money("0")))
	assert.NoError(t, ValidateMoney("price", money("19.90")))
	assert.Error(t, ValidateMoney("price", money("-0.01")))
	assert.Error(t, ValidateMoney("price", money("1.005")))
}

func TestCheckParentCycle(t *testing.T) {
	// 树：1 <- 2 <- 3
	parents := map[uint]*uint{1: nil, 2: uintPtr(1), 3: uintPtr(2)}
	resolve := func(id uint) (*uint, error) { return parents[id], nil }

	// 挂到自己的后代下成环
	assert.ErrorIs(t, CheckParentCycle(1, uintPtr(3), resolve), ErrCategoryCycle)
	assert.ErrorIs(t, CheckParentCycle(2, uintPtr(3), resolve), ErrCategoryCycle)
	// 自己做自己的父节点
	assert.ErrorIs(t, CheckParentCycle(1, uintPtr(1), resolve), ErrCategoryCycle)

	// 合法的移动
	assert.NoError(t, CheckParentCycle(3, uintPtr(1), resolve))
	assert.NoError(t, CheckParentCycle(3, nil, resolve))
	assert.NoError(t, CheckParentCycle(2, nil, resolve))
}

func uintPtr(v uint) *uint { return &v }
