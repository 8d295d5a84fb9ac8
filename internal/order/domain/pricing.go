package domain

import "github.com/shopspring/decimal"

// 金额统一保留两位小数；乘法产生多余精度时按银行家舍入收敛。
const moneyScale = 2

// LineTotal 行小计 = 数量 × 单价快照
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).RoundBank(moneyScale)
}

// ValidateQuantity 行数量必须为正整数
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	return nil
}

// ValidateUnitPrice 单价非负且最多两位小数
func ValidateUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return &ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}
	if price.Exponent() < -moneyScale {
		return &ValidationError{Field: "unit_price", Reason: "must have at most two decimal places"}
	}
	return nil
}

// RecomputeTotal 全量重算订单总额 = 运费 + Σ 行小计。
// 不做增量缓存，任何行变动后都整单重算，幂等。
func (o *Order) RecomputeTotal() decimal.Decimal {
	total := o.ShippingPrice
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal)
	}
	o.Total = total.RoundBank(moneyScale)
	return o.Total
}

// SelectProduct 把商品当前价格写入行的单价快照并重算。
// 校验全部通过后才改聚合，保证失败时状态不变。
func (o *Order) SelectProduct(lineID uint, productID uint, unitPrice decimal.Decimal) error {
	line := o.findLine(lineID)
	if line == nil {
		return ErrLineNotFound
	}
	if err := ValidateUnitPrice(unitPrice); err != nil {
		return err
	}
	line.ProductID = productID
	line.UnitPrice = unitPrice
	line.LineTotal = LineTotal(line.Quantity, unitPrice)
	o.RecomputeTotal()
	return nil
}

// SetQuantity 修改行数量并重算行小计与订单总额
func (o *Order) SetQuantity(lineID uint, quantity int) error {
	line := o.findLine(lineID)
	if line == nil {
		return ErrLineNotFound
	}
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	line.Quantity = quantity
	line.LineTotal = LineTotal(quantity, line.UnitPrice)
	o.RecomputeTotal()
	return nil
}

// AddLine 追加一行：选品 + 数量 + 重算，整体成功或整体不生效。
func (o *Order) AddLine(productID uint, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := ValidateUnitPrice(unitPrice); err != nil {
		return nil, err
	}
	o.Items = append(o.Items, OrderItem{
		OrderID:   o.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: LineTotal(quantity, unitPrice),
	})
	o.RecomputeTotal()
	return &o.Items[len(o.Items)-1], nil
}

// RemoveLine 按行 ID 删除并重算
func (o *Order) RemoveLine(lineID uint) error {
	for i := range o.Items {
		if o.Items[i].ID == lineID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.RecomputeTotal()
			return nil
		}
	}
	return ErrLineNotFound
}

// SetShippingPrice 修改运费并重算总额
func (o *Order) SetShippingPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return &ValidationError{Field: "shipping_price", Reason: "must not be negative"}
	}
	if price.Exponent() < -moneyScale {
		return &ValidationError{Field: "shipping_price", Reason: "must have at most two decimal places"}
	}
	o.ShippingPrice = price
	o.RecomputeTotal()
	return nil
}

func (o *Order) findLine(lineID uint) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == lineID {
			return &o.Items[i]
		}
	}
	return nil
}
