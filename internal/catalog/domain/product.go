// Package domain 包含商品目录的领域模型
package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductType 商品类型
type ProductType string

const (
	ProductTypeDownloadable ProductType = "downloadable"
	ProductTypeDeliverable  ProductType = "deliverable"
)

// MaxStockQuantity 库存数量上限（后台录入约束）
const MaxStockQuantity = 100

// Product 商品实体
type Product struct {
	gorm.Model
	Name        string          `gorm:"column:name;type:varchar(255);uniqueIndex;not null" json:"name"`
	Slug        string          `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	SKU         string          `gorm:"column:sku;type:varchar(64);uniqueIndex;not null" json:"sku"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	Quantity    int             `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Type        ProductType     `gorm:"column:type;type:varchar(20);not null" json:"type"`
	IsVisible   bool            `gorm:"column:is_visible;not null;default:true" json:"is_visible"`
	IsFeatured  bool            `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	PublishedAt *time.Time      `gorm:"column:published_at" json:"published_at"`
	ImagePath   string          `gorm:"column:image_path;type:varchar(255)" json:"image_path"`
	BrandID     uint            `gorm:"column:brand_id;index;not null" json:"brand_id"`
	Brand       *Brand          `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Categories  []*Category     `gorm:"many2many:product_categories" json:"categories,omitempty"`
}

func (Product) TableName() string { return "products" }

// Validate 校验商品字段
func (p *Product) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.SKU == "" {
		return &ValidationError{Field: "sku", Reason: "must not be empty"}
	}
	if err := ValidateMoney("price", p.Price); err != nil {
		return err
	}
	if p.Quantity < 0 || p.Quantity > MaxStockQuantity {
		return &ValidationError{Field: "quantity", Reason: "must be between 0 and 100"}
	}
	switch p.Type {
	case ProductTypeDownloadable, ProductTypeDeliverable:
	default:
		return &ValidationError{Field: "type", Reason: "unknown product type"}
	}
	return nil
}

// ValidateMoney 校验货币值：非负且最多两位小数。
func ValidateMoney(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return &ValidationError{Field: field, Reason: "must not be negative"}
	}
	if v.Exponent() < -2 {
		return &ValidationError{Field: field, Reason: "must have at most two decimal places"}
	}
	return nil
}
