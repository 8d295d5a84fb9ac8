package domain

import "gorm.io/gorm"

// Brand 品牌实体
type Brand struct {
	gorm.Model
	Name      string `gorm:"column:name;type:varchar(255);uniqueIndex;not null" json:"name"`
	Slug      string `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	IsVisible bool   `gorm:"column:is_visible;not null;default:true" json:"is_visible"`
}

func (Brand) TableName() string { return "brands" }
