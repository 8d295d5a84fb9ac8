package domain

import "gorm.io/gorm"

// Category 商品分类，parent_id 构成一棵树（不允许成环）
type Category struct {
	gorm.Model
	Name        string      `gorm:"column:name;type:varchar(255);uniqueIndex;not null" json:"name"`
	Slug        string      `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string      `gorm:"column:description;type:text" json:"description"`
	IsVisible   bool        `gorm:"column:is_visible;not null;default:true" json:"is_visible"`
	ParentID    *uint       `gorm:"column:parent_id;index" json:"parent_id"`
	Parent      *Category   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children    []*Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

func (Category) TableName() string { return "categories" }

// ParentResolver 根据分类 ID 返回其 parent_id。
// 用于在不加载整棵树的情况下做环检测。
type ParentResolver func(id uint) (*uint, error)

// CheckParentCycle 校验把 categoryID 挂到 newParentID 下是否成环。
// 沿 parent 链向上走，遇到自身即成环；visited 集合兜底保证有限终止。
func CheckParentCycle(categoryID uint, newParentID *uint, resolve ParentResolver) error {
	visited := map[uint]bool{categoryID: true}
	cur := newParentID
	for cur != nil {
		if visited[*cur] {
			return ErrCategoryCycle
		}
		visited[*cur] = true
		next, err := resolve(*cur)
		if err != nil {
			return err
		}
		cur = next
	}
	return nil
}
