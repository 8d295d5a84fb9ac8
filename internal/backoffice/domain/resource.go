// Package domain 描述后台资源的声明式 UI 模式。
// 每个资源的表单、表格、过滤器在启动时构造一次，交给通用渲染端消费，
// 不依赖任何隐式全局注册。
package domain

import "context"

// FieldType 表单控件类型
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldMarkdown FieldType = "markdown"
	FieldSelect   FieldType = "select"
	FieldToggle   FieldType = "toggle"
	FieldDate     FieldType = "date"
	FieldDecimal  FieldType = "decimal"
	FieldInteger  FieldType = "integer"
	FieldRelation FieldType = "relation"
	FieldRepeater FieldType = "repeater"
)

// Field 表单字段
type Field struct {
	Name     string            `json:"name"`
	Label    string            `json:"label"`
	Type     FieldType         `json:"type"`
	Required bool              `json:"required,omitempty"`
	ReadOnly bool              `json:"read_only,omitempty"`
	Helper   string            `json:"helper,omitempty"`
	Options  map[string]string `json:"options,omitempty"`
	Relation string            `json:"relation,omitempty"`
	Min      *int              `json:"min,omitempty"`
	Max      *int              `json:"max,omitempty"`
	Fields   []Field           `json:"fields,omitempty"`
}

// ColumnKind 表格列渲染方式
type ColumnKind string

const (
	ColumnText  ColumnKind = "text"
	ColumnBool  ColumnKind = "bool"
	ColumnImage ColumnKind = "image"
	ColumnDate  ColumnKind = "date"
)

// Column 表格列
type Column struct {
	Name       string     `json:"name"`
	Label      string     `json:"label"`
	Kind       ColumnKind `json:"kind"`
	Searchable bool       `json:"searchable,omitempty"`
	Sortable   bool       `json:"sortable,omitempty"`
	Toggleable bool       `json:"toggleable,omitempty"`
}

// FilterType 过滤器类型
type FilterType string

const (
	FilterTernary FilterType = "ternary"
	FilterSelect  FilterType = "select"
)

// Filter 表格过滤器
type Filter struct {
	Name     string     `json:"name"`
	Label    string     `json:"label"`
	Type     FilterType `json:"type"`
	Relation string     `json:"relation,omitempty"`
}

// Navigation 导航位置
type Navigation struct {
	Icon  string `json:"icon"`
	Group string `json:"group"`
	Sort  int    `json:"sort"`
}

// Resource 一个后台资源的完整 UI 模式
type Resource struct {
	Name               string     `json:"name"`
	Title              string     `json:"title"`
	TitleAttribute     string     `json:"title_attribute"`
	Navigation         Navigation `json:"navigation"`
	Fields             []Field    `json:"fields"`
	Columns            []Column   `json:"columns"`
	Filters            []Filter   `json:"filters"`
	GloballySearchable []string   `json:"globally_searchable,omitempty"`
	SearchLimit        int        `json:"search_limit,omitempty"`
}

// Badge 导航徽标值与颜色
type Badge struct {
	Value string `json:"value"`
	Color string `json:"color"`
}

// BadgeProvider 运行时计算徽标
type BadgeProvider func(ctx context.Context) (Badge, error)

// NavigationItem 渲染后的导航条目
type NavigationItem struct {
	Resource string `json:"resource"`
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	Group    string `json:"group"`
	Sort     int    `json:"sort"`
	Badge    *Badge `json:"badge,omitempty"`
}

// SearchResult 全局搜索结果条目
type SearchResult struct {
	Resource string            `json:"resource"`
	ID       uint              `json:"id"`
	Title    string            `json:"title"`
	Details  map[string]string `json:"details,omitempty"`
}
