package application

// CreateProductCommand 创建商品命令。Price 为十进制字符串，避免浮点精度损失。
type CreateProductCommand struct {
	Name        string
	Slug        string
	SKU         string
	Description string
	Price       string
	Quantity    int
	Type        string
	IsVisible   bool
	IsFeatured  bool
	PublishedAt string
	ImagePath   string
	BrandID     uint
	CategoryIDs []uint
}

// UpdateProductCommand 更新商品命令
type UpdateProductCommand struct {
	ProductID   uint
	Name        string
	Description string
	Price       string
	Quantity    int
	Type        string
	IsVisible   bool
	IsFeatured  bool
	ImagePath   string
	BrandID     uint
	CategoryIDs []uint
}

// CreateCategoryCommand 创建分类命令
type CreateCategoryCommand struct {
	Name        string
	Slug        string
	Description string
	IsVisible   bool
	ParentID    *uint
}

// UpdateCategoryCommand 更新分类命令（含移动父节点）
type UpdateCategoryCommand struct {
	CategoryID  uint
	Name        string
	Description string
	IsVisible   bool
	ParentID    *uint
}

// CreateBrandCommand 创建品牌命令
type CreateBrandCommand struct {
	Name      string
	IsVisible bool
}
