package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/shopadmin/internal/catalog/application"
	"github.com/wyfcoding/shopadmin/internal/catalog/domain"
)

// CatalogHandler 商品目录 HTTP 处理器
type CatalogHandler struct {
	cmd   *application.CatalogCommandService
	query *application.CatalogQueryService
}

func NewCatalogHandler(cmd *application.CatalogCommandService, query *application.CatalogQueryService) *CatalogHandler {
	return &CatalogHandler{cmd: cmd, query: query}
}

// 注册路由
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/api/v1/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.POST("/:id/restore", h.RestoreProduct)
	}
	categories := router.Group("/api/v1/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
	brands := router.Group("/api/v1/brands")
	{
		brands.POST("", h.CreateBrand)
		brands.GET("", h.ListBrands)
	}
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	SKU         string `json:"sku" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
	Quantity    int    `json:"quantity"`
	Type        string `json:"type" binding:"required"`
	IsVisible   *bool  `json:"is_visible"`
	IsFeatured  bool   `json:"is_featured"`
	PublishedAt string `json:"published_at"`
	ImagePath   string `json:"image_path"`
	BrandID     uint   `json:"brand_id" binding:"required"`
	CategoryIDs []uint `json:"category_ids"`
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}
	cmd := application.CreateProductCommand{
		Name:        req.Name,
		Slug:        req.Slug,
		SKU:         req.SKU,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Type:        req.Type,
		IsVisible:   visible,
		IsFeatured:  req.IsFeatured,
		PublishedAt: req.PublishedAt,
		ImagePath:   req.ImagePath,
		BrandID:     req.BrandID,
		CategoryIDs: req.CategoryIDs,
	}

	p, err := h.cmd.CreateProduct(c.Request.Context(), cmd)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to create product", "error", err)
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, p)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	opts := domain.QueryOptions{
		IncludeDeleted: c.Query("include_deleted") == "true",
		EagerLoad:      []string{"Brand", "Categories"},
	}
	p, err := h.query.GetProduct(c.Request.Context(), id, opts)
	if err != nil {
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, p)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		Search:         c.Query("search"),
		IncludeDeleted: c.Query("include_deleted") == "true",
		WithBrand:      true,
	}
	if v := c.Query("visible"); v != "" {
		visible := v == "true"
		filter.Visible = &visible
	}
	if b := c.Query("brand_id"); b != "" {
		brandID, err := strconv.ParseUint(b, 10, 32)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid brand_id", "")
			return
		}
		filter.BrandID = uint(brandID)
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	products, total, err := h.query.ListProducts(c.Request.Context(), filter, page, size)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list products", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"items": products, "total": total, "page": page, "size": size})
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}
	cmd := application.UpdateProductCommand{
		ProductID:   id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Type:        req.Type,
		IsVisible:   visible,
		IsFeatured:  req.IsFeatured,
		ImagePath:   req.ImagePath,
		BrandID:     req.BrandID,
		CategoryIDs: req.CategoryIDs,
	}
	p, err := h.cmd.UpdateProduct(c.Request.Context(), cmd)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to update product", "product_id", id, "error", err)
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, p)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.cmd.DeleteProduct(c.Request.Context(), id); err != nil {
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, gin.H{"status": "deleted", "product_id": id})
}

func (h *CatalogHandler) RestoreProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.cmd.RestoreProduct(c.Request.Context(), id); err != nil {
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, gin.H{"status": "restored", "product_id": id})
}

// CategoryRequest 创建/更新分类请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsVisible   *bool  `json:"is_visible"`
	ParentID    *uint  `json:"parent_id"`
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}
	cat, err := h.cmd.CreateCategory(c.Request.Context(), application.CreateCategoryCommand{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsVisible:   visible,
		ParentID:    req.ParentID,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to create category", "error", err)
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, cat)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	opts := domain.QueryOptions{
		IncludeDeleted: c.Query("include_deleted") == "true",
		EagerLoad:      []string{"Parent"},
	}
	categories, err := h.query.ListCategories(c.Request.Context(), opts)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, categories)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}
	cat, err := h.cmd.UpdateCategory(c.Request.Context(), application.UpdateCategoryCommand{
		CategoryID:  id,
		Name:        req.Name,
		Description: req.Description,
		IsVisible:   visible,
		ParentID:    req.ParentID,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to update category", "category_id", id, "error", err)
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, cat)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.cmd.DeleteCategory(c.Request.Context(), id); err != nil {
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, gin.H{"status": "deleted", "category_id": id})
}

// BrandRequest 创建品牌请求
type BrandRequest struct {
	Name      string `json:"name" binding:"required"`
	IsVisible *bool  `json:"is_visible"`
}

func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}
	b, err := h.cmd.CreateBrand(c.Request.Context(), application.CreateBrandCommand{Name: req.Name, IsVisible: visible})
	if err != nil {
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, b)
}

func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.query.ListBrands(c.Request.Context())
	if err != nil {
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, brands)
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid id", "")
		return 0, false
	}
	return uint(id), true
}

func statusOf(err error) int {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrBrandNotFound),
		errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSlugTaken),
		errors.Is(err, domain.ErrSKUTaken),
		errors.Is(err, domain.ErrNameTaken),
		errors.Is(err, domain.ErrCategoryCycle):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
