package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/shopadmin/internal/order/application"
	"github.com/wyfcoding/shopadmin/internal/order/domain"
)

// OrderHandler HTTP 处理器
// 行项目编辑接口每次返回 {line_total, order_total}，驱动 UI 的派生字段刷新。
type OrderHandler struct {
	cmd   *application.OrderCommandService
	query *application.OrderQueryService
}

func NewOrderHandler(cmd *application.OrderCommandService, query *application.OrderQueryService) *OrderHandler {
	return &OrderHandler{cmd: cmd, query: query}
}

// 注册路由
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/orders")
	{
		api.POST("", h.CreateOrder)
		api.GET("", h.ListOrders)
		api.GET("/:id", h.GetOrder)
		api.DELETE("/:id", h.DeleteOrder)
		api.PUT("/:id/status", h.ChangeStatus)
		api.PUT("/:id/shipping", h.UpdateShipping)
		api.POST("/:id/items", h.AddLine)
		api.DELETE("/:id/items/:line", h.RemoveLine)
		api.PUT("/:id/items/:line/quantity", h.ChangeQuantity)
		api.PUT("/:id/items/:line/product", h.SelectProduct)
	}
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	CustomerID    uint   `json:"customer_id" binding:"required"`
	Status        string `json:"status"`
	ShippingPrice string `json:"shipping_price"`
	Notes         string `json:"notes"`
	Items         []struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required"`
	} `json:"items"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	cmd := application.CreateOrderCommand{
		CustomerID:    req.CustomerID,
		Status:        req.Status,
		ShippingPrice: req.ShippingPrice,
		Notes:         req.Notes,
	}
	for _, item := range req.Items {
		cmd.Lines = append(cmd.Lines, application.LineInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.cmd.CreateOrder(c.Request.Context(), cmd)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to create order", "error", err)
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.query.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	status := domain.OrderStatus(c.Query("status"))
	if status != "" && !domain.ValidStatus(status) {
		response.ErrorWithStatus(c, http.StatusBadRequest, "unknown order status", "")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	orders, total, err := h.query.ListOrders(c.Request.Context(), status, page, size)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list orders", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"items": orders, "total": total, "page": page, "size": size})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmd.DeleteOrder(c.Request.Context(), id); err != nil {
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, gin.H{"status": "deleted", "order_id": id})
}

func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	if err := h.cmd.ChangeStatus(c.Request.Context(), id, req.Status); err != nil {
		logging.Error(c.Request.Context(), "Failed to change order status", "order_id", id, "error", err)
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, gin.H{"order_id": id, "status": req.Status})
}

func (h *OrderHandler) UpdateShipping(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		ShippingPrice string `json:"shipping_price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	result, err := h.cmd.UpdateShipping(c.Request.Context(), id, req.ShippingPrice)
	if err != nil {
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, result)
}

// AddLineRequest 追加行项目请求
type AddLineRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

func (h *OrderHandler) AddLine(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	result, err := h.cmd.AddLine(c.Request.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to add order line", "order_id", id, "error", err)
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, result)
}

func (h *OrderHandler) RemoveLine(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	lineID, ok := idParam(c, "line")
	if !ok {
		return
	}
	result, err := h.cmd.RemoveLine(c.Request.Context(), id, lineID)
	if err != nil {
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, result)
}

func (h *OrderHandler) ChangeQuantity(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	lineID, ok := idParam(c, "line")
	if !ok {
		return
	}
	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	result, err := h.cmd.ChangeLineQuantity(c.Request.Context(), id, lineID, req.Quantity)
	if err != nil {
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, result)
}

func (h *OrderHandler) SelectProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	lineID, ok := idParam(c, "line")
	if !ok {
		return
	}
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	result, err := h.cmd.SelectLineProduct(c.Request.Context(), id, lineID, req.ProductID)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to select line product", "order_id", id, "line_id", lineID, "error", err)
		response.ErrorWithStatus(c, statusOf(err), err.Error(), "")
		return
	}
	response.Success(c, result)
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid "+name, "")
		return 0, false
	}
	return uint(id), true
}

func statusOf(err error) int {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrLineNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
