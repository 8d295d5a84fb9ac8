// Package http 负责后台元数据接口：资源模式、导航与全局搜索。
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/shopadmin/internal/backoffice/application"
)

// BackofficeHandler 后台控制台接口
type BackofficeHandler struct {
	registry *application.Registry
	search   *application.GlobalSearchService
}

func NewBackofficeHandler(registry *application.Registry, search *application.GlobalSearchService) *BackofficeHandler {
	return &BackofficeHandler{registry: registry, search: search}
}

func (h *BackofficeHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/api/v1/backoffice")
	{
		g.GET("/resources", h.ListResources)
		g.GET("/resources/:name", h.GetResource)
		g.GET("/navigation", h.Navigation)
		g.GET("/search", h.GlobalSearch)
	}
}

// ListResources 返回全部资源模式
func (h *BackofficeHandler) ListResources(c *gin.Context) {
	response.Success(c, h.registry.Resources())
}

// GetResource 返回单个资源模式
func (h *BackofficeHandler) GetResource(c *gin.Context) {
	res, ok := h.registry.Resource(c.Param("name"))
	if !ok {
		response.ErrorWithStatus(c, http.StatusNotFound, "resource not found", "")
		return
	}
	response.Success(c, res)
}

// Navigation 返回带徽标的导航条目
func (h *BackofficeHandler) Navigation(c *gin.Context) {
	response.Success(c, h.registry.Navigation(c.Request.Context()))
}

// GlobalSearch 跨资源搜索，q 为空时返回空列表。
func (h *BackofficeHandler) GlobalSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Success(c, []any{})
		return
	}
	response.Success(c, h.search.Search(c.Request.Context(), query))
}
