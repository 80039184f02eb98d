package public

import (
	"strings"

	"github.com/tienda-tcg/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	items, err := h.CatalogService.ListProducts(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_fetch_failed")
		return
	}
	response.Success(c, gin.H{"items": items})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	handle := strings.TrimSpace(c.Param("handle"))
	if handle == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.CatalogService.ProductByHandle(c.Request.Context(), handle)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_fetch_failed")
		return
	}
	response.Success(c, product)
}

// GetCollection 集合商品，支持按标签筛选
// 标签优先取路径参数，其次取 ?tag=
func (h *Handler) GetCollection(c *gin.Context) {
	handle := strings.TrimSpace(c.Param("handle"))
	tag := strings.TrimSpace(c.Param("tag"))
	if tag == "" {
		tag = strings.TrimSpace(c.Query("tag"))
	}
	items, err := h.CatalogService.CollectionProducts(c.Request.Context(), handle, tag)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_fetch_failed")
		return
	}
	response.Success(c, gin.H{
		"handle": handle,
		"tag":    tag,
		"items":  items,
	})
}
