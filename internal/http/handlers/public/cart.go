package public

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/tienda-tcg/internal/http/response"
	"github.com/tienda-tcg/internal/i18n"
	"github.com/tienda-tcg/internal/models"
	"github.com/tienda-tcg/internal/service"

	"github.com/gin-gonic/gin"
)

// CartLineAddRequest 加入购物车请求
type CartLineAddRequest struct {
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CartLineUpdateRequest 修改行数量请求，0 表示删除
type CartLineUpdateRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// StockNotice 库存上限提示
type StockNotice struct {
	LineID      string `json:"line_id"`
	Title       string `json:"title"`
	MaxQuantity int    `json:"max_quantity"`
	Message     string `json:"message"`
}

// GetCart 获取当前会话购物车
func (h *Handler) GetCart(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}
	cart, err := store.Refresh(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_fetch_failed")
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// AddCartLine 加入购物车
func (h *Handler) AddCartLine(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}
	var req CartLineAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	cart, err := store.Add(c.Request.Context(), req.VariantID, req.Quantity)
	if err != nil {
		respondCartMutationError(c, cart, err)
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// UpdateCartLine 修改行数量
func (h *Handler) UpdateCartLine(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}
	var req CartLineUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	lineID := strings.TrimSpace(c.Param("line_id"))
	cart, err := store.UpdateQuantity(c.Request.Context(), lineID, *req.Quantity)
	if err != nil {
		respondCartMutationError(c, cart, err)
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// RemoveCartLine 删除行
func (h *Handler) RemoveCartLine(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}
	cart, err := store.Remove(c.Request.Context(), c.Param("line_id"))
	if err != nil {
		respondCartMutationError(c, cart, err)
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// Checkout 跳转到平台结账页
func (h *Handler) Checkout(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}
	cart, err := store.Refresh(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_fetch_failed")
		return
	}
	if cart == nil || !isWebURL(cart.CheckoutURL) {
		respondError(c, response.CodeNotFound, "error.checkout_unavailable", nil)
		return
	}
	c.Redirect(http.StatusFound, cart.CheckoutURL)
}

func (h *Handler) sessionCart(c *gin.Context) (*service.CartStore, bool) {
	key, ok := getSessionKey(c)
	if !ok {
		return nil, false
	}
	if h.CartSessions == nil {
		respondError(c, response.CodeServiceUnavailable, "error.upstream_unavailable", nil)
		return nil, false
	}
	return h.CartSessions.Store(key), true
}

// respondCartMutationError 库存上限返回提示和未变化的购物车，其余按规则映射
func respondCartMutationError(c *gin.Context, cart *models.Cart, err error) {
	var limit *service.StockLimitError
	if errors.As(err, &limit) {
		notice := StockNotice{
			LineID:      limit.LineID,
			Title:       limit.Title,
			MaxQuantity: limit.MaxQuantity,
		}
		notice.Message = stockLimitMessage(c, limit)
		respondErrorWithData(c, response.CodeConflict, "error.cart_stock_limit",
			gin.H{"cart": cart, "notice": notice}, limit.Title, limit.MaxQuantity)
		return
	}
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
}

func stockLimitMessage(c *gin.Context, limit *service.StockLimitError) string {
	return i18n.Sprintf(i18n.ResolveLocale(c), "error.cart_stock_limit", limit.Title, limit.MaxQuantity)
}

func isWebURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return false
	}
	return parsed.Scheme == "https" || parsed.Scheme == "http"
}
