package public

import (
	"net/http"

	"github.com/tienda-tcg/internal/http/response"
	"github.com/tienda-tcg/internal/i18n"
	"github.com/tienda-tcg/internal/models"

	"github.com/gin-gonic/gin"
)

// 无会话的购物车转发接口，请求与响应沿用前端的 camelCase 字段，响应不套统一信封。

// ProxyCartCreateRequest 创建购物车
type ProxyCartCreateRequest struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// ProxyCartGetRequest 读取购物车
type ProxyCartGetRequest struct {
	CartID string `json:"cartId"`
}

// ProxyCartLineAddRequest 追加行
type ProxyCartLineAddRequest struct {
	CartID    string `json:"cartId"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// ProxyCartLineUpdateRequest 修改行
type ProxyCartLineUpdateRequest struct {
	CartID   string `json:"cartId"`
	LineID   string `json:"lineId"`
	Quantity int    `json:"quantity"`
}

// ProxyCartLineRemoveRequest 删除行
type ProxyCartLineRemoveRequest struct {
	CartID string `json:"cartId"`
	LineID string `json:"lineId"`
}

// ProxyCreateCart POST /api/cart/create
func (h *Handler) ProxyCreateCart(c *gin.Context) {
	var req ProxyCartCreateRequest
	if !bindProxyRequest(c, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	cart, err := h.CartProxyService.Create(c.Request.Context(), req.VariantID, req.Quantity)
	respondProxyCart(c, cart, err)
}

// ProxyGetCart POST /api/cart/get
func (h *Handler) ProxyGetCart(c *gin.Context) {
	var req ProxyCartGetRequest
	if !bindProxyRequest(c, &req) {
		return
	}
	cart, err := h.CartProxyService.Get(c.Request.Context(), req.CartID)
	respondProxyCart(c, cart, err)
}

// ProxyAddCartLine POST /api/cart/lines/add
func (h *Handler) ProxyAddCartLine(c *gin.Context) {
	var req ProxyCartLineAddRequest
	if !bindProxyRequest(c, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	cart, err := h.CartProxyService.AddLine(c.Request.Context(), req.CartID, req.VariantID, req.Quantity)
	respondProxyCart(c, cart, err)
}

// ProxyUpdateCartLine POST /api/cart/lines/update
func (h *Handler) ProxyUpdateCartLine(c *gin.Context) {
	var req ProxyCartLineUpdateRequest
	if !bindProxyRequest(c, &req) {
		return
	}
	cart, err := h.CartProxyService.UpdateLine(c.Request.Context(), req.CartID, req.LineID, req.Quantity)
	respondProxyCart(c, cart, err)
}

// ProxyRemoveCartLine POST /api/cart/lines/remove
func (h *Handler) ProxyRemoveCartLine(c *gin.Context) {
	var req ProxyCartLineRemoveRequest
	if !bindProxyRequest(c, &req) {
		return
	}
	cart, err := h.CartProxyService.RemoveLine(c.Request.Context(), req.CartID, req.LineID)
	respondProxyCart(c, cart, err)
}

func bindProxyRequest(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondProxyError(c, response.CodeBadRequest, "error.bad_request")
		return false
	}
	return true
}

func respondProxyCart(c *gin.Context, cart *models.Cart, err error) {
	if err != nil {
		code, key, logErr := resolveMappedError(err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
		if logErr {
			requestLog(c).Errorw("cart_proxy_failed", "path", c.FullPath(), "code", code, "error", err)
		}
		respondProxyError(c, code, key)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// respondProxyError 业务码与 HTTP 状态码一致
func respondProxyError(c *gin.Context, code int, key string) {
	if http.StatusText(code) == "" {
		code = http.StatusInternalServerError
	}
	c.JSON(code, gin.H{"error": i18n.T(i18n.ResolveLocale(c), key)})
}
