package shared

import (
	"strings"

	"github.com/tienda-tcg/internal/constants"
	"github.com/tienda-tcg/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetSessionKey 读取中间件写入的购物车会话 key。
func GetSessionKey(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.CartSessionContextKey)
	if !exists {
		RespondError(c, response.CodeInternal, "error.internal", nil)
		return "", false
	}
	key, ok := value.(string)
	if !ok || strings.TrimSpace(key) == "" {
		RespondError(c, response.CodeInternal, "error.internal", nil)
		return "", false
	}
	return key, true
}
