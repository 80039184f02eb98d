package public

import (
	handlershared "github.com/tienda-tcg/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithData(c *gin.Context, code int, key string, data interface{}, args ...interface{}) {
	handlershared.RespondErrorWithData(c, code, key, data, args...)
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func getSessionKey(c *gin.Context) (string, bool) {
	return handlershared.GetSessionKey(c)
}
