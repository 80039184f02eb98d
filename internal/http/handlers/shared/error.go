package shared

import (
	"github.com/tienda-tcg/internal/http/response"
	"github.com/tienda-tcg/internal/i18n"
	"github.com/tienda-tcg/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondErrorWithData 返回带数据的国际化错误响应，args 用于格式化消息。
func RespondErrorWithData(c *gin.Context, code int, key string, data interface{}, args ...interface{}) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	if len(args) > 0 {
		msg = i18n.Sprintf(locale, key, args...)
	}
	RequestLog(c).Infow("handler_notice",
		"code", code,
		"key", key,
	)
	response.ErrorWithData(c, code, msg, data)
}
