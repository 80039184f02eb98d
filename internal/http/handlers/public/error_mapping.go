package public

import (
	"errors"

	"github.com/tienda-tcg/internal/http/response"
	"github.com/tienda-tcg/internal/service"
	"github.com/tienda-tcg/internal/shopify"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
	// logErr 为 true 时记录原始错误
	logErr bool
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	code, key, logErr := resolveMappedError(err, rules, fallbackCode, fallbackKey)
	if logErr {
		respondError(c, code, key, err)
		return
	}
	respondError(c, code, key, nil)
}

func resolveMappedError(err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) (int, string, bool) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			return rule.code, rule.key, rule.logErr
		}
	}
	return fallbackCode, fallbackKey, true
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var upstreamErrorRules = []mappedHandlerError{
	{target: shopify.ErrUserErrors, code: response.CodeUnprocessable, key: "error.cart_rejected", logErr: true},
	{target: shopify.ErrConfigInvalid, code: response.CodeServiceUnavailable, key: "error.upstream_unavailable", logErr: true},
	{target: shopify.ErrRequestFailed, code: response.CodeBadGateway, key: "error.upstream_unavailable", logErr: true},
	{target: shopify.ErrGraphQL, code: response.CodeBadGateway, key: "error.upstream_unavailable", logErr: true},
	{target: shopify.ErrResponseInvalid, code: response.CodeBadGateway, key: "error.upstream_unavailable", logErr: true},
	{target: shopify.ErrInvalidInput, code: response.CodeBadRequest, key: "error.cart_input_invalid"},
}

var cartErrorRules = concatMappedHandlerErrors([]mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.cart_input_invalid"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.cart_quantity_invalid"},
	{target: service.ErrCartNotFound, code: response.CodeNotFound, key: "error.cart_not_found"},
	{target: service.ErrCartIDLoadFailed, code: response.CodeInternal, key: "error.cart_fetch_failed", logErr: true},
}, upstreamErrorRules)

var catalogErrorRules = concatMappedHandlerErrors([]mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
}, upstreamErrorRules)
