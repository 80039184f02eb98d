package shopify

import (
	"errors"
	"strings"
)

var (
	ErrConfigInvalid   = errors.New("shopify config invalid")
	ErrRequestFailed   = errors.New("shopify request failed")
	ErrGraphQL         = errors.New("shopify graphql error")
	ErrUserErrors      = errors.New("shopify rejected mutation")
	ErrResponseInvalid = errors.New("shopify response invalid")
	ErrInvalidInput    = errors.New("shopify invalid input")
)

// GraphQLError GraphQL 响应中的单条错误
type GraphQLError struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// GraphQLErrors 响应级错误列表
type GraphQLErrors []GraphQLError

func (e GraphQLErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, item := range e {
		if msg := strings.TrimSpace(item.Message); msg != "" {
			parts = append(parts, msg)
		}
	}
	if len(parts) == 0 {
		return "unknown graphql error"
	}
	return strings.Join(parts, "; ")
}

// UserError 购物车 mutation 的业务错误
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
	Code    string   `json:"code"`
}

// UserErrors mutation 业务错误列表
type UserErrors []UserError

func (e UserErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, item := range e {
		msg := strings.TrimSpace(item.Message)
		if msg == "" {
			msg = item.Code
		}
		if len(item.Field) > 0 {
			msg = strings.Join(item.Field, ".") + ": " + msg
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

// IsRetryable 仅传输层失败（超时、网络、非 2xx）允许重试
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}
