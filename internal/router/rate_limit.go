package router

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tienda-tcg/internal/constants"
	"github.com/tienda-tcg/internal/http/response"
	"github.com/tienda-tcg/internal/i18n"
	"github.com/tienda-tcg/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const retryAfterHeader = "Retry-After"

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) key(raw string) string {
	if r.Prefix == "" {
		return raw
	}
	return fmt.Sprintf("%s:%s", r.Prefix, raw)
}

// waitSeconds 计算被限流后的等待秒数，至少 1 秒
func (r RateLimitRule) waitSeconds(ttl int64) int {
	wait := int(ttl)
	if wait < 1 {
		wait = r.WindowSeconds
	}
	if wait < 1 {
		wait = 1
	}
	return wait
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware Redis 频率限制中间件，未启用 Redis 时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	msgKey := strings.TrimSpace(rule.MessageKey)
	if msgKey == "" {
		msgKey = "error.rate_limited"
	}
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}

		count, ttl, err := incrementWindow(c.Request.Context(), client, rule.key(key), rule.WindowSeconds)
		if err != nil {
			logger.Warnw("rate_limit_script_failed", "prefix", rule.Prefix, "error", err)
			msg := i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable")
			response.Error(c, response.CodeServiceUnavailable, msg)
			c.Abort()
			return
		}
		if count > int64(rule.MaxRequests) {
			wait := rule.waitSeconds(ttl)
			c.Header(retryAfterHeader, strconv.Itoa(wait))
			msg := i18n.Sprintf(i18n.ResolveLocale(c), msgKey, wait)
			response.Error(c, response.CodeTooManyRequests, msg)
			c.Abort()
			return
		}

		c.Next()
	}
}

// incrementWindow 计数并返回当前窗口的请求数与剩余秒数
func incrementWindow(ctx context.Context, client *redis.Client, key string, windowSeconds int) (int64, int64, error) {
	result, err := rateLimitScript.Run(ctx, client, []string{key}, windowSeconds).Result()
	if err != nil {
		return 0, 0, err
	}
	values, ok := result.([]interface{})
	if !ok || len(values) < 2 {
		return 0, 0, fmt.Errorf("unexpected rate limit result %T", result)
	}
	count, ok := toInt64(values[0])
	if !ok {
		return 0, 0, fmt.Errorf("unexpected rate limit counter %T", values[0])
	}
	ttl, _ := toInt64(values[1])
	return count, ttl, nil
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByCartSession 使用购物车会话 key + IP 作为限流 key，无会话时退回 IP
func KeyByCartSession(c *gin.Context) string {
	value, ok := c.Get(constants.CartSessionContextKey)
	if !ok {
		return c.ClientIP()
	}
	session, _ := value.(string)
	session = strings.TrimSpace(session)
	if session == "" {
		return c.ClientIP()
	}
	return fmt.Sprintf("%s|%s", session, c.ClientIP())
}

// Lua 返回整数，go-redis 解码为 int64
func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
