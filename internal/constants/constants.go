package constants

// 队列常量
const (
	QueueDefault     = "default"
	TaskCatalogWarm  = "catalog:warm"
	CatalogWarmRetry = 2
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "tcg"
)

// 币种常量
const (
	CurrencyDefault = "EUR"
)

// 购物车会话常量
const (
	CartSessionCookieDefault = "cart_session"
	CartSessionContextKey    = "cart_session_key"
)

// 限流 key 前缀
const (
	RateLimitPrefixCartMutation = "cart_mutation"
)
