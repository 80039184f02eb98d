package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tienda-tcg/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Shopify  ShopifyConfig  `mapstructure:"shopify"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Cart     CartConfig     `mapstructure:"cart"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.Level,
		Console:    c.Console,
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置（仅保存会话与购物车 ID 的映射）
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // sqlite / postgres
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// ShopifyConfig Storefront API 配置
type ShopifyConfig struct {
	StoreDomain     string `mapstructure:"store_domain"`
	StorefrontToken string `mapstructure:"storefront_token"`
	APIVersion      string `mapstructure:"api_version"`
	Endpoint        string `mapstructure:"endpoint"` // 非空时覆盖 store_domain 推导出的地址
	TimeoutMS       int    `mapstructure:"timeout_ms"`
	Retries         int    `mapstructure:"retries"`
	RetryDelayMS    int    `mapstructure:"retry_delay_ms"`
}

// GraphQLEndpoint 返回 GraphQL 请求地址
func (c ShopifyConfig) GraphQLEndpoint() string {
	if endpoint := strings.TrimSpace(c.Endpoint); endpoint != "" {
		return endpoint
	}
	domain := strings.TrimSpace(c.StoreDomain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimSuffix(domain, "/")
	version := strings.TrimSpace(c.APIVersion)
	if version == "" {
		version = "2024-07"
	}
	return fmt.Sprintf("https://%s/api/%s/graphql.json", domain, version)
}

// Timeout 单次请求超时
func (c ShopifyConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// RetryDelay 重试间隔
func (c ShopifyConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

// Configured 是否已配置店铺与令牌
func (c ShopifyConfig) Configured() bool {
	if strings.TrimSpace(c.Endpoint) != "" {
		return strings.TrimSpace(c.StorefrontToken) != ""
	}
	return strings.TrimSpace(c.StoreDomain) != "" && strings.TrimSpace(c.StorefrontToken) != ""
}

// CatalogConfig 商品目录配置
type CatalogConfig struct {
	CollectionPageSize  int      `mapstructure:"collection_page_size"`
	ProductListSize     int      `mapstructure:"product_list_size"`
	ProductImageLimit   int      `mapstructure:"product_image_limit"`
	PlaceholderImage    string   `mapstructure:"placeholder_image"`
	CacheTTLSeconds     int      `mapstructure:"cache_ttl_seconds"`
	WarmCollections     []string `mapstructure:"warm_collections"`
	WarmIntervalSeconds int      `mapstructure:"warm_interval_seconds"`
}

// CartConfig 购物车配置
type CartConfig struct {
	SessionCookie      string `mapstructure:"session_cookie"`
	CookieMaxAgeDays   int    `mapstructure:"cookie_max_age_days"`
	CookieSecure       bool   `mapstructure:"cookie_secure"`
	DefaultMaxQuantity int    `mapstructure:"default_max_quantity"`
	DefaultCurrency    string `mapstructure:"default_currency"`
	SessionIdleMinutes int    `mapstructure:"session_idle_minutes"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	CartRateLimit RateLimitConfig `mapstructure:"cart_rate_limit"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	loadDotEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./")
	viper.AddConfigPath("../")   // 如果从 cmd/server 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	setDefaults(viper.GetViper())

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // shopify.storefront_token -> SHOPIFY_STOREFRONT_TOKEN

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("config unmarshal failed: %w", err))
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "")
	v.SetDefault("log.console", false)
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "storefront.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/storefront.db")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "tcg")
	v.SetDefault("queue.enabled", true)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 4)
	v.SetDefault("queue.queues", map[string]int{
		"default": 1,
	})
	v.SetDefault("shopify.store_domain", "")
	v.SetDefault("shopify.storefront_token", "")
	v.SetDefault("shopify.api_version", "2024-07")
	v.SetDefault("shopify.endpoint", "")
	v.SetDefault("shopify.timeout_ms", 8000)
	v.SetDefault("shopify.retries", 2)
	v.SetDefault("shopify.retry_delay_ms", 500)
	v.SetDefault("catalog.collection_page_size", 50)
	v.SetDefault("catalog.product_list_size", 20)
	v.SetDefault("catalog.product_image_limit", 5)
	v.SetDefault("catalog.placeholder_image", "/placeholder.png")
	v.SetDefault("catalog.cache_ttl_seconds", 60)
	v.SetDefault("catalog.warm_collections", []string{})
	v.SetDefault("catalog.warm_interval_seconds", 300)
	v.SetDefault("cart.session_cookie", "cart_session")
	v.SetDefault("cart.cookie_max_age_days", 30)
	v.SetDefault("cart.cookie_secure", false)
	v.SetDefault("cart.default_max_quantity", 1)
	v.SetDefault("cart.default_currency", "EUR")
	v.SetDefault("cart.session_idle_minutes", 60)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Accept-Language",
		"Cache-Control",
		"X-Requested-With",
		"X-Request-ID",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.cart_rate_limit.window_seconds", 60)
	v.SetDefault("security.cart_rate_limit.max_requests", 60)
}

// loadDotEnv 非 release 模式下优先读取 .env
func loadDotEnv() {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("SERVER_MODE")), "release") {
		return
	}
	if err := godotenv.Overload(".env"); err != nil {
		logger.Debugw("config_dotenv_skipped", "error", err)
		return
	}
	logger.Infow("config_dotenv_loaded", "file", ".env")
}
