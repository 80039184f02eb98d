package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tienda-tcg/internal/cache"
	"github.com/tienda-tcg/internal/config"
	"github.com/tienda-tcg/internal/constants"
	publichandlers "github.com/tienda-tcg/internal/http/handlers/public"
	"github.com/tienda-tcg/internal/logger"
	"github.com/tienda-tcg/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	cartRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:%s", redisPrefix, constants.RateLimitPrefixCartMutation),
		WindowSeconds: cfg.Security.CartRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CartRateLimit.MaxRequests,
		MessageKey:    "error.rate_limited",
	}
	cartLimiter := RateLimitMiddleware(redisClient, cartRule, KeyByCartSession)
	proxyLimiter := RateLimitMiddleware(redisClient, cartRule, KeyByIP)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 无会话购物车转发接口
	cartProxy := r.Group("/api/cart", proxyLimiter)
	{
		cartProxy.POST("/create", publicHandler.ProxyCreateCart)
		cartProxy.POST("/get", publicHandler.ProxyGetCart)
		cartProxy.POST("/lines/add", publicHandler.ProxyAddCartLine)
		cartProxy.POST("/lines/update", publicHandler.ProxyUpdateCartLine)
		cartProxy.POST("/lines/remove", publicHandler.ProxyRemoveCartLine)
	}

	apiV1 := r.Group("/api/v1")
	{
		// 商品目录
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:handle", publicHandler.GetProduct)
		apiV1.GET("/collections/:handle", publicHandler.GetCollection)
		apiV1.GET("/collections/:handle/:tag", publicHandler.GetCollection)

		// 会话购物车
		cart := apiV1.Group("/cart", CartSessionMiddleware(cfg.Cart))
		{
			cart.GET("", publicHandler.GetCart)
			cart.GET("/checkout", publicHandler.Checkout)
			cart.POST("/lines", cartLimiter, publicHandler.AddCartLine)
			cart.PATCH("/lines/:line_id", cartLimiter, publicHandler.UpdateCartLine)
			cart.DELETE("/lines/:line_id", cartLimiter, publicHandler.RemoveCartLine)
		}
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"shopify": c != nil && c.ShopifyClient != nil,
			"redis":   cache.Enabled(),
		})
	})

	return r
}
