package provider

import (
	"time"

	"github.com/tienda-tcg/internal/cache"
	"github.com/tienda-tcg/internal/config"
	"github.com/tienda-tcg/internal/logger"
	"github.com/tienda-tcg/internal/models"
	"github.com/tienda-tcg/internal/queue"
	"github.com/tienda-tcg/internal/repository"
	"github.com/tienda-tcg/internal/service"
	"github.com/tienda-tcg/internal/shopify"
)

// Container 依赖注入容器
type Container struct {
	Config        *config.Config
	QueueClient   *queue.Client
	ShopifyClient *shopify.Client

	// Repositories
	CartSessionRepo repository.CartSessionRepository

	// Services
	CatalogService   *service.CatalogService
	CartProxyService *service.CartProxyService
	CartSessions     *service.CartSessions
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化远端客户端
	c.initShopify()

	// 2. 初始化 Repositories
	c.initRepositories()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initShopify() {
	sc := c.Config.Shopify
	client, err := shopify.New(shopify.Config{
		Endpoint: sc.GraphQLEndpoint(),
		Token:    sc.StorefrontToken,
		Timeout:  sc.Timeout(),
		Retry: shopify.RetryPolicy{
			MaxRetries: sc.Retries,
			Delay:      sc.RetryDelay(),
		},
	})
	if err != nil {
		logger.Warnw("provider_init_shopify_failed", "error", err)
		return
	}
	c.ShopifyClient = client
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CartSessionRepo = repository.NewCartSessionRepository(db)
}

func (c *Container) initServices() {
	var cartAPI service.CartAPI = unavailableAPI{}
	var catalogAPI service.CatalogAPI = unavailableAPI{}
	if c.ShopifyClient != nil {
		cartAPI = c.ShopifyClient
		catalogAPI = c.ShopifyClient
	}

	catalogCfg := c.Config.Catalog
	c.CatalogService = service.NewCatalogService(catalogAPI, service.CatalogOptions{
		CollectionPageSize: catalogCfg.CollectionPageSize,
		ProductListSize:    catalogCfg.ProductListSize,
		ProductImageLimit:  catalogCfg.ProductImageLimit,
		PlaceholderImage:   catalogCfg.PlaceholderImage,
		CacheTTL:           time.Duration(catalogCfg.CacheTTLSeconds) * time.Second,
	})

	cartCfg := c.Config.Cart
	defaults := service.CartDefaults{
		MaxQuantity:      cartCfg.DefaultMaxQuantity,
		Currency:         cartCfg.DefaultCurrency,
		PlaceholderImage: catalogCfg.PlaceholderImage,
	}
	c.CartProxyService = service.NewCartProxyService(cartAPI, defaults)
	c.CartSessions = service.NewCartSessions(
		cartAPI,
		service.SessionCartIDStoreFactory(c.CartSessionRepo),
		defaults,
		time.Duration(cartCfg.SessionIdleMinutes)*time.Minute,
	)
}
