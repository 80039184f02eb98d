package service

import (
	"context"
	"strings"
	"time"

	"github.com/tienda-tcg/internal/cache"
	"github.com/tienda-tcg/internal/logger"
	"github.com/tienda-tcg/internal/models"
	"github.com/tienda-tcg/internal/shopify"

	"go.uber.org/zap"
)

// CatalogAPI 远端商品查询
type CatalogAPI interface {
	Products(ctx context.Context, first int) ([]shopify.Product, error)
	CollectionProducts(ctx context.Context, handle string, first int) (*shopify.Collection, error)
	ProductByHandle(ctx context.Context, handle string, images, variants int) (*shopify.Product, error)
}

// CatalogOptions 商品读取参数
type CatalogOptions struct {
	CollectionPageSize int
	ProductListSize    int
	ProductImageLimit  int
	VariantLimit       int
	PlaceholderImage   string
	CacheTTL           time.Duration
}

// CatalogService 商品与集合读取
type CatalogService struct {
	api  CatalogAPI
	opts CatalogOptions
	log  *zap.SugaredLogger
}

// NewCatalogService 创建商品读取服务
func NewCatalogService(api CatalogAPI, opts CatalogOptions) *CatalogService {
	if opts.CollectionPageSize <= 0 {
		opts.CollectionPageSize = 50
	}
	if opts.ProductListSize <= 0 {
		opts.ProductListSize = 20
	}
	if opts.ProductImageLimit <= 0 {
		opts.ProductImageLimit = 5
	}
	if opts.VariantLimit <= 0 {
		opts.VariantLimit = 50
	}
	if strings.TrimSpace(opts.PlaceholderImage) == "" {
		opts.PlaceholderImage = defaultPlaceholder
	}
	return &CatalogService{api: api, opts: opts, log: logger.Named("catalog")}
}

// CollectionProducts 集合商品，tag 非空时按标签精确过滤
// 空 handle 或未知集合返回空列表
func (s *CatalogService) CollectionProducts(ctx context.Context, handle, tag string) ([]models.ProductCard, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return []models.ProductCard{}, nil
	}
	page, err := s.loadCollection(ctx, handle, true)
	if err != nil {
		return nil, err
	}
	return filterByTag(page.Products, strings.TrimSpace(tag)), nil
}

// WarmCollection 强制刷新集合缓存，返回商品数
func (s *CatalogService) WarmCollection(ctx context.Context, handle string) (int, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return 0, ErrInvalidInput
	}
	page, err := s.loadCollection(ctx, handle, false)
	if err != nil {
		return 0, err
	}
	return len(page.Products), nil
}

// ListProducts 默认排序的商品列表
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.ProductCard, error) {
	products, err := s.api.Products(ctx, s.opts.ProductListSize)
	if err != nil {
		return nil, err
	}
	return s.toCards(products), nil
}

// ProductByHandle 商品详情
func (s *CatalogService) ProductByHandle(ctx context.Context, handle string) (*models.Product, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, ErrProductNotFound
	}
	raw, err := s.api.ProductByHandle(ctx, handle, s.opts.ProductImageLimit, s.opts.VariantLimit)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrProductNotFound
	}
	return s.toProduct(raw), nil
}

func (s *CatalogService) loadCollection(ctx context.Context, handle string, useCache bool) (*cache.CollectionPage, error) {
	if useCache && s.opts.CacheTTL > 0 {
		page, hit, err := cache.GetCollectionPage(ctx, handle)
		if err != nil {
			s.log.Warnw("catalog_cache_get_failed", "handle", handle, "error", err)
		} else if hit {
			return page, nil
		}
	}

	collection, err := s.api.CollectionProducts(ctx, handle, s.opts.CollectionPageSize)
	if err != nil {
		return nil, err
	}
	page := &cache.CollectionPage{Handle: handle, Products: []models.ProductCard{}}
	if collection != nil {
		page.Found = true
		page.Title = collection.Title
		page.Products = s.toCards(collection.Products.Nodes())
	}
	if s.opts.CacheTTL > 0 {
		if err := cache.SetCollectionPage(ctx, page, s.opts.CacheTTL); err != nil {
			s.log.Warnw("catalog_cache_set_failed", "handle", handle, "error", err)
		}
	}
	return page, nil
}

func filterByTag(cards []models.ProductCard, tag string) []models.ProductCard {
	if tag == "" {
		return cards
	}
	filtered := make([]models.ProductCard, 0, len(cards))
	for _, card := range cards {
		if card.HasTag(tag) {
			filtered = append(filtered, card)
		}
	}
	return filtered
}

func (s *CatalogService) toCards(products []shopify.Product) []models.ProductCard {
	cards := make([]models.ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, s.toCard(p))
	}
	return cards
}

func (s *CatalogService) toCard(p shopify.Product) models.ProductCard {
	card := models.ProductCard{
		ID:     p.ID,
		Title:  p.Title,
		Handle: p.Handle,
		Image:  s.opts.PlaceholderImage,
		Tags:   append([]string{}, p.Tags...),
	}
	images := p.Images.Nodes()
	if len(images) > 0 && strings.TrimSpace(images[0].URL) != "" {
		card.Image = images[0].URL
	}
	card.Price, card.Currency = s.money(p.PriceRange.MinVariantPrice)
	return card
}

func (s *CatalogService) toProduct(p *shopify.Product) *models.Product {
	product := &models.Product{
		ID:          p.ID,
		Title:       p.Title,
		Handle:      p.Handle,
		Description: p.Description,
		Tags:        append([]string{}, p.Tags...),
		Images:      make([]string, 0, len(p.Images.Edges)),
		Variants:    make([]models.Variant, 0, len(p.Variants.Edges)),
	}
	for _, img := range p.Images.Nodes() {
		if url := strings.TrimSpace(img.URL); url != "" {
			product.Images = append(product.Images, url)
		}
	}
	if len(product.Images) == 0 {
		product.Images = append(product.Images, s.opts.PlaceholderImage)
	}

	product.PriceRange.MinAmount, product.PriceRange.Currency = s.money(p.PriceRange.MinVariantPrice)
	product.PriceRange.MaxAmount, _ = s.money(p.PriceRange.MaxVariantPrice)

	for _, v := range p.Variants.Nodes() {
		variant := models.Variant{
			ID:                v.ID,
			Title:             v.Title,
			AvailableForSale:  v.AvailableForSale,
			QuantityAvailable: v.QuantityAvailable,
			Image:             product.Images[0],
			Currency:          product.PriceRange.Currency,
		}
		if v.Price != nil {
			variant.Price, variant.Currency = s.money(*v.Price)
		}
		if v.Image != nil && strings.TrimSpace(v.Image.URL) != "" {
			variant.Image = v.Image.URL
		}
		product.Variants = append(product.Variants, variant)
	}
	return product
}

func (s *CatalogService) money(m shopify.MoneyV2) (models.Money, string) {
	amount, err := models.ParseMoney(m.Amount)
	if err != nil {
		s.log.Warnw("catalog_price_invalid", "amount", m.Amount, "error", err)
	}
	currency := strings.TrimSpace(m.CurrencyCode)
	if currency == "" {
		currency = defaultCurrency
	}
	return amount, currency
}
