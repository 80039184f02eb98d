package service

import (
	"context"
	"strings"

	"github.com/tienda-tcg/internal/models"
	"github.com/tienda-tcg/internal/shopify"
)

// CartProxyService 无会话的购物车转发，调用方自行持有 cartId
type CartProxyService struct {
	api      CartAPI
	defaults CartDefaults
}

// NewCartProxyService 创建购物车转发服务
func NewCartProxyService(api CartAPI, defaults CartDefaults) *CartProxyService {
	return &CartProxyService{api: api, defaults: defaults.normalized()}
}

// Create 以一行创建购物车
func (s *CartProxyService) Create(ctx context.Context, variantID string, quantity int) (*models.Cart, error) {
	variantID = strings.TrimSpace(variantID)
	if variantID == "" {
		return nil, ErrInvalidInput
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	raw, err := s.api.CreateCart(ctx, []shopify.CartLineInput{{MerchandiseID: variantID, Quantity: quantity}})
	if err != nil {
		return nil, err
	}
	return NormalizeCart(raw, s.defaults), nil
}

// Get 读取购物车，不存在返回 nil
func (s *CartProxyService) Get(ctx context.Context, cartID string) (*models.Cart, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, ErrInvalidInput
	}
	raw, err := s.api.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return NormalizeCart(raw, s.defaults), nil
}

// AddLine 追加一行
func (s *CartProxyService) AddLine(ctx context.Context, cartID, variantID string, quantity int) (*models.Cart, error) {
	cartID = strings.TrimSpace(cartID)
	variantID = strings.TrimSpace(variantID)
	if cartID == "" || variantID == "" {
		return nil, ErrInvalidInput
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	raw, err := s.api.AddCartLines(ctx, cartID, []shopify.CartLineInput{{MerchandiseID: variantID, Quantity: quantity}})
	if err != nil {
		return nil, err
	}
	return NormalizeCart(raw, s.defaults), nil
}

// UpdateLine 设置行数量
func (s *CartProxyService) UpdateLine(ctx context.Context, cartID, lineID string, quantity int) (*models.Cart, error) {
	cartID = strings.TrimSpace(cartID)
	lineID = strings.TrimSpace(lineID)
	if cartID == "" || lineID == "" {
		return nil, ErrInvalidInput
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	raw, err := s.api.UpdateCartLines(ctx, cartID, []shopify.CartLineUpdateInput{{ID: lineID, Quantity: quantity}})
	if err != nil {
		return nil, err
	}
	return NormalizeCart(raw, s.defaults), nil
}

// RemoveLine 删除一行
func (s *CartProxyService) RemoveLine(ctx context.Context, cartID, lineID string) (*models.Cart, error) {
	cartID = strings.TrimSpace(cartID)
	lineID = strings.TrimSpace(lineID)
	if cartID == "" || lineID == "" {
		return nil, ErrInvalidInput
	}
	raw, err := s.api.RemoveCartLines(ctx, cartID, []string{lineID})
	if err != nil {
		return nil, err
	}
	return NormalizeCart(raw, s.defaults), nil
}
