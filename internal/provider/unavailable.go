package provider

import (
	"context"
	"fmt"

	"github.com/tienda-tcg/internal/shopify"
)

// unavailableAPI 未配置 Storefront 凭证时的占位实现
type unavailableAPI struct{}

var errShopifyNotConfigured = fmt.Errorf("%w: storefront credentials missing", shopify.ErrConfigInvalid)

func (unavailableAPI) CreateCart(context.Context, []shopify.CartLineInput) (*shopify.Cart, error) {
	return nil, errShopifyNotConfigured
}

func (unavailableAPI) GetCart(context.Context, string) (*shopify.Cart, error) {
	return nil, errShopifyNotConfigured
}

func (unavailableAPI) AddCartLines(context.Context, string, []shopify.CartLineInput) (*shopify.Cart, error) {
	return nil, errShopifyNotConfigured
}

func (unavailableAPI) UpdateCartLines(context.Context, string, []shopify.CartLineUpdateInput) (*shopify.Cart, error) {
	return nil, errShopifyNotConfigured
}

func (unavailableAPI) RemoveCartLines(context.Context, string, []string) (*shopify.Cart, error) {
	return nil, errShopifyNotConfigured
}

func (unavailableAPI) Products(context.Context, int) ([]shopify.Product, error) {
	return nil, errShopifyNotConfigured
}

func (unavailableAPI) CollectionProducts(context.Context, string, int) (*shopify.Collection, error) {
	return nil, errShopifyNotConfigured
}

func (unavailableAPI) ProductByHandle(context.Context, string, int, int) (*shopify.Product, error) {
	return nil, errShopifyNotConfigured
}
