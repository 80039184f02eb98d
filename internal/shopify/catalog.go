package shopify

import (
	"context"
	"strings"
)

// Products 按默认排序列出商品
func (c *Client) Products(ctx context.Context, first int) ([]Product, error) {
	var data productsData
	if err := c.Do(ctx, productsQuery, map[string]interface{}{"first": clampFirst(first)}, &data); err != nil {
		return nil, err
	}
	return data.Products.Nodes(), nil
}

// CollectionProducts 列出集合内商品，集合不存在时返回 nil, nil
func (c *Client) CollectionProducts(ctx context.Context, handle string, first int) (*Collection, error) {
	var data collectionData
	vars := map[string]interface{}{"handle": strings.TrimSpace(handle), "first": clampFirst(first)}
	if err := c.Do(ctx, collectionProductsQuery, vars, &data); err != nil {
		return nil, err
	}
	return data.Collection, nil
}

// ProductByHandle 按 handle 查询商品详情，不存在时返回 nil, nil
func (c *Client) ProductByHandle(ctx context.Context, handle string, images, variants int) (*Product, error) {
	var data productData
	vars := map[string]interface{}{
		"handle":   strings.TrimSpace(handle),
		"images":   clampFirst(images),
		"variants": clampFirst(variants),
	}
	if err := c.Do(ctx, productByHandleQuery, vars, &data); err != nil {
		return nil, err
	}
	return data.Product, nil
}

// clampFirst Storefront API 的 first 取值 1..250
func clampFirst(first int) int {
	if first <= 0 {
		return 1
	}
	if first > 250 {
		return 250
	}
	return first
}
