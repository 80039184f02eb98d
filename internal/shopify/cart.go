package shopify

import (
	"context"
	"fmt"
	"strings"
)

// CreateCart 创建购物车，lines 可为空
func (c *Client) CreateCart(ctx context.Context, lines []CartLineInput) (*Cart, error) {
	if lines == nil {
		lines = []CartLineInput{}
	}
	var data cartCreateData
	if err := c.Do(ctx, cartCreateMutation, map[string]interface{}{"lines": lines}, &data); err != nil {
		return nil, err
	}
	return unwrapCartPayload("cartCreate", data.CartCreate)
}

// GetCart 读取购物车，远端不存在时返回 nil, nil
func (c *Client) GetCart(ctx context.Context, cartID string) (*Cart, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, fmt.Errorf("%w: cart id is required", ErrInvalidInput)
	}
	var data cartQueryData
	if err := c.Do(ctx, cartQuery, map[string]interface{}{"cartId": cartID}, &data); err != nil {
		return nil, err
	}
	if data.Cart == nil {
		return nil, nil
	}
	if strings.TrimSpace(data.Cart.ID) == "" {
		return nil, fmt.Errorf("%w: cart without id", ErrResponseInvalid)
	}
	return data.Cart, nil
}

// AddCartLines 追加行，同一变体由远端合并
func (c *Client) AddCartLines(ctx context.Context, cartID string, lines []CartLineInput) (*Cart, error) {
	var data cartLinesAddData
	vars := map[string]interface{}{"cartId": cartID, "lines": lines}
	if err := c.Do(ctx, cartLinesAddMutation, vars, &data); err != nil {
		return nil, err
	}
	return unwrapCartPayload("cartLinesAdd", data.CartLinesAdd)
}

// UpdateCartLines 设置行数量
func (c *Client) UpdateCartLines(ctx context.Context, cartID string, lines []CartLineUpdateInput) (*Cart, error) {
	var data cartLinesUpdateData
	vars := map[string]interface{}{"cartId": cartID, "lines": lines}
	if err := c.Do(ctx, cartLinesUpdateMutation, vars, &data); err != nil {
		return nil, err
	}
	return unwrapCartPayload("cartLinesUpdate", data.CartLinesUpdate)
}

// RemoveCartLines 删除行
func (c *Client) RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*Cart, error) {
	var data cartLinesRemoveData
	vars := map[string]interface{}{"cartId": cartID, "lineIds": lineIDs}
	if err := c.Do(ctx, cartLinesRemoveMutation, vars, &data); err != nil {
		return nil, err
	}
	return unwrapCartPayload("cartLinesRemove", data.CartLinesRemove)
}

func unwrapCartPayload(field string, payload *cartPayload) (*Cart, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: missing %s payload", ErrResponseInvalid, field)
	}
	if len(payload.UserErrors) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrUserErrors, payload.UserErrors)
	}
	if payload.Cart == nil || strings.TrimSpace(payload.Cart.ID) == "" {
		return nil, fmt.Errorf("%w: %s returned no cart", ErrResponseInvalid, field)
	}
	return payload.Cart, nil
}
