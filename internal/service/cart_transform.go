package service

import (
	"strings"

	"github.com/tienda-tcg/internal/models"
	"github.com/tienda-tcg/internal/shopify"
)

const (
	defaultVariantTitle = "Default Title"
	fallbackLineTitle   = "Producto"
	defaultPlaceholder  = "/placeholder.png"
	defaultCurrency     = "EUR"
)

// CartDefaults 平台未返回字段时的兜底值
type CartDefaults struct {
	MaxQuantity      int
	Currency         string
	PlaceholderImage string
}

func (d CartDefaults) normalized() CartDefaults {
	if d.MaxQuantity <= 0 {
		d.MaxQuantity = 1
	}
	if strings.TrimSpace(d.Currency) == "" {
		d.Currency = defaultCurrency
	}
	if strings.TrimSpace(d.PlaceholderImage) == "" {
		d.PlaceholderImage = defaultPlaceholder
	}
	return d
}

// NormalizeCart 将远端购物车转换为本地视图
// 数量为 0 的行被丢弃，TotalQuantity 始终等于行数量之和
func NormalizeCart(raw *shopify.Cart, defaults CartDefaults) *models.Cart {
	if raw == nil {
		return nil
	}
	defaults = defaults.normalized()

	edges := raw.Lines.Nodes()
	lines := make([]models.CartLine, 0, len(edges))
	for _, node := range edges {
		if node.Quantity <= 0 {
			continue
		}
		lines = append(lines, normalizeCartLine(node, defaults))
	}

	cart := &models.Cart{
		ID:          raw.ID,
		CheckoutURL: strings.TrimSpace(raw.CheckoutURL),
		Lines:       lines,
	}
	cart.TotalQuantity = cart.SumQuantity()
	cart.Cost = normalizeCartCost(raw.Cost, lines, defaults)
	return cart
}

func normalizeCartLine(node shopify.CartLine, defaults CartDefaults) models.CartLine {
	merch := node.Merchandise
	line := models.CartLine{
		ID:        node.ID,
		VariantID: merch.ID,
		Title:     lineTitle(merch),
		Currency:  defaults.Currency,
		Image:     defaults.PlaceholderImage,
		Quantity:  node.Quantity,
	}
	if merch.Price != nil {
		if price, err := models.ParseMoney(merch.Price.Amount); err == nil {
			line.Price = price
		}
		if code := strings.TrimSpace(merch.Price.CurrencyCode); code != "" {
			line.Currency = code
		}
	}
	if merch.Image != nil && strings.TrimSpace(merch.Image.URL) != "" {
		line.Image = merch.Image.URL
	}

	line.MaxQuantity = defaults.MaxQuantity
	if merch.QuantityAvailable != nil {
		line.MaxQuantity = *merch.QuantityAvailable
		if line.MaxQuantity < 0 {
			line.MaxQuantity = 0
		}
	}
	if available := line.MaxQuantity - line.Quantity; available > 0 {
		line.AvailableToAdd = available
	}
	return line
}

// lineTitle 优先商品标题，其次规格标题
func lineTitle(merch shopify.ProductVariant) string {
	if merch.Product != nil {
		title := strings.TrimSpace(merch.Product.Title)
		if title != "" && title != defaultVariantTitle {
			return title
		}
	}
	if title := strings.TrimSpace(merch.Title); title != "" {
		return title
	}
	return fallbackLineTitle
}

func normalizeCartCost(cost *shopify.CartCost, lines []models.CartLine, defaults CartDefaults) models.CartCost {
	result := models.CartCost{CurrencyCode: defaults.Currency}
	if len(lines) > 0 {
		result.CurrencyCode = lines[0].Currency
	}
	if cost != nil && cost.TotalAmount != nil {
		if amount, err := models.ParseMoney(cost.TotalAmount.Amount); err == nil && strings.TrimSpace(cost.TotalAmount.Amount) != "" {
			result.Amount = amount
			if code := strings.TrimSpace(cost.TotalAmount.CurrencyCode); code != "" {
				result.CurrencyCode = code
			}
			return result
		}
	}
	for _, line := range lines {
		result.Amount = result.Amount.Plus(line.Price.Times(line.Quantity))
	}
	return result
}
