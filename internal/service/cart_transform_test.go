package service

import (
	"testing"

	"github.com/tienda-tcg/internal/shopify"
)

func rawCart(lines ...shopify.CartLine) *shopify.Cart {
	cart := &shopify.Cart{ID: "gid://shopify/Cart/1", CheckoutURL: "https://shop/checkout"}
	for _, line := range lines {
		cart.Lines.Edges = append(cart.Lines.Edges, shopify.Edge[shopify.CartLine]{Node: line})
	}
	return cart
}

func TestNormalizeCartLineTitle(t *testing.T) {
	cases := []struct {
		name    string
		product *shopify.VariantProduct
		variant string
		want    string
	}{
		{name: "product title", product: &shopify.VariantProduct{Title: "Booster Box"}, variant: "ES", want: "Booster Box"},
		{name: "default title uses variant", product: &shopify.VariantProduct{Title: "Default Title"}, variant: "Holo", want: "Holo"},
		{name: "missing product uses variant", variant: "Holo", want: "Holo"},
		{name: "fallback", product: &shopify.VariantProduct{}, want: "Producto"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cart := NormalizeCart(rawCart(shopify.CartLine{
				ID:          "l1",
				Quantity:    1,
				Merchandise: shopify.ProductVariant{ID: "v1", Title: tc.variant, Product: tc.product},
			}), CartDefaults{})
			if got := cart.Lines[0].Title; got != tc.want {
				t.Fatalf("title want %q got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeCartDefaults(t *testing.T) {
	cart := NormalizeCart(rawCart(
		shopify.CartLine{
			ID:       "l1",
			Quantity: 2,
			Merchandise: shopify.ProductVariant{
				ID:    "v1",
				Price: &shopify.MoneyV2{Amount: "3.25", CurrencyCode: "USD"},
			},
		},
		shopify.CartLine{ID: "l2", Quantity: 0, Merchandise: shopify.ProductVariant{ID: "v2"}},
		shopify.CartLine{
			ID:       "l3",
			Quantity: 1,
			Merchandise: shopify.ProductVariant{
				ID:                "v3",
				QuantityAvailable: intPtr(4),
				Price:             &shopify.MoneyV2{Amount: "1.50", CurrencyCode: "USD"},
				Image:             &shopify.Image{URL: "https://cdn/v3.png"},
			},
		},
	), CartDefaults{MaxQuantity: 1, Currency: "EUR", PlaceholderImage: "/placeholder.png"})

	if len(cart.Lines) != 2 {
		t.Fatalf("zero quantity line should be dropped, got %d lines", len(cart.Lines))
	}
	first := cart.Lines[0]
	if first.MaxQuantity != 1 || first.AvailableToAdd != 0 {
		t.Fatalf("missing availability should default ceiling to 1, got %+v", first)
	}
	if first.Image != "/placeholder.png" {
		t.Fatalf("expected placeholder image, got %s", first.Image)
	}
	second := cart.Lines[1]
	if second.MaxQuantity != 4 || second.AvailableToAdd != 3 {
		t.Fatalf("unexpected ceiling %+v", second)
	}
	if cart.TotalQuantity != 3 {
		t.Fatalf("total quantity want 3 got %d", cart.TotalQuantity)
	}
	if cart.Cost.Amount.String() != "8.00" || cart.Cost.CurrencyCode != "USD" {
		t.Fatalf("cost fallback want 8.00 USD got %s %s", cart.Cost.Amount.String(), cart.Cost.CurrencyCode)
	}
}

func TestNormalizeCartUsesRemoteCost(t *testing.T) {
	raw := rawCart(shopify.CartLine{ID: "l1", Quantity: 1, Merchandise: shopify.ProductVariant{ID: "v1", Price: &shopify.MoneyV2{Amount: "10.00", CurrencyCode: "EUR"}}})
	raw.Cost = &shopify.CartCost{TotalAmount: &shopify.MoneyV2{Amount: "8.50", CurrencyCode: "EUR"}}
	raw.TotalQuantity = 7

	cart := NormalizeCart(raw, CartDefaults{})
	if cart.Cost.Amount.String() != "8.50" {
		t.Fatalf("expected remote total, got %s", cart.Cost.Amount.String())
	}
	if cart.TotalQuantity != 1 {
		t.Fatalf("total quantity must follow lines, got %d", cart.TotalQuantity)
	}

	empty := NormalizeCart(rawCart(), CartDefaults{})
	if empty.Cost.CurrencyCode != "EUR" || empty.TotalQuantity != 0 || empty.Lines == nil {
		t.Fatalf("unexpected empty cart %+v", empty)
	}
	if NormalizeCart(nil, CartDefaults{}) != nil {
		t.Fatalf("nil raw cart should stay nil")
	}
}
