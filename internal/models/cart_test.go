package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartLookupsAndSum(t *testing.T) {
	cart := &Cart{
		ID: "gid://shopify/Cart/1",
		Lines: []CartLine{
			{ID: "L1", VariantID: "variant-A", Quantity: 2},
			{ID: "L2", VariantID: "variant-B", Quantity: 3},
		},
	}
	if line := cart.FindLine("L2"); line == nil || line.VariantID != "variant-B" {
		t.Fatalf("find line L2 failed: %+v", line)
	}
	if line := cart.FindLineByVariant("variant-A"); line == nil || line.ID != "L1" {
		t.Fatalf("find by variant failed: %+v", line)
	}
	if cart.FindLine("missing") != nil {
		t.Fatalf("missing line should be nil")
	}
	if got := cart.SumQuantity(); got != 5 {
		t.Fatalf("sum quantity want 5 got %d", got)
	}

	var nilCart *Cart
	if nilCart.FindLine("L1") != nil || nilCart.SumQuantity() != 0 || nilCart.Clone() != nil {
		t.Fatalf("nil cart helpers should be safe")
	}
}

func TestCartCloneIsolatesLines(t *testing.T) {
	cart := &Cart{ID: "c1", Lines: []CartLine{{ID: "L1", Quantity: 1}}}
	cp := cart.Clone()
	cp.Lines[0].Quantity = 9
	if cart.Lines[0].Quantity != 1 {
		t.Fatalf("clone should not share line storage")
	}
}

func TestParseMoneyAndArithmetic(t *testing.T) {
	price, err := ParseMoney("12.5")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	total := price.Times(3).Plus(NewMoneyFromDecimal(decimal.NewFromInt(1)))
	if total.String() != "38.50" {
		t.Fatalf("total want 38.50 got %s", total.String())
	}
	empty, err := ParseMoney("  ")
	if err != nil || !empty.IsZero() {
		t.Fatalf("empty amount should parse to zero, got %s err=%v", empty.String(), err)
	}
	if _, err := ParseMoney("abc"); err == nil {
		t.Fatalf("invalid amount should fail")
	}

	body, err := json.Marshal(struct {
		Price Money `json:"price"`
	}{Price: price})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(body) != `{"price":"12.50"}` {
		t.Fatalf("unexpected json %s", string(body))
	}
}

func TestVariantPurchasable(t *testing.T) {
	zero, two := 0, 2
	if (Variant{AvailableForSale: false}).Purchasable() {
		t.Fatalf("unavailable variant should not be purchasable")
	}
	if (Variant{AvailableForSale: true, QuantityAvailable: &zero}).Purchasable() {
		t.Fatalf("zero stock variant should not be purchasable")
	}
	if !(Variant{AvailableForSale: true, QuantityAvailable: &two}).Purchasable() {
		t.Fatalf("stocked variant should be purchasable")
	}
	if !(Variant{AvailableForSale: true}).Purchasable() {
		t.Fatalf("untracked stock variant should be purchasable")
	}
}
