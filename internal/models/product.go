package models

// ProductCard 列表展示用商品摘要
type ProductCard struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Handle   string   `json:"handle"`
	Image    string   `json:"image"`
	Price    Money    `json:"price"`
	Currency string   `json:"currency"`
	Tags     []string `json:"tags"`
}

// HasTag 精确匹配标签
func (p ProductCard) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// PriceRange 价格区间
type PriceRange struct {
	MinAmount Money  `json:"min_amount"`
	MaxAmount Money  `json:"max_amount"`
	Currency  string `json:"currency"`
}

// Variant 商品规格，归平台所有，只读
type Variant struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Price             Money  `json:"price"`
	Currency          string `json:"currency"`
	Image             string `json:"image"`
	AvailableForSale  bool   `json:"available_for_sale"`
	QuantityAvailable *int   `json:"quantity_available,omitempty"`
}

// Purchasable 规格是否可加入购物车
func (v Variant) Purchasable() bool {
	if !v.AvailableForSale {
		return false
	}
	return v.QuantityAvailable == nil || *v.QuantityAvailable > 0
}

// Product 商品详情
type Product struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Handle      string     `json:"handle"`
	Description string     `json:"description"`
	Images      []string   `json:"images"`
	PriceRange  PriceRange `json:"price_range"`
	Tags        []string   `json:"tags"`
	Variants    []Variant  `json:"variants"`
}

// DefaultVariant 返回首个规格，没有则为 nil
func (p *Product) DefaultVariant() *Variant {
	if p == nil || len(p.Variants) == 0 {
		return nil
	}
	return &p.Variants[0]
}
