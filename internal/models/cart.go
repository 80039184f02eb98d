package models

// Cart 远端购物车的本地视图
type Cart struct {
	ID            string     `json:"id"`
	CheckoutURL   string     `json:"checkout_url,omitempty"`
	TotalQuantity int        `json:"total_quantity"`
	Cost          CartCost   `json:"cost"`
	Lines         []CartLine `json:"lines"`
}

// CartCost 购物车总价
type CartCost struct {
	Amount       Money  `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

// CartLine 购物车行
// MaxQuantity 为最近一次刷新时平台给出的库存上限
type CartLine struct {
	ID             string `json:"id"`
	VariantID      string `json:"variant_id"`
	Title          string `json:"title"`
	Price          Money  `json:"price"`
	Currency       string `json:"currency"`
	Image          string `json:"image"`
	Quantity       int    `json:"quantity"`
	MaxQuantity    int    `json:"max_quantity"`
	AvailableToAdd int    `json:"available_to_add"`
}

// FindLine 按行 ID 查找
func (c *Cart) FindLine(lineID string) *CartLine {
	if c == nil {
		return nil
	}
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return &c.Lines[i]
		}
	}
	return nil
}

// FindLineByVariant 按规格 ID 查找
func (c *Cart) FindLineByVariant(variantID string) *CartLine {
	if c == nil {
		return nil
	}
	for i := range c.Lines {
		if c.Lines[i].VariantID == variantID {
			return &c.Lines[i]
		}
	}
	return nil
}

// SumQuantity 行数量合计
func (c *Cart) SumQuantity() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// Clone 深拷贝，避免调用方修改内部状态
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Lines = append([]CartLine(nil), c.Lines...)
	return &cp
}
