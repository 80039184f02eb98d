package shopify

// Connection GraphQL 分页连接
type Connection[T any] struct {
	Edges []Edge[T] `json:"edges"`
}

// Edge 连接中的一条边
type Edge[T any] struct {
	Node T `json:"node"`
}

// Nodes 展开为节点列表
func (c Connection[T]) Nodes() []T {
	nodes := make([]T, 0, len(c.Edges))
	for _, edge := range c.Edges {
		nodes = append(nodes, edge.Node)
	}
	return nodes
}

// MoneyV2 金额（字符串小数）
type MoneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// VariantProduct 变体所属商品的最小信息
type VariantProduct struct {
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// ProductVariant 商品变体
type ProductVariant struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	AvailableForSale  bool            `json:"availableForSale"`
	QuantityAvailable *int            `json:"quantityAvailable"`
	Price             *MoneyV2        `json:"price"`
	Image             *Image          `json:"image"`
	Product           *VariantProduct `json:"product"`
}

type CartLineCost struct {
	TotalAmount *MoneyV2 `json:"totalAmount"`
}

// CartLine 远端购物车行
type CartLine struct {
	ID          string         `json:"id"`
	Quantity    int            `json:"quantity"`
	Cost        *CartLineCost  `json:"cost"`
	Merchandise ProductVariant `json:"merchandise"`
}

type CartCost struct {
	TotalAmount    *MoneyV2 `json:"totalAmount"`
	SubtotalAmount *MoneyV2 `json:"subtotalAmount"`
}

// Cart 远端购物车
type Cart struct {
	ID            string               `json:"id"`
	CheckoutURL   string               `json:"checkoutUrl"`
	TotalQuantity int                  `json:"totalQuantity"`
	Cost          *CartCost            `json:"cost"`
	Lines         Connection[CartLine] `json:"lines"`
}

// CartLineInput 新增行
type CartLineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// CartLineUpdateInput 修改行数量
type CartLineUpdateInput struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type PriceRange struct {
	MinVariantPrice MoneyV2 `json:"minVariantPrice"`
	MaxVariantPrice MoneyV2 `json:"maxVariantPrice"`
}

// Product 商品
type Product struct {
	ID          string                     `json:"id"`
	Title       string                     `json:"title"`
	Handle      string                     `json:"handle"`
	Description string                     `json:"description"`
	Tags        []string                   `json:"tags"`
	PriceRange  PriceRange                 `json:"priceRange"`
	Images      Connection[Image]          `json:"images"`
	Variants    Connection[ProductVariant] `json:"variants"`
}

// Collection 商品集合
type Collection struct {
	ID       string              `json:"id"`
	Title    string              `json:"title"`
	Handle   string              `json:"handle"`
	Products Connection[Product] `json:"products"`
}

type cartPayload struct {
	Cart       *Cart      `json:"cart"`
	UserErrors UserErrors `json:"userErrors"`
}

type cartCreateData struct {
	CartCreate *cartPayload `json:"cartCreate"`
}

type cartQueryData struct {
	Cart *Cart `json:"cart"`
}

type cartLinesAddData struct {
	CartLinesAdd *cartPayload `json:"cartLinesAdd"`
}

type cartLinesUpdateData struct {
	CartLinesUpdate *cartPayload `json:"cartLinesUpdate"`
}

type cartLinesRemoveData struct {
	CartLinesRemove *cartPayload `json:"cartLinesRemove"`
}

type productData struct {
	Product *Product `json:"product"`
}

type productsData struct {
	Products Connection[Product] `json:"products"`
}

type collectionData struct {
	Collection *Collection `json:"collection"`
}
