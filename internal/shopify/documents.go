package shopify

import "strconv"

// CartLinesPageSize 单次读取的购物车行上限
const CartLinesPageSize = 50

var cartFields = `
fragment CartFields on Cart {
  id
  checkoutUrl
  totalQuantity
  cost {
    totalAmount { amount currencyCode }
    subtotalAmount { amount currencyCode }
  }
  lines(first: ` + strconv.Itoa(CartLinesPageSize) + `) {
    edges {
      node {
        id
        quantity
        cost {
          totalAmount { amount currencyCode }
        }
        merchandise {
          ... on ProductVariant {
            id
            title
            availableForSale
            quantityAvailable
            price { amount currencyCode }
            image { url altText }
            product { title handle }
          }
        }
      }
    }
  }
}
`

const userErrorFields = `
userErrors {
  field
  message
  code
}
`

var cartCreateMutation = cartFields + `
mutation CartCreate($lines: [CartLineInput!]) {
  cartCreate(input: { lines: $lines }) {
    cart { ...CartFields }
    ` + userErrorFields + `
  }
}
`

var cartQuery = cartFields + `
query Cart($cartId: ID!) {
  cart(id: $cartId) { ...CartFields }
}
`

var cartLinesAddMutation = cartFields + `
mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart { ...CartFields }
    ` + userErrorFields + `
  }
}
`

var cartLinesUpdateMutation = cartFields + `
mutation CartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart { ...CartFields }
    ` + userErrorFields + `
  }
}
`

var cartLinesRemoveMutation = cartFields + `
mutation CartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart { ...CartFields }
    ` + userErrorFields + `
  }
}
`

const productCardFields = `
fragment ProductCardFields on Product {
  id
  title
  handle
  tags
  priceRange {
    minVariantPrice { amount currencyCode }
    maxVariantPrice { amount currencyCode }
  }
  images(first: 1) {
    edges { node { url altText } }
  }
}
`

const productsQuery = productCardFields + `
query Products($first: Int!) {
  products(first: $first) {
    edges { node { ...ProductCardFields } }
  }
}
`

const collectionProductsQuery = productCardFields + `
query CollectionProducts($handle: String!, $first: Int!) {
  collection(handle: $handle) {
    id
    title
    handle
    products(first: $first) {
      edges { node { ...ProductCardFields } }
    }
  }
}
`

const productByHandleQuery = `
query ProductByHandle($handle: String!, $images: Int!, $variants: Int!) {
  product(handle: $handle) {
    id
    title
    handle
    description
    tags
    priceRange {
      minVariantPrice { amount currencyCode }
      maxVariantPrice { amount currencyCode }
    }
    images(first: $images) {
      edges { node { url altText } }
    }
    variants(first: $variants) {
      edges {
        node {
          id
          title
          availableForSale
          quantityAvailable
          price { amount currencyCode }
          image { url altText }
        }
      }
    }
  }
}
`
