package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrStockLimit       = errors.New("stock limit reached")
	ErrCartNotFound     = errors.New("cart not found")
	ErrCheckoutMissing  = errors.New("checkout url unavailable")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartIDLoadFailed = errors.New("cart id load failed")
)

// StockLimitError 超出库存上限，不会发往远端
type StockLimitError struct {
	LineID      string
	Title       string
	MaxQuantity int
}

func (e *StockLimitError) Error() string {
	return fmt.Sprintf("%s: %q allows at most %d", ErrStockLimit.Error(), e.Title, e.MaxQuantity)
}

func (e *StockLimitError) Unwrap() error {
	return ErrStockLimit
}
