package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTransition -> transisi status yang tidak dikenal state
	// machine (mis. unapprove order yang masih pending). Precondition
	// failure, bukan fatal.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrStockConflict -> update stok bentrok dengan penulis lain;
	// baris sudah berubah di antara baca dan tulis.
	ErrStockConflict = errors.New("stock entry was modified concurrently")
)

// InsufficientStockError menolak approval: satu bahan tidak cukup.
type InsufficientStockError struct {
	IngredientID   uint
	IngredientName string
	Required       decimal.Decimal
	Available      decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: required %s, available %s",
		e.IngredientName, e.Required.String(), e.Available.String())
}

// IsInsufficientStock -> helper untuk handler yang perlu membedakan
// penolakan stok dari error lain.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}
