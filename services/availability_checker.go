package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dapurcake/cakeshop-app/models"
)

// LowStockThreshold: proyeksi stok di bawah ini memicu peringatan
// (non-blocking).
var LowStockThreshold = decimal.NewFromInt(10)

// LowStockWarning -> peringatan stok menipis untuk satu bahan.
type LowStockWarning struct {
	IngredientID uint            `json:"ingredient_id"`
	Name         string          `json:"name"`
	Current      decimal.Decimal `json:"current"`
	Required     decimal.Decimal `json:"required"`
	Projected    decimal.Decimal `json:"projected"`
}

// Availability adalah hasil cek kelayakan approve satu order.
type Availability struct {
	Available       bool              `json:"available"`
	BlockingMessage string            `json:"blocking_message,omitempty"`
	Warnings        []LowStockWarning `json:"warnings,omitempty"`

	// Blocking terisi jika Available false; error yang sama yang
	// dikembalikan state machine ke caller.
	Blocking *InsufficientStockError `json:"-"`
}

// AvailabilityChecker memutuskan apakah requirement sebuah order bisa
// dipenuhi stok sekarang. Read-only, tidak pernah memutasi ledger.
type AvailabilityChecker struct {
	Resolver *RecipeResolver
	Ledger   *InventoryLedger
}

func NewAvailabilityChecker(resolver *RecipeResolver, ledger *InventoryLedger) *AvailabilityChecker {
	return &AvailabilityChecker{Resolver: resolver, Ledger: ledger}
}

// Check me-resolve requirement order lalu membandingkannya dengan stok.
func (ac *AvailabilityChecker) Check(order *models.Order) (*Availability, error) {
	req, err := ac.Resolver.Resolve(order)
	if err != nil {
		return nil, err
	}
	return ac.CheckRequirement(req)
}

// CheckRequirement membandingkan requirement dengan stok sekarang.
// Bahan pertama yang kurang langsung menghentikan pengecekan (pesan
// menyebut bahan, kebutuhan, dan stok tersedia); peringatan low-stock
// dikumpulkan dari semua bahan selama stok masih cukup.
func (ac *AvailabilityChecker) CheckRequirement(req Requirement) (*Availability, error) {
	result := &Availability{Available: true}

	for _, id := range req.SortedIngredientIDs() {
		required := req[id]

		entry, err := ac.Ledger.Get(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Bahan tanpa baris ledger = stok nol.
				result.Available = false
				result.Blocking = &InsufficientStockError{
					IngredientID:   id,
					IngredientName: fmt.Sprintf("ingredient #%d", id),
					Required:       required,
					Available:      decimal.Zero,
				}
				result.BlockingMessage = result.Blocking.Error()
				return result, nil
			}
			return nil, err
		}

		if entry.StockQuantity.LessThan(required) {
			result.Available = false
			result.Blocking = &InsufficientStockError{
				IngredientID:   id,
				IngredientName: entry.Ingredient.Name,
				Required:       required,
				Available:      entry.StockQuantity,
			}
			result.BlockingMessage = result.Blocking.Error()
			return result, nil
		}

		projected := entry.StockQuantity.Sub(required)
		if projected.LessThan(LowStockThreshold) {
			result.Warnings = append(result.Warnings, LowStockWarning{
				IngredientID: id,
				Name:         entry.Ingredient.Name,
				Current:      entry.StockQuantity,
				Required:     required,
				Projected:    projected,
			})
		}
	}

	return result, nil
}
