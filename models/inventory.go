package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryEntry adalah baris ledger stok untuk satu bahan.
// StockQuantity tidak pernah negatif; hanya InventoryLedger yang
// boleh menulis kolom ini.
type InventoryEntry struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	IngredientID  uint            `gorm:"not null;uniqueIndex" json:"ingredient_id"`
	Ingredient    Ingredient      `gorm:"foreignKey:IngredientID" json:"ingredient"`
	StockQuantity decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"stock_quantity"`
	// CorrelationID penulis terakhir; trigger menyalinnya ke db_changes.
	CorrelationID string    `gorm:"type:varchar(64)" json:"-"`
	LastUpdated   time.Time `gorm:"not null" json:"last_updated"`
}
