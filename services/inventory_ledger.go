package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dapurcake/cakeshop-app/live"
	"github.com/dapurcake/cakeshop-app/models"
)

// InventoryLedger adalah satu-satunya penulis stock_quantity.
// Mutasi menerima handle db milik caller supaya satu transisi order
// (cek, deduct semua bahan, tulis status) commit atau rollback bersama.
type InventoryLedger struct {
	DB         *gorm.DB
	Suppressor *live.Suppressor
}

func NewInventoryLedger(db *gorm.DB, suppressor *live.Suppressor) *InventoryLedger {
	return &InventoryLedger{DB: db, Suppressor: suppressor}
}

// Get mengembalikan baris ledger untuk satu bahan, beserta ingredient.
func (l *InventoryLedger) Get(ingredientID uint) (*models.InventoryEntry, error) {
	var entry models.InventoryEntry
	if err := l.DB.Preload("Ingredient").
		Where("ingredient_id = ?", ingredientID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// DecrementIfAvailable mengurangi stok hanya jika cukup; kalau tidak,
// InsufficientStockError dan tidak ada yang berubah. Ini primitive
// mutasi utama: cek dan tulis dijaga satu guarded update sehingga dua
// client yang rebutan bahan yang sama tidak bisa dua-duanya lolos.
func (l *InventoryLedger) DecrementIfAvailable(db *gorm.DB, ingredientID uint, qty decimal.Decimal, corrID string) error {
	var entry models.InventoryEntry
	if err := db.Preload("Ingredient").
		Where("ingredient_id = ?", ingredientID).
		First(&entry).Error; err != nil {
		return fmt.Errorf("ledger entry for ingredient %d: %w", ingredientID, err)
	}

	if entry.StockQuantity.LessThan(qty) {
		return &InsufficientStockError{
			IngredientID:   ingredientID,
			IngredientName: entry.Ingredient.Name,
			Required:       qty,
			Available:      entry.StockQuantity,
		}
	}

	return l.writeGuarded(db, &entry, entry.StockQuantity.Sub(qty), corrID)
}

// Decrement adalah perilaku legacy: clamp di nol, tidak pernah gagal
// karena stok kurang. Dipertahankan untuk kompatibilitas; caller wajib
// sudah lewat AvailabilityChecker.
func (l *InventoryLedger) Decrement(db *gorm.DB, ingredientID uint, qty decimal.Decimal, corrID string) error {
	var entry models.InventoryEntry
	if err := db.Where("ingredient_id = ?", ingredientID).First(&entry).Error; err != nil {
		return fmt.Errorf("ledger entry for ingredient %d: %w", ingredientID, err)
	}

	next := entry.StockQuantity.Sub(qty)
	if next.IsNegative() {
		next = decimal.Zero
	}
	return l.writeGuarded(db, &entry, next, corrID)
}

// Increment menambah stok (reversal approval, penerimaan barang).
func (l *InventoryLedger) Increment(db *gorm.DB, ingredientID uint, qty decimal.Decimal, corrID string) error {
	var entry models.InventoryEntry
	if err := db.Where("ingredient_id = ?", ingredientID).First(&entry).Error; err != nil {
		return fmt.Errorf("ledger entry for ingredient %d: %w", ingredientID, err)
	}
	return l.writeGuarded(db, &entry, entry.StockQuantity.Add(qty), corrID)
}

// writeGuarded menulis stok baru dengan guard nilai lama; nol baris
// berarti ada penulis lain di tengah jalan -> ErrStockConflict.
// Suppressor ditandai SETELAH update kena: guard yang meleset tidak
// boleh meninggalkan tanda yang menelan notifikasi perubahan asing.
func (l *InventoryLedger) writeGuarded(db *gorm.DB, entry *models.InventoryEntry, next decimal.Decimal, corrID string) error {
	res := db.Model(&models.InventoryEntry{}).
		Where("id = ? AND stock_quantity = ?", entry.ID, entry.StockQuantity).
		Updates(map[string]interface{}{
			"stock_quantity": next,
			"correlation_id": corrID,
			"last_updated":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ingredient %d: %w", entry.IngredientID, ErrStockConflict)
	}

	if l.Suppressor != nil {
		l.Suppressor.Mark(live.TableInventory, entry.ID, corrID)
	}
	return nil
}
