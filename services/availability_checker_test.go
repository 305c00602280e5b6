package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dapurcake/cakeshop-app/models"
)

func TestCheckBlocksOnFirstInsufficientIngredient(t *testing.T) {
	db := setupTestDB(t)
	// Cake butuh {Flour:2, Sugar:1} per unit, order 3 unit ->
	// requirement {Flour:6, Sugar:3}. Stok Flour=10, Sugar=2.
	flour := seedIngredient(t, db, "Flour", "gram", "10")
	sugar := seedIngredient(t, db, "Sugar", "gram", "2")
	cake := seedCake(t, db, "Vanilla", map[uint]string{
		flour.ID: "2",
		sugar.ID: "1",
	})
	order := seedStandardOrder(t, db, cake.ID, 3)

	approval := newApproval(db)
	loaded, err := approval.LoadOrder(order.ID)
	assert.NoError(t, err)

	avail, err := approval.Checker.Check(loaded)
	assert.NoError(t, err)
	assert.False(t, avail.Available)
	assert.NotNil(t, avail.Blocking)
	assert.Equal(t, "Sugar", avail.Blocking.IngredientName)
	assert.True(t, avail.Blocking.Required.Equal(decimal.RequireFromString("3")))
	assert.True(t, avail.Blocking.Available.Equal(decimal.RequireFromString("2")))
	assert.Contains(t, avail.BlockingMessage, "Sugar")
	assert.Contains(t, avail.BlockingMessage, "required 3")
	assert.Contains(t, avail.BlockingMessage, "available 2")
}

func TestCheckLowStockWarningIsNonBlocking(t *testing.T) {
	db := setupTestDB(t)
	// Stok 12, kebutuhan 5, threshold 10 -> lolos dengan satu
	// peringatan projected=7.
	butter := seedIngredient(t, db, "Butter", "gram", "12")
	cake := seedCake(t, db, "Butter Cake", map[uint]string{butter.ID: "5"})
	order := seedStandardOrder(t, db, cake.ID, 1)

	approval := newApproval(db)
	loaded, err := approval.LoadOrder(order.ID)
	assert.NoError(t, err)

	avail, err := approval.Checker.Check(loaded)
	assert.NoError(t, err)
	assert.True(t, avail.Available)
	assert.Empty(t, avail.BlockingMessage)
	assert.Len(t, avail.Warnings, 1)

	warning := avail.Warnings[0]
	assert.Equal(t, "Butter", warning.Name)
	assert.True(t, warning.Current.Equal(decimal.RequireFromString("12")))
	assert.True(t, warning.Required.Equal(decimal.RequireFromString("5")))
	assert.True(t, warning.Projected.Equal(decimal.RequireFromString("7")))
}

func TestCheckCollectsAllWarnings(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "11")
	sugar := seedIngredient(t, db, "Sugar", "gram", "12")
	cake := seedCake(t, db, "Vanilla", map[uint]string{
		flour.ID: "4",
		sugar.ID: "5",
	})
	order := seedStandardOrder(t, db, cake.ID, 1)

	approval := newApproval(db)
	loaded, err := approval.LoadOrder(order.ID)
	assert.NoError(t, err)

	avail, err := approval.Checker.Check(loaded)
	assert.NoError(t, err)
	assert.True(t, avail.Available)
	assert.Len(t, avail.Warnings, 2, "peringatan dikumpulkan dari semua bahan")
}

func TestCheckMissingLedgerRowCountsAsZeroStock(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "10")

	// Bahan kedua tanpa baris ledger.
	ghost := seedIngredient(t, db, "Saffron", "gram", "0")
	assert.NoError(t, db.Where("ingredient_id = ?", ghost.ID).Delete(&models.InventoryEntry{}).Error)

	cake := seedCake(t, db, "Saffron Cake", map[uint]string{
		flour.ID: "1",
		ghost.ID: "1",
	})
	order := seedStandardOrder(t, db, cake.ID, 1)

	approval := newApproval(db)
	loaded, err := approval.LoadOrder(order.ID)
	assert.NoError(t, err)

	avail, err := approval.Checker.Check(loaded)
	assert.NoError(t, err)
	assert.False(t, avail.Available)
	assert.True(t, avail.Blocking.Available.Equal(decimal.Zero))
}

func TestCheckNeverMutatesLedger(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "10")
	cake := seedCake(t, db, "Vanilla", map[uint]string{flour.ID: "2"})
	order := seedStandardOrder(t, db, cake.ID, 3)

	approval := newApproval(db)
	loaded, err := approval.LoadOrder(order.ID)
	assert.NoError(t, err)

	_, err = approval.Checker.Check(loaded)
	assert.NoError(t, err)
	assert.True(t, stockOf(t, db, flour.ID).Equal(decimal.RequireFromString("10")))
}
