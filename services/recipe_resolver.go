package services

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dapurcake/cakeshop-app/models"
	"github.com/dapurcake/cakeshop-app/utils"
)

// Requirement adalah agregat kebutuhan bahan satu order:
// ingredient ID -> total kuantitas.
type Requirement map[uint]decimal.Decimal

// SortedIngredientIDs mengembalikan ingredient ID terurut naik supaya
// iterasi requirement deterministik (pesan blocking dan urutan deduct).
func (r Requirement) SortedIngredientIDs() []uint {
	ids := make([]uint, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RecipeResolver menentukan bentuk order (standard atau custom) dan
// menghitung kebutuhan bahannya. Read-only.
type RecipeResolver struct {
	DB *gorm.DB

	// Strict -> resep/bahan yang tidak ketemu jadi error, bukan
	// sekadar di-skip. Default lenient: skip dan log, approval tetap
	// bisa jalan dengan data parsial.
	Strict bool
}

func NewRecipeResolver(db *gorm.DB) *RecipeResolver {
	return &RecipeResolver{DB: db}
}

// Resolve menghitung requirement map untuk satu order. Order harus
// sudah di-load beserta line-nya (StandardLine / CustomCake beserta
// AssetUsages). Order custom menang jika dua bentuk sama-sama ada.
func (rr *RecipeResolver) Resolve(order *models.Order) (Requirement, error) {
	req := make(Requirement)

	if order.IsCustom() {
		if err := rr.resolveCustom(order.CustomCake, req); err != nil {
			return nil, err
		}
		return req, nil
	}

	if order.StandardLine != nil {
		if err := rr.resolveStandard(order.StandardLine, req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// resolveStandard -> resep cake x jumlah unit order.
func (rr *RecipeResolver) resolveStandard(line *models.StandardLine, req Requirement) error {
	var items []models.CakeRecipeItem
	if err := rr.DB.Where("cake_id = ?", line.CakeID).Find(&items).Error; err != nil {
		return fmt.Errorf("load recipe for cake %d: %w", line.CakeID, err)
	}

	if len(items) == 0 {
		if rr.Strict {
			return fmt.Errorf("no recipe found for cake %d: %w", line.CakeID, gorm.ErrRecordNotFound)
		}
		utils.ErrorLogger.Printf("Resep cake %d tidak ditemukan, order line di-skip", line.CakeID)
		return nil
	}

	qty := decimal.NewFromInt(int64(line.Quantity))
	for _, item := range items {
		req[item.IngredientID] = req[item.IngredientID].Add(item.QtyPerUnit.Mul(qty))
	}
	return nil
}

// resolveCustom -> jumlahkan resep tiap asset x kuantitas pemakaiannya.
// Bahan yang sama di lebih dari satu asset diakumulasi.
func (rr *RecipeResolver) resolveCustom(custom *models.CustomCakeOrder, req Requirement) error {
	for _, usage := range custom.AssetUsages {
		var items []models.AssetRecipeItem
		if err := rr.DB.Where("asset_id = ?", usage.AssetID).Find(&items).Error; err != nil {
			return fmt.Errorf("load recipe for asset %d: %w", usage.AssetID, err)
		}

		if len(items) == 0 {
			if rr.Strict {
				return fmt.Errorf("no recipe found for asset %d: %w", usage.AssetID, gorm.ErrRecordNotFound)
			}
			utils.ErrorLogger.Printf("Resep asset %d tidak ditemukan, usage di-skip", usage.AssetID)
			continue
		}

		qty := decimal.NewFromInt(int64(usage.Quantity))
		for _, item := range items {
			req[item.IngredientID] = req[item.IngredientID].Add(item.QtyPerUnit.Mul(qty))
		}
	}
	return nil
}
