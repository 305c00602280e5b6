package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dapurcake/cakeshop-app/models"
	"github.com/dapurcake/cakeshop-app/services"
	"github.com/dapurcake/cakeshop-app/utils"
)

type InventoryController struct {
	DB     *gorm.DB
	Ledger *services.InventoryLedger
}

func NewInventoryController(db *gorm.DB, ledger *services.InventoryLedger) *InventoryController {
	return &InventoryController{DB: db, Ledger: ledger}
}

// GetAllInventory -> semua baris ledger beserta bahannya
func (ic *InventoryController) GetAllInventory(c *gin.Context) {
	var entries []models.InventoryEntry
	if err := ic.DB.Preload("Ingredient").Find(&entries).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory list", entries)
}

// GetInventoryByIngredient -> stok satu bahan
func (ic *InventoryController) GetInventoryByIngredient(c *gin.Context) {
	idStr := c.Param("ingredient_id")
	id, _ := strconv.Atoi(idStr)

	entry, err := ic.Ledger.Get(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory detail", entry)
}

// AdjustInventory -> penyesuaian stok manual (barang masuk / koreksi).
// Adjustment positif menambah; negatif mengurangi lewat primitive
// conditional yang sama dengan approval, jadi tidak bisa minus.
func (ic *InventoryController) AdjustInventory(c *gin.Context) {
	if !requireRole(c, "admin", "staff") {
		return
	}

	idStr := c.Param("ingredient_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Adjustment decimal.Decimal `json:"adjustment" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Adjustment.IsZero() {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("adjustment tidak boleh nol"))
		return
	}

	corrID := uuid.NewString()
	var err error
	if body.Adjustment.IsPositive() {
		err = ic.Ledger.Increment(ic.DB, uint(id), body.Adjustment, corrID)
	} else {
		err = ic.Ledger.DecrementIfAvailable(ic.DB, uint(id), body.Adjustment.Neg(), corrID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	entry, err := ic.Ledger.Get(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory adjusted", entry)
}

// GetLowStock -> bahan dengan stok di bawah ambang peringatan
func (ic *InventoryController) GetLowStock(c *gin.Context) {
	var entries []models.InventoryEntry
	if err := ic.DB.Preload("Ingredient").
		Where("stock_quantity < ?", services.LowStockThreshold).
		Find(&entries).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Low stock ingredients", entries)
}
