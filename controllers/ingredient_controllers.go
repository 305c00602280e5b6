package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dapurcake/cakeshop-app/models"
	"github.com/dapurcake/cakeshop-app/utils"
)

type IngredientController struct {
	DB *gorm.DB
}

func NewIngredientController(db *gorm.DB) *IngredientController {
	return &IngredientController{DB: db}
}

// GetAllIngredients
func (ic *IngredientController) GetAllIngredients(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := ic.DB.Find(&ingredients).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of ingredients", ingredients)
}

// CreateIngredient -> bahan baru sekaligus baris ledger stok nol-nya
func (ic *IngredientController) CreateIngredient(c *gin.Context) {
	if !requireRole(c, "admin") {
		return
	}

	type reqBody struct {
		Name string `json:"name" binding:"required"`
		Unit string `json:"unit" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ingredient := models.Ingredient{
		Name:      body.Name,
		Unit:      body.Unit,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	tx := ic.DB.Begin()
	if err := tx.Create(&ingredient).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	entry := models.InventoryEntry{
		IngredientID:  ingredient.ID,
		StockQuantity: decimal.Zero,
		LastUpdated:   time.Now(),
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	utils.RespondJSON(c, http.StatusCreated, "Ingredient created", ingredient)
}

// UpdateIngredient
func (ic *IngredientController) UpdateIngredient(c *gin.Context) {
	if !requireRole(c, "admin") {
		return
	}

	idStr := c.Param("ingredient_id")
	id, _ := strconv.Atoi(idStr)

	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		Name *string `json:"name"`
		Unit *string `json:"unit"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		ingredient.Name = *body.Name
	}
	if body.Unit != nil {
		ingredient.Unit = *body.Unit
	}
	ingredient.UpdatedAt = time.Now()

	if err := ic.DB.Save(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredient updated", ingredient)
}

// DeleteIngredient
func (ic *IngredientController) DeleteIngredient(c *gin.Context) {
	if !requireRole(c, "admin") {
		return
	}

	idStr := c.Param("ingredient_id")
	id, _ := strconv.Atoi(idStr)

	tx := ic.DB.Begin()
	if err := tx.Where("ingredient_id = ?", id).Delete(&models.InventoryEntry{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&models.Ingredient{}, id).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	utils.RespondJSON(c, http.StatusOK, "Ingredient deleted", gin.H{"ingredient_id": id})
}
