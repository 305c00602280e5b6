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

type AssetController struct {
	DB *gorm.DB
}

func NewAssetController(db *gorm.DB) *AssetController {
	return &AssetController{DB: db}
}

// GetAllAssets -> katalog asset kue custom beserta resepnya
func (ac *AssetController) GetAllAssets(c *gin.Context) {
	var assets []models.Asset
	if err := ac.DB.Preload("Recipe.Ingredient").Find(&assets).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of assets", assets)
}

// GetAssetByID
func (ac *AssetController) GetAssetByID(c *gin.Context) {
	idStr := c.Param("asset_id")
	id, _ := strconv.Atoi(idStr)

	var asset models.Asset
	if err := ac.DB.Preload("Recipe.Ingredient").First(&asset, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Asset detail", asset)
}

// CreateAsset -> asset baru, opsional sekalian resepnya
func (ac *AssetController) CreateAsset(c *gin.Context) {
	if !requireRole(c, "admin") {
		return
	}

	type recipeReq struct {
		IngredientID uint            `json:"ingredient_id" binding:"required"`
		QtyPerUnit   decimal.Decimal `json:"qty_per_unit" binding:"required"`
	}
	type reqBody struct {
		Name   string      `json:"name" binding:"required"`
		Price  float64     `json:"price"`
		Recipe []recipeReq `json:"recipe"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	asset := models.Asset{
		Name:      body.Name,
		Price:     body.Price,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	tx := ac.DB.Begin()
	if err := tx.Create(&asset).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, item := range body.Recipe {
		ri := models.AssetRecipeItem{
			AssetID:      asset.ID,
			IngredientID: item.IngredientID,
			QtyPerUnit:   item.QtyPerUnit,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := tx.Create(&ri).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	tx.Commit()

	utils.RespondJSON(c, http.StatusCreated, "Asset created", asset)
}

// SetAssetRecipe -> ganti seluruh resep asset
func (ac *AssetController) SetAssetRecipe(c *gin.Context) {
	if !requireRole(c, "admin") {
		return
	}

	idStr := c.Param("asset_id")
	id, _ := strconv.Atoi(idStr)

	var asset models.Asset
	if err := ac.DB.First(&asset, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type recipeReq struct {
		IngredientID uint            `json:"ingredient_id" binding:"required"`
		QtyPerUnit   decimal.Decimal `json:"qty_per_unit" binding:"required"`
	}
	var body []recipeReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tx := ac.DB.Begin()
	if err := tx.Where("asset_id = ?", asset.ID).Delete(&models.AssetRecipeItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	for _, item := range body {
		ri := models.AssetRecipeItem{
			AssetID:      asset.ID,
			IngredientID: item.IngredientID,
			QtyPerUnit:   item.QtyPerUnit,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := tx.Create(&ri).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	tx.Commit()

	utils.RespondJSON(c, http.StatusOK, "Asset recipe updated", gin.H{"asset_id": asset.ID})
}

// DeleteAsset
func (ac *AssetController) DeleteAsset(c *gin.Context) {
	if !requireRole(c, "admin") {
		return
	}

	idStr := c.Param("asset_id")
	id, _ := strconv.Atoi(idStr)

	if err := ac.DB.Delete(&models.Asset{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Asset deleted", gin.H{"asset_id": id})
}
