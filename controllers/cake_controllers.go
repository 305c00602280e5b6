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

type CakeController struct {
	DB *gorm.DB
}

func NewCakeController(db *gorm.DB) *CakeController {
	return &CakeController{DB: db}
}

// GetAllCakes -> katalog cake beserta resepnya
func (cc *CakeController) GetAllCakes(c *gin.Context) {
	var cakes []models.Cake
	if err := cc.DB.Preload("Recipe.Ingredient").Find(&cakes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of cakes", cakes)
}

// GetCakeByID
func (cc *CakeController) GetCakeByID(c *gin.Context) {
	idStr := c.Param("cake_id")
	id, _ := strconv.Atoi(idStr)

	var cake models.Cake
	if err := cc.DB.Preload("Recipe.Ingredient").First(&cake, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cake detail", cake)
}

// CreateCake -> cake baru, opsional sekalian resepnya
func (cc *CakeController) CreateCake(c *gin.Context) {
	if !requireRole(c, "admin") {
		return
	}

	type recipeReq struct {
		IngredientID uint            `json:"ingredient_id" binding:"required"`
		QtyPerUnit   decimal.Decimal `json:"qty_per_unit" binding:"required"`
	}
	type reqBody struct {
		Name        string      `json:"name" binding:"required"`
		Price       float64     `json:"price" binding:"required"`
		Description string      `json:"description"`
		Recipe      []recipeReq `json:"recipe"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cake := models.Cake{
		Name:        body.Name,
		Price:       body.Price,
		Description: body.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	tx := cc.DB.Begin()
	if err := tx.Create(&cake).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, item := range body.Recipe {
		ri := models.CakeRecipeItem{
			CakeID:       cake.ID,
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

	utils.RespondJSON(c, http.StatusCreated, "Cake created", cake)
}

// SetCakeRecipe -> ganti seluruh resep cake
func (cc *CakeController) SetCakeRecipe(c *gin.Context) {
	if !requireRole(c, "admin") {
		return
	}

	idStr := c.Param("cake_id")
	id, _ := strconv.Atoi(idStr)

	var cake models.Cake
	if err := cc.DB.First(&cake, id).Error; err != nil {
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

	tx := cc.DB.Begin()
	if err := tx.Where("cake_id = ?", cake.ID).Delete(&models.CakeRecipeItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	for _, item := range body {
		ri := models.CakeRecipeItem{
			CakeID:       cake.ID,
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

	utils.RespondJSON(c, http.StatusOK, "Cake recipe updated", gin.H{"cake_id": cake.ID})
}

// UpdateCake -> data dasar cake (bukan resep)
func (cc *CakeController) UpdateCake(c *gin.Context) {
	if !requireRole(c, "admin") {
		return
	}

	idStr := c.Param("cake_id")
	id, _ := strconv.Atoi(idStr)

	var cake models.Cake
	if err := cc.DB.First(&cake, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		cake.Name = *body.Name
	}
	if body.Price != nil {
		cake.Price = *body.Price
	}
	if body.Description != nil {
		cake.Description = *body.Description
	}
	cake.UpdatedAt = time.Now()

	if err := cc.DB.Save(&cake).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cake updated", cake)
}

// DeleteCake
func (cc *CakeController) DeleteCake(c *gin.Context) {
	if !requireRole(c, "admin") {
		return
	}

	idStr := c.Param("cake_id")
	id, _ := strconv.Atoi(idStr)

	if err := cc.DB.Delete(&models.Cake{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cake deleted", gin.H{"cake_id": id})
}
