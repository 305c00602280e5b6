package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset adalah komponen siap pakai untuk kue custom (topper, figur,
// hiasan gula, dsb) yang punya resep bahannya sendiri.
type Asset struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64           `gorm:"type:decimal(10,2);not null;default:0.00" json:"price"`
	ImageUrl  *string           `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	Recipe    []AssetRecipeItem `gorm:"foreignKey:AssetID" json:"recipe"`
	CreatedAt time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null" json:"updated_at"`
}

// AssetRecipeItem -> kebutuhan bahan per satu unit asset.
type AssetRecipeItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	AssetID      uint            `gorm:"not null;index:idx_asset_ingredient,unique" json:"asset_id"`
	IngredientID uint            `gorm:"not null;index:idx_asset_ingredient,unique" json:"ingredient_id"`
	Ingredient   Ingredient      `gorm:"foreignKey:IngredientID" json:"ingredient"`
	QtyPerUnit   decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"qty_per_unit"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}
