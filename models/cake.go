package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cake struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64          `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string           `gorm:"type:text" json:"description"`
	ImageUrl    *string          `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	Recipe      []CakeRecipeItem `gorm:"foreignKey:CakeID" json:"recipe"`
	CreatedAt   time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null" json:"updated_at"`
}

// CakeRecipeItem -> kebutuhan bahan per satu unit cake.
type CakeRecipeItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CakeID       uint            `gorm:"not null;index:idx_cake_ingredient,unique" json:"cake_id"`
	IngredientID uint            `gorm:"not null;index:idx_cake_ingredient,unique" json:"ingredient_id"`
	Ingredient   Ingredient      `gorm:"foreignKey:IngredientID" json:"ingredient"`
	QtyPerUnit   decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"qty_per_unit"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}
