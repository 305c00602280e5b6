package models

import (
	"time"
)

// Status order yang dikenal engine ini.
const (
	OrderStatusPending   = "pending"
	OrderStatusApproved  = "approved"
	OrderStatusCancelled = "cancelled"
	OrderStatusDelivered = "delivered"
)

const (
	DeliveryMethodPickup   = "pickup"
	DeliveryMethodDelivery = "delivery"
)

// Order adalah pesanan kue. Tepat satu dari StandardLine atau
// CustomCake yang terisi; line tidak pernah diubah setelah order dibuat,
// hanya status, delivery method dan jadwal.
type Order struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	CustomerID     uint             `gorm:"not null;index" json:"customer_id"`
	Customer       Customer         `gorm:"foreignKey:CustomerID" json:"customer"`
	Status         string           `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DeliveryMethod string           `gorm:"type:varchar(20);not null;default:'pickup'" json:"delivery_method"`
	ScheduledAt    *time.Time       `json:"scheduled_at,omitempty"`
	StandardLine   *StandardLine    `gorm:"foreignKey:OrderID" json:"standard_line,omitempty"`
	CustomCake     *CustomCakeOrder `gorm:"foreignKey:OrderID" json:"custom_cake,omitempty"`
	Payment        *Payment         `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
	// CorrelationID penulis terakhir; trigger menyalinnya ke db_changes.
	CorrelationID string    `gorm:"type:varchar(64)" json:"-"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// IsCustom -> order dianggap custom jika punya record CustomCakeOrder.
// Jika datanya ambigu (dua-duanya ada), custom yang menang.
func (o *Order) IsCustom() bool {
	return o.CustomCake != nil
}

// StandardLine mengikat order standar ke satu template cake dan jumlah unit.
type StandardLine struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;uniqueIndex" json:"order_id"`
	CakeID    uint      `gorm:"not null" json:"cake_id"`
	Cake      Cake      `gorm:"foreignKey:CakeID" json:"cake"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// CustomCakeOrder adalah kue custom yang dirakit dari beberapa asset.
type CustomCakeOrder struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	OrderID     uint         `gorm:"not null;uniqueIndex" json:"order_id"`
	AssetUsages []AssetUsage `gorm:"foreignKey:CustomCakeOrderID" json:"asset_usages"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

// AssetUsage -> satu asset dipakai sekian unit dalam kue custom.
type AssetUsage struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CustomCakeOrderID uint      `gorm:"not null;index" json:"custom_cake_order_id"`
	AssetID           uint      `gorm:"not null" json:"asset_id"`
	Asset             Asset     `gorm:"foreignKey:AssetID" json:"asset"`
	Quantity          int       `gorm:"not null" json:"quantity"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}
