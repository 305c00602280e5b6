package models

import (
	"time"
)

// Kategori notifikasi staff.
const (
	NotifCategoryOrder     = "order"
	NotifCategoryInventory = "inventory"
	NotifCategoryPayment   = "payment"
	NotifCategoryGeneral   = "general"
)

// Notification adalah notifikasi staff yang dipersist. UserID nil
// berarti broadcast untuk semua staff.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    *uint      `json:"user_id,omitempty"`
	User      User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Category  string     `gorm:"type:varchar(20);not null;default:'general'" json:"category"`
	Title     *string    `gorm:"type:varchar(100)" json:"title,omitempty"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}
