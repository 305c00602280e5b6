package models

import (
	"time"
)

// Status pembayaran
const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// Payment milik tepat satu order.
type Payment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	OrderID    uint       `gorm:"not null;uniqueIndex" json:"order_id"`
	Status     string     `gorm:"type:varchar(20);not null;default:'unpaid'" json:"status"`
	AmountPaid float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"amount_paid"`
	Total      float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	// CorrelationID penulis terakhir; trigger menyalinnya ke db_changes.
	CorrelationID string    `gorm:"type:varchar(64)" json:"-"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
