package models

import (
	"time"
)

// DBChange adalah spool perubahan yang diisi trigger database dan
// dibaca ChangeMonitor. Trigger menyalin kolom correlation_id baris
// yang berubah; kosong kalau penulisnya tidak mengisi correlation
// (client lain, edit manual).
type DBChange struct {
	ID            uint      `gorm:"primaryKey"`
	TableName     string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID      int64     `gorm:"not null"`
	ActionType    string    `gorm:"type:varchar(10);not null;index:idx_table_action"` // INSERT, UPDATE, DELETE
	CorrelationID string    `gorm:"type:varchar(64);index"`
	ChangedAt     time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;not null"`
	Processed     bool      `gorm:"default:false;index:idx_processed"`
}
