package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/dapurcake/cakeshop-app/live"
	"github.com/dapurcake/cakeshop-app/models"
	"github.com/dapurcake/cakeshop-app/utils"
)

// ChangeMonitor membaca spool db_changes (diisi trigger database,
// termasuk perubahan dari client lain) dan merekonsiliasi state lokal.
// Payload event tidak dipercaya: tiap event di-fetch ulang dari store
// supaya delivery yang dobel atau tidak berurutan sembuh sendiri.
type ChangeMonitor struct {
	DB         *gorm.DB
	StopChan   chan struct{}
	Interval   time.Duration
	Cache      *live.OrderCache
	Suppressor *live.Suppressor
}

func NewChangeMonitor(db *gorm.DB, cache *live.OrderCache, suppressor *live.Suppressor) *ChangeMonitor {
	return &ChangeMonitor{
		DB:         db,
		StopChan:   make(chan struct{}),
		Interval:   1 * time.Second,
		Cache:      cache,
		Suppressor: suppressor,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.CheckChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

// CheckChanges memproses batch perubahan yang belum diproses.
func (cm *ChangeMonitor) CheckChanges() {
	var changes []models.DBChange

	// Transaction untuk mencegah dua poller memproses baris yang sama
	tx := cm.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		log.Printf("Error fetching changes: %v", err)
		return
	}

	for _, change := range changes {
		switch change.TableName {
		case live.TableOrders:
			cm.processOrderChange(change)
		case live.TableInventory:
			cm.processInventoryChange(change)
		case live.TablePayments:
			cm.processPaymentChange(change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			log.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing transaction: %v", err)
		tx.Rollback()
		return
	}
}

// fetchOrder mengambil representasi order lengkap (joined) sebagai
// state otoritatif.
func (cm *ChangeMonitor) fetchOrder(id int64) (*models.Order, error) {
	var order models.Order
	if err := cm.DB.
		Preload("Customer").
		Preload("StandardLine.Cake").
		Preload("CustomCake.AssetUsages.Asset").
		Preload("Payment").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (cm *ChangeMonitor) processOrderChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		cm.Cache.Remove(uint(change.RecordID))
		live.BroadcastOrderDelete(uint(change.RecordID))
		return
	}

	order, err := cm.fetchOrder(change.RecordID)
	if err != nil {
		log.Printf("Error fetching order %d: %v", change.RecordID, err)
		return
	}

	switch change.ActionType {
	case "INSERT":
		cm.Cache.Prepend(*order)
		live.BroadcastOrderCreate(*order)
		live.BroadcastStaffNotification(fmt.Sprintf("Pesanan baru #%d masuk", order.ID))
	case "UPDATE":
		cm.Cache.Replace(*order)
		live.BroadcastOrderUpdate(*order)
		// Echo mutasi lokal tidak perlu notifikasi kedua; correlation
		// beda berarti tulisan client lain dan tetap dinotifikasi.
		if !cm.Suppressor.Claim(live.TableOrders, order.ID, change.CorrelationID) {
			live.BroadcastStaffNotification(fmt.Sprintf("Order #%d berubah (status: %s)", order.ID, order.Status))
		}
	}
}

func (cm *ChangeMonitor) processInventoryChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		return
	}

	var entry models.InventoryEntry
	if err := cm.DB.Preload("Ingredient").First(&entry, change.RecordID).Error; err != nil {
		log.Printf("Error fetching inventory entry %d: %v", change.RecordID, err)
		return
	}

	live.BroadcastInventoryUpdate(entry)

	if entry.StockQuantity.LessThan(LowStockThreshold) {
		live.BroadcastLowStock(entry)
		if !cm.Suppressor.Claim(live.TableInventory, entry.ID, change.CorrelationID) {
			live.BroadcastStaffNotification(fmt.Sprintf(
				"Stok %s menipis: tersisa %s %s",
				entry.Ingredient.Name, utils.FormatQty(entry.StockQuantity), entry.Ingredient.Unit))
		}
	} else {
		cm.Suppressor.Claim(live.TableInventory, entry.ID, change.CorrelationID)
	}
}

func (cm *ChangeMonitor) processPaymentChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		return
	}

	var payment models.Payment
	if err := cm.DB.First(&payment, change.RecordID).Error; err != nil {
		log.Printf("Error fetching payment %d: %v", change.RecordID, err)
		return
	}

	live.BroadcastPaymentUpdate(payment)

	if !cm.Suppressor.Claim(live.TablePayments, payment.ID, change.CorrelationID) &&
		payment.Status == models.PaymentStatusPaid {
		live.BroadcastStaffNotification(fmt.Sprintf("Order #%d lunas", payment.OrderID))
	}

	// Status order bisa ikut berubah (auto-approval); refresh cache.
	if order, err := cm.fetchOrder(int64(payment.OrderID)); err == nil {
		cm.Cache.Replace(*order)
	}
}
