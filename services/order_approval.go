package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dapurcake/cakeshop-app/live"
	"github.com/dapurcake/cakeshop-app/models"
	"github.com/dapurcake/cakeshop-app/utils"
)

// OrderApproval adalah state machine status order dan satu-satunya
// pemilik transisi yang menyentuh ledger:
//
//	pending  -> approved  : cek ketersediaan, deduct semua bahan
//	approved -> pending   : kembalikan semua bahan (reversal)
//	pending/approved -> cancelled : status saja, ledger tidak disentuh
//	*        -> delivered : status saja
//
// Tiap transisi berjalan dalam satu transaksi gorm: semua efek samping
// atau tidak sama sekali.
type OrderApproval struct {
	DB         *gorm.DB
	Resolver   *RecipeResolver
	Checker    *AvailabilityChecker
	Ledger     *InventoryLedger
	Suppressor *live.Suppressor
}

func NewOrderApproval(db *gorm.DB, suppressor *live.Suppressor) *OrderApproval {
	resolver := NewRecipeResolver(db)
	ledger := NewInventoryLedger(db, suppressor)
	return &OrderApproval{
		DB:         db,
		Resolver:   resolver,
		Checker:    NewAvailabilityChecker(resolver, ledger),
		Ledger:     ledger,
		Suppressor: suppressor,
	}
}

// LoadOrder mengambil order beserta line yang dibutuhkan resolver.
func (s *OrderApproval) LoadOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.
		Preload("StandardLine").
		Preload("CustomCake.AssetUsages").
		Preload("Payment").
		First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Approve -> pending ke approved. Mengembalikan hasil cek ketersediaan
// (termasuk peringatan low-stock) saat sukses; saat stok kurang, error
// InsufficientStockError dan ledger tidak berubah sama sekali.
func (s *OrderApproval) Approve(orderID uint) (*Availability, error) {
	order, err := s.LoadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("order %d is %s: %w", order.ID, order.Status, ErrInvalidTransition)
	}
	return s.approve(order)
}

// approve menjalankan jalur cek-lalu-deduct yang dipakai approve manual
// maupun auto-approval dari pembayaran.
func (s *OrderApproval) approve(order *models.Order) (*Availability, error) {
	req, err := s.Resolver.Resolve(order)
	if err != nil {
		return nil, err
	}

	avail, err := s.Checker.CheckRequirement(req)
	if err != nil {
		return nil, err
	}
	if !avail.Available {
		return avail, avail.Blocking
	}

	corrID := uuid.NewString()
	tx := s.DB.Begin()

	for _, id := range req.SortedIngredientIDs() {
		if err := s.Ledger.DecrementIfAvailable(tx, id, req[id], corrID); err != nil {
			tx.Rollback()
			s.Suppressor.Release(corrID)
			return nil, err
		}
	}

	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":         models.OrderStatusApproved,
			"correlation_id": corrID,
			"updated_at":     time.Now(),
		}).Error; err != nil {
		tx.Rollback()
		s.Suppressor.Release(corrID)
		return nil, err
	}
	s.Suppressor.Mark(live.TableOrders, order.ID, corrID)

	if err := tx.Commit().Error; err != nil {
		s.Suppressor.Release(corrID)
		return nil, err
	}

	utils.InfoLogger.Printf("Order %d approved (correlation=%s)", order.ID, corrID)
	return avail, nil
}

// Unapprove -> approved kembali ke pending; semua bahan yang sudah
// dipotong dikembalikan persis (Approve lalu Unapprove = stok utuh).
func (s *OrderApproval) Unapprove(orderID uint) error {
	order, err := s.LoadOrder(orderID)
	if err != nil {
		return err
	}
	if order.Status != models.OrderStatusApproved {
		return fmt.Errorf("order %d is %s: %w", order.ID, order.Status, ErrInvalidTransition)
	}

	req, err := s.Resolver.Resolve(order)
	if err != nil {
		return err
	}

	corrID := uuid.NewString()
	tx := s.DB.Begin()

	for _, id := range req.SortedIngredientIDs() {
		if err := s.Ledger.Increment(tx, id, req[id], corrID); err != nil {
			tx.Rollback()
			s.Suppressor.Release(corrID)
			return err
		}
	}

	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":         models.OrderStatusPending,
			"correlation_id": corrID,
			"updated_at":     time.Now(),
		}).Error; err != nil {
		tx.Rollback()
		s.Suppressor.Release(corrID)
		return err
	}
	s.Suppressor.Mark(live.TableOrders, order.ID, corrID)

	if err := tx.Commit().Error; err != nil {
		s.Suppressor.Release(corrID)
		return err
	}

	utils.InfoLogger.Printf("Order %d reverted to pending (correlation=%s)", order.ID, corrID)
	return nil
}

// Cancel -> pending/approved ke cancelled. Status saja; stok yang
// sudah terpotong untuk order approved TIDAK dikembalikan di sini.
func (s *OrderApproval) Cancel(orderID uint) error {
	order, err := s.LoadOrder(orderID)
	if err != nil {
		return err
	}
	if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusApproved {
		return fmt.Errorf("order %d is %s: %w", order.ID, order.Status, ErrInvalidTransition)
	}
	return s.writeStatus(order.ID, models.OrderStatusCancelled)
}

// MarkDelivered -> order selesai diantar/diambil. Sinyal fulfillment
// datang dari luar; di sini hanya persist status.
func (s *OrderApproval) MarkDelivered(orderID uint) error {
	order, err := s.LoadOrder(orderID)
	if err != nil {
		return err
	}
	if order.Status == models.OrderStatusDelivered {
		return fmt.Errorf("order %d already delivered: %w", order.ID, ErrInvalidTransition)
	}
	return s.writeStatus(order.ID, models.OrderStatusDelivered)
}

func (s *OrderApproval) writeStatus(orderID uint, status string) error {
	corrID := uuid.NewString()
	if err := s.DB.Model(&models.Order{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":         status,
			"correlation_id": corrID,
			"updated_at":     time.Now(),
		}).Error; err != nil {
		return err
	}
	s.Suppressor.Mark(live.TableOrders, orderID, corrID)
	return nil
}

// ApplyPaymentStatus menulis status pembayaran baru. Transisi masuk ke
// partial/paid meng-auto-approve order yang belum approved lewat jalur
// cek-lalu-deduct yang sama dengan approve manual; jika stoknya kurang,
// seluruh update pembayaran dibatalkan dan caller menerima pesan
// blocking-nya. Menulis status yang sama dua kali tidak memotong stok
// dua kali.
func (s *OrderApproval) ApplyPaymentStatus(orderID uint, newStatus string, amountPaid float64) (*Availability, error) {
	switch newStatus {
	case models.PaymentStatusUnpaid, models.PaymentStatusPartial, models.PaymentStatusPaid:
	default:
		return nil, fmt.Errorf("unknown payment status %q: %w", newStatus, ErrInvalidTransition)
	}

	order, err := s.LoadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Payment == nil {
		return nil, fmt.Errorf("order %d has no payment: %w", orderID, gorm.ErrRecordNotFound)
	}

	prevStatus := order.Payment.Status

	// Guard: auto-approval hanya saat status pembayaran benar-benar
	// berpindah ke partial/paid dan order belum approved.
	triggersApproval := newStatus != prevStatus &&
		(newStatus == models.PaymentStatusPartial || newStatus == models.PaymentStatusPaid) &&
		order.Status != models.OrderStatusApproved

	var avail *Availability
	if triggersApproval {
		if avail, err = s.approve(order); err != nil {
			// Cek gagal -> seluruh update payment ditolak.
			return avail, err
		}
	}

	corrID := uuid.NewString()
	updates := map[string]interface{}{
		"status":         newStatus,
		"amount_paid":    amountPaid,
		"correlation_id": corrID,
		"updated_at":     time.Now(),
	}
	if newStatus == models.PaymentStatusPaid && prevStatus != models.PaymentStatusPaid {
		now := time.Now()
		updates["paid_at"] = &now
	}

	if err := s.DB.Model(&models.Payment{}).Where("id = ?", order.Payment.ID).
		Updates(updates).Error; err != nil {
		return avail, err
	}
	s.Suppressor.Mark(live.TablePayments, order.Payment.ID, corrID)

	return avail, nil
}
