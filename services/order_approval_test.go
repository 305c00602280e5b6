package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dapurcake/cakeshop-app/models"
)

func orderStatusOf(t *testing.T, approval *OrderApproval, orderID uint) string {
	t.Helper()
	order, err := approval.LoadOrder(orderID)
	if err != nil {
		t.Fatalf("load order %d: %v", orderID, err)
	}
	return order.Status
}

func paymentOf(t *testing.T, approval *OrderApproval, orderID uint) *models.Payment {
	t.Helper()
	order, err := approval.LoadOrder(orderID)
	if err != nil {
		t.Fatalf("load order %d: %v", orderID, err)
	}
	if order.Payment == nil {
		t.Fatalf("order %d has no payment", orderID)
	}
	return order.Payment
}

func TestApproveDeductsStock(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "50")
	cake := seedCake(t, db, "Vanilla", map[uint]string{flour.ID: "2"})
	order := seedStandardOrder(t, db, cake.ID, 3)

	approval := newApproval(db)
	avail, err := approval.Approve(order.ID)
	assert.NoError(t, err)
	assert.True(t, avail.Available)
	assert.Equal(t, models.OrderStatusApproved, orderStatusOf(t, approval, order.ID))
	assert.True(t, stockOf(t, db, flour.ID).Equal(decimal.RequireFromString("44")))
}

func TestApproveThenUnapproveRestoresStockExactly(t *testing.T) {
	db := setupTestDB(t)
	icing := seedIngredient(t, db, "Icing", "gram", "50")
	rose := seedAsset(t, db, "Rose", map[uint]string{icing.ID: "1"})
	order := seedCustomOrder(t, db, map[uint]int{rose.ID: 5})

	approval := newApproval(db)
	_, err := approval.Approve(order.ID)
	assert.NoError(t, err)
	assert.True(t, stockOf(t, db, icing.ID).Equal(decimal.RequireFromString("45")))

	err = approval.Unapprove(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, orderStatusOf(t, approval, order.ID))
	assert.True(t, stockOf(t, db, icing.ID).Equal(decimal.RequireFromString("50")), "reversal harus mengembalikan stok persis")
}

func TestApproveBlockedLeavesEverythingUnchanged(t *testing.T) {
	db := setupTestDB(t)
	// Flour cukup, Sugar kurang: tidak boleh ada deduksi parsial.
	flour := seedIngredient(t, db, "Flour", "gram", "50")
	sugar := seedIngredient(t, db, "Sugar", "gram", "2")
	cake := seedCake(t, db, "Vanilla", map[uint]string{
		flour.ID: "2",
		sugar.ID: "1",
	})
	order := seedStandardOrder(t, db, cake.ID, 3)

	approval := newApproval(db)
	avail, err := approval.Approve(order.ID)
	assert.Error(t, err)
	assert.True(t, IsInsufficientStock(err))
	assert.NotNil(t, avail)
	assert.False(t, avail.Available)

	assert.Equal(t, models.OrderStatusPending, orderStatusOf(t, approval, order.ID))
	assert.True(t, stockOf(t, db, flour.ID).Equal(decimal.RequireFromString("50")))
	assert.True(t, stockOf(t, db, sugar.ID).Equal(decimal.RequireFromString("2")))
}

func TestApproveNonPendingRejected(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "50")
	cake := seedCake(t, db, "Vanilla", map[uint]string{flour.ID: "2"})
	order := seedStandardOrder(t, db, cake.ID, 1)

	approval := newApproval(db)
	_, err := approval.Approve(order.ID)
	assert.NoError(t, err)

	// Approve lagi: bukan idempotent, stok tidak boleh kepotong dua kali.
	_, err = approval.Approve(order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.True(t, stockOf(t, db, flour.ID).Equal(decimal.RequireFromString("48")))
}

func TestUnapprovePendingRejected(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "50")
	cake := seedCake(t, db, "Vanilla", map[uint]string{flour.ID: "2"})
	order := seedStandardOrder(t, db, cake.ID, 1)

	approval := newApproval(db)
	err := approval.Unapprove(order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.True(t, stockOf(t, db, flour.ID).Equal(decimal.RequireFromString("50")))
}

func TestCancelHasNoLedgerEffect(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "50")
	cake := seedCake(t, db, "Vanilla", map[uint]string{flour.ID: "2"})
	order := seedStandardOrder(t, db, cake.ID, 1)

	approval := newApproval(db)
	_, err := approval.Approve(order.ID)
	assert.NoError(t, err)
	assert.True(t, stockOf(t, db, flour.ID).Equal(decimal.RequireFromString("48")))

	// Cancel order approved: status berubah, stok yang sudah terpotong
	// tetap terpotong (reversal eksplisit lewat Unapprove dulu).
	err = approval.Cancel(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, orderStatusOf(t, approval, order.ID))
	assert.True(t, stockOf(t, db, flour.ID).Equal(decimal.RequireFromString("48")))
}

func TestCancelDeliveredRejected(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "50")
	cake := seedCake(t, db, "Vanilla", map[uint]string{flour.ID: "2"})
	order := seedStandardOrder(t, db, cake.ID, 1)

	approval := newApproval(db)
	assert.NoError(t, approval.MarkDelivered(order.ID))
	assert.ErrorIs(t, approval.Cancel(order.ID), ErrInvalidTransition)
}

func TestMarkDeliveredTwiceRejected(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "50")
	cake := seedCake(t, db, "Vanilla", map[uint]string{flour.ID: "2"})
	order := seedStandardOrder(t, db, cake.ID, 1)

	approval := newApproval(db)
	assert.NoError(t, approval.MarkDelivered(order.ID))
	assert.Equal(t, models.OrderStatusDelivered, orderStatusOf(t, approval, order.ID))
	assert.ErrorIs(t, approval.MarkDelivered(order.ID), ErrInvalidTransition)
}

func TestPaymentPaidAutoApproves(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "50")
	cake := seedCake(t, db, "Vanilla", map[uint]string{flour.ID: "2"})
	order := seedStandardOrder(t, db, cake.ID, 3)

	approval := newApproval(db)
	avail, err := approval.ApplyPaymentStatus(order.ID, models.PaymentStatusPaid, 100)
	assert.NoError(t, err)
	assert.NotNil(t, avail)
	assert.True(t, avail.Available)

	assert.Equal(t, models.OrderStatusApproved, orderStatusOf(t, approval, order.ID))
	assert.True(t, stockOf(t, db, flour.ID).Equal(decimal.RequireFromString("44")))

	payment := paymentOf(t, approval, order.ID)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.Equal(t, float64(100), payment.AmountPaid)
	assert.NotNil(t, payment.PaidAt)
}

func TestPaymentPaidTwiceDeductsOnce(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "50")
	cake := seedCake(t, db, "Vanilla", map[uint]string{flour.ID: "2"})
	order := seedStandardOrder(t, db, cake.ID, 3)

	approval := newApproval(db)
	_, err := approval.ApplyPaymentStatus(order.ID, models.PaymentStatusPaid, 100)
	assert.NoError(t, err)
	_, err = approval.ApplyPaymentStatus(order.ID, models.PaymentStatusPaid, 100)
	assert.NoError(t, err)

	assert.True(t, stockOf(t, db, flour.ID).Equal(decimal.RequireFromString("44")), "bayar dua kali tidak memotong stok dua kali")
}

func TestPaymentPartialThenPaidDeductsOnce(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "50")
	cake := seedCake(t, db, "Vanilla", map[uint]string{flour.ID: "2"})
	order := seedStandardOrder(t, db, cake.ID, 3)

	approval := newApproval(db)
	_, err := approval.ApplyPaymentStatus(order.ID, models.PaymentStatusPartial, 40)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusApproved, orderStatusOf(t, approval, order.ID))

	// Order sudah approved, transisi partial->paid tidak menyentuh ledger.
	_, err = approval.ApplyPaymentStatus(order.ID, models.PaymentStatusPaid, 100)
	assert.NoError(t, err)
	assert.True(t, stockOf(t, db, flour.ID).Equal(decimal.RequireFromString("44")))
	assert.Equal(t, models.PaymentStatusPaid, paymentOf(t, approval, order.ID).Status)
}

func TestPaymentAbortsWhenStockInsufficient(t *testing.T) {
	db := setupTestDB(t)
	sugar := seedIngredient(t, db, "Sugar", "gram", "2")
	cake := seedCake(t, db, "Vanilla", map[uint]string{sugar.ID: "1"})
	order := seedStandardOrder(t, db, cake.ID, 3)

	approval := newApproval(db)
	avail, err := approval.ApplyPaymentStatus(order.ID, models.PaymentStatusPaid, 100)
	assert.Error(t, err)
	assert.True(t, IsInsufficientStock(err))
	assert.NotNil(t, avail)
	assert.Contains(t, avail.BlockingMessage, "Sugar")

	// Seluruh update dibatalkan: payment tetap unpaid, order tetap
	// pending, stok tidak tersentuh.
	assert.Equal(t, models.PaymentStatusUnpaid, paymentOf(t, approval, order.ID).Status)
	assert.Equal(t, models.OrderStatusPending, orderStatusOf(t, approval, order.ID))
	assert.True(t, stockOf(t, db, sugar.ID).Equal(decimal.RequireFromString("2")))
}

func TestPaymentUnknownStatusRejected(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "50")
	cake := seedCake(t, db, "Vanilla", map[uint]string{flour.ID: "2"})
	order := seedStandardOrder(t, db, cake.ID, 1)

	approval := newApproval(db)
	_, err := approval.ApplyPaymentStatus(order.ID, "refunded", 0)
	assert.Error(t, err)
	assert.Equal(t, models.PaymentStatusUnpaid, paymentOf(t, approval, order.ID).Status)
}

func TestPaymentBackToUnpaidDoesNotTouchLedger(t *testing.T) {
	db := setupTestDB(t)
	flour := seedIngredient(t, db, "Flour", "gram", "50")
	cake := seedCake(t, db, "Vanilla", map[uint]string{flour.ID: "2"})
	order := seedStandardOrder(t, db, cake.ID, 3)

	approval := newApproval(db)
	_, err := approval.ApplyPaymentStatus(order.ID, models.PaymentStatusPaid, 100)
	assert.NoError(t, err)

	// Koreksi pembayaran ke unpaid hanya menulis payment; stok dan
	// status order tidak ikut berubah.
	_, err = approval.ApplyPaymentStatus(order.ID, models.PaymentStatusUnpaid, 0)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusUnpaid, paymentOf(t, approval, order.ID).Status)
	assert.Equal(t, models.OrderStatusApproved, orderStatusOf(t, approval, order.ID))
	assert.True(t, stockOf(t, db, flour.ID).Equal(decimal.RequireFromString("44")))
}
