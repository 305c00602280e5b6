package live

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSuppressorClaimConsumesMark(t *testing.T) {
	s := NewSuppressor()
	s.Mark(TableOrders, 7, "corr-1")

	assert.True(t, s.Claim(TableOrders, 7, "corr-1"))
	assert.False(t, s.Claim(TableOrders, 7, "corr-1"), "tanda hangus setelah diklaim sekali")
}

func TestSuppressorClaimWithoutMark(t *testing.T) {
	s := NewSuppressor()
	assert.False(t, s.Claim(TableOrders, 7, "corr-1"))
}

func TestSuppressorEmptyCorrelationClaimsAnyMark(t *testing.T) {
	s := NewSuppressor()
	s.Mark(TableOrders, 7, "corr-1")

	// Event tanpa correlation (mis. DELETE) mengklaim tanda record-nya.
	assert.True(t, s.Claim(TableOrders, 7, ""))
}

func TestSuppressorForeignCorrelationKeepsMark(t *testing.T) {
	s := NewSuppressor()
	s.Mark(TableOrders, 7, "corr-local")

	// Tulisan client lain tidak tertelan dan tidak membakar tanda kita.
	assert.False(t, s.Claim(TableOrders, 7, "corr-foreign"))
	assert.True(t, s.Claim(TableOrders, 7, "corr-local"), "echo sendiri masih bisa diklaim setelahnya")
}

func TestSuppressorMarksAreKeyedPerRecord(t *testing.T) {
	s := NewSuppressor()
	s.Mark(TableOrders, 7, "corr-1")

	// Record lain dan tabel lain tidak ikut tertelan.
	assert.False(t, s.Claim(TableOrders, 8, "corr-1"))
	assert.False(t, s.Claim(TableInventory, 7, "corr-1"))
	assert.True(t, s.Claim(TableOrders, 7, "corr-1"))
}

func TestSuppressorReleaseDropsMarksForCorrelation(t *testing.T) {
	s := NewSuppressor()
	s.Mark(TableOrders, 7, "corr-a")
	s.Mark(TableInventory, 3, "corr-a")
	s.Mark(TableOrders, 8, "corr-b")

	// Transaksi corr-a rollback: tanda-tandanya dibuang, corr-b utuh.
	s.Release("corr-a")

	assert.False(t, s.Claim(TableOrders, 7, "corr-a"))
	assert.False(t, s.Claim(TableInventory, 3, "corr-a"))
	assert.True(t, s.Claim(TableOrders, 8, "corr-b"))
}

func TestSuppressorMarkExpires(t *testing.T) {
	s := NewSuppressor()
	current := time.Now()
	s.now = func() time.Time { return current }

	s.Mark(TableOrders, 7, "corr-1")

	// Lewat dari TTL: event bukan echo lagi.
	current = current.Add(DefaultMarkTTL + time.Millisecond)
	assert.False(t, s.Claim(TableOrders, 7, "corr-1"))
}

func TestSuppressorMarkJustInsideTTL(t *testing.T) {
	s := NewSuppressor()
	current := time.Now()
	s.now = func() time.Time { return current }

	s.Mark(TableOrders, 7, "corr-1")

	current = current.Add(DefaultMarkTTL - time.Millisecond)
	assert.True(t, s.Claim(TableOrders, 7, "corr-1"))
}

func TestSuppressorRemarkRefreshesWindow(t *testing.T) {
	s := NewSuppressor()
	current := time.Now()
	s.now = func() time.Time { return current }

	s.Mark(TableOrders, 7, "corr-1")
	current = current.Add(400 * time.Millisecond)
	s.Mark(TableOrders, 7, "corr-2")

	// 700ms sejak tanda pertama, 300ms sejak tanda kedua.
	current = current.Add(300 * time.Millisecond)
	assert.True(t, s.Claim(TableOrders, 7, "corr-2"))
}
