package live

import (
	"sync"

	"github.com/dapurcake/cakeshop-app/models"
)

// OrderCache adalah salinan lokal daftar order (terbaru di depan) yang
// dilihat sesi admin. Hanya ChangeMonitor yang merekonsiliasinya;
// setiap event di-resolve dengan fetch ulang state otoritatif, jadi
// delivery yang tidak berurutan sembuh sendiri.
type OrderCache struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewOrderCache() *OrderCache {
	return &OrderCache{}
}

// Prepend menaruh order baru di depan daftar.
func (c *OrderCache) Prepend(order models.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders = append([]models.Order{order}, c.orders...)
}

// Replace mengganti entry dengan ID yang sama; kalau belum ada
// (event INSERT-nya keselip), order di-prepend.
func (c *OrderCache) Replace(order models.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.orders {
		if c.orders[i].ID == order.ID {
			c.orders[i] = order
			return
		}
	}
	c.orders = append([]models.Order{order}, c.orders...)
}

// Remove membuang entry dengan ID tersebut.
func (c *OrderCache) Remove(orderID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.orders {
		if c.orders[i].ID == orderID {
			c.orders = append(c.orders[:i], c.orders[i+1:]...)
			return
		}
	}
}

// Snapshot mengembalikan salinan daftar saat ini.
func (c *OrderCache) Snapshot() []models.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Order, len(c.orders))
	copy(out, c.orders)
	return out
}

// Len -> jumlah order di cache.
func (c *OrderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.orders)
}
