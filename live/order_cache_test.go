package live

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dapurcake/cakeshop-app/models"
)

func TestOrderCachePrependNewestFirst(t *testing.T) {
	c := NewOrderCache()
	c.Prepend(models.Order{ID: 1})
	c.Prepend(models.Order{ID: 2})

	orders := c.Snapshot()
	assert.Len(t, orders, 2)
	assert.Equal(t, uint(2), orders[0].ID)
	assert.Equal(t, uint(1), orders[1].ID)
}

func TestOrderCacheReplaceInPlace(t *testing.T) {
	c := NewOrderCache()
	c.Prepend(models.Order{ID: 1, Status: models.OrderStatusPending})
	c.Prepend(models.Order{ID: 2, Status: models.OrderStatusPending})

	c.Replace(models.Order{ID: 1, Status: models.OrderStatusApproved})

	orders := c.Snapshot()
	assert.Len(t, orders, 2)
	assert.Equal(t, uint(2), orders[0].ID, "replace tidak mengubah urutan")
	assert.Equal(t, models.OrderStatusApproved, orders[1].Status)
}

func TestOrderCacheReplaceUnknownPrepends(t *testing.T) {
	c := NewOrderCache()
	c.Prepend(models.Order{ID: 1})

	c.Replace(models.Order{ID: 9})

	orders := c.Snapshot()
	assert.Len(t, orders, 2)
	assert.Equal(t, uint(9), orders[0].ID)
}

func TestOrderCacheRemove(t *testing.T) {
	c := NewOrderCache()
	c.Prepend(models.Order{ID: 1})
	c.Prepend(models.Order{ID: 2})

	c.Remove(1)
	assert.Equal(t, 1, c.Len())

	// Remove untuk ID yang tidak ada: no-op.
	c.Remove(42)
	assert.Equal(t, 1, c.Len())
}

func TestOrderCacheSnapshotIsACopy(t *testing.T) {
	c := NewOrderCache()
	c.Prepend(models.Order{ID: 1, Status: models.OrderStatusPending})

	snap := c.Snapshot()
	snap[0].Status = models.OrderStatusCancelled

	assert.Equal(t, models.OrderStatusPending, c.Snapshot()[0].Status)
}
