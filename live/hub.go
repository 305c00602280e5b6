package live

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dapurcake/cakeshop-app/models"
)

// Nama tabel yang dipantau change feed.
const (
	TableOrders    = "orders"
	TableInventory = "inventory_entries"
	TablePayments  = "payments"
)

// Event types
const (
	EventOrderCreate     = "order_create"
	EventOrderUpdate     = "order_update"
	EventOrderDelete     = "order_delete"
	EventInventoryUpdate = "inventory_update"
	EventLowStock        = "low_stock"
	EventPaymentUpdate   = "payment_update"
	EventStaffNotif      = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua sesi admin/staff yang terhubung dan channel
// untuk broadcast perubahan order dan stok.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreate -> order baru masuk
func BroadcastOrderCreate(order models.Order) {
	broadcast(Message{Event: EventOrderCreate, Data: order})
}

// BroadcastOrderUpdate -> menyiarkan update order ke semua client
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastOrderDelete -> order dihapus
func BroadcastOrderDelete(orderID uint) {
	broadcast(Message{
		Event: EventOrderDelete,
		Data:  map[string]interface{}{"order_id": orderID},
	})
}

// BroadcastInventoryUpdate -> stok bahan berubah
func BroadcastInventoryUpdate(entry models.InventoryEntry) {
	broadcast(Message{Event: EventInventoryUpdate, Data: entry})
}

// BroadcastLowStock -> peringatan stok menipis
func BroadcastLowStock(entry models.InventoryEntry) {
	broadcast(Message{Event: EventLowStock, Data: entry})
}

// BroadcastPaymentUpdate -> status pembayaran berubah
func BroadcastPaymentUpdate(payment models.Payment) {
	broadcast(Message{Event: EventPaymentUpdate, Data: payment})
}

// BroadcastStaffNotification -> notifikasi untuk staff
func BroadcastStaffNotification(message string) {
	broadcast(Message{Event: EventStaffNotif, Data: message})
}

// broadcast -> fungsi internal untuk mengirim pesan
func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
