package live

import (
	"fmt"
	"sync"
	"time"
)

// DefaultMarkTTL adalah jendela echo: mutasi lokal yang tidak kunjung
// muncul di change feed dalam rentang ini dianggap bukan echo lagi.
const DefaultMarkTTL = 500 * time.Millisecond

type mark struct {
	correlationID string
	expires       time.Time
}

// Suppressor mencegah mutasi yang dibuat client ini memunculkan
// notifikasi ganda saat change feed meng-echo-nya kembali. Mutator
// menandai (table, record) sebelum menulis; monitor mengklaim tanda
// yang cocok dan menahan notifikasinya. Tanda dikunci per record,
// bukan flag global, supaya update dari client lain tidak ikut
// tertelan.
type Suppressor struct {
	mu    sync.Mutex
	marks map[string]mark
	TTL   time.Duration

	// untuk test; default time.Now
	now func() time.Time
}

func NewSuppressor() *Suppressor {
	return &Suppressor{
		marks: make(map[string]mark),
		TTL:   DefaultMarkTTL,
		now:   time.Now,
	}
}

func markKey(table string, recordID uint) string {
	return fmt.Sprintf("%s:%d", table, recordID)
}

// Mark mencatat bahwa mutasi record ini berasal dari client lokal.
// Dipanggil sesaat sebelum request mutasi dikirim.
func (s *Suppressor) Mark(table string, recordID uint, correlationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marks[markKey(table, recordID)] = mark{
		correlationID: correlationID,
		expires:       s.now().Add(s.TTL),
	}
}

// Claim mengkonsumsi tanda untuk record ini jika ada, belum
// kedaluwarsa, dan correlation ID event-nya cocok. True berarti event
// ini echo lokal dan notifikasinya boleh ditahan. Event dengan
// correlation lain adalah tulisan client lain: tandanya dibiarkan
// (echo kita masih dalam perjalanan) dan notifikasi tetap jalan.
// correlationID kosong (baris tanpa kolom correlation, mis. DELETE)
// mengklaim tanda apapun untuk record itu. Sekali klaim, tanda hangus.
func (s *Suppressor) Claim(table string, recordID uint, correlationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := markKey(table, recordID)
	m, ok := s.marks[key]
	if !ok {
		return false
	}
	if correlationID != "" && correlationID != m.correlationID {
		return false
	}
	delete(s.marks, key)
	return s.now().Before(m.expires)
}

// Release membuang semua tanda dengan correlation ID ini. Dipanggil
// saat transaksi yang sudah sempat menandai ternyata rollback, supaya
// tanda basi tidak menelan notifikasi perubahan asing berikutnya.
func (s *Suppressor) Release(correlationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, m := range s.marks {
		if m.correlationID == correlationID {
			delete(s.marks, key)
		}
	}
}
