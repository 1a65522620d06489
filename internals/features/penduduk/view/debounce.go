package view

import (
	"sync"
	"time"
)

// Debouncer menunda eksekusi sampai input "tenang" selama delay.
// Schedule membatalkan jadwal yang masih pending (keystroke baru
// membatalkan fetch yang belum jalan) lalu menjadwalkan ulang.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop membatalkan jadwal pending (kalau ada).
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
