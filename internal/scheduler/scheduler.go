package scheduler

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/wapi/api/internal/middleware"
	"github.com/wapi/api/internal/model"
)

// DailyCounter counts daily-source rows dated on or after a day key.
type DailyCounter interface {
	CountFrom(ctx context.Context, table, partition, fromRow string) (int64, error)
}

// DailyMonitor periodically counts how many words of the day remain for
// each size and warns when the pre-assigned sequence is running out.
type DailyMonitor struct {
	store        DailyCounter
	interval     time.Duration
	lowWatermark int64
	now          func() time.Time

	running   bool
	remaining map[int]int64
	lastCheck time.Time
	lastErr   string
	mu        sync.Mutex
	stopChan  chan struct{}
}

type MonitorConfig struct {
	Interval     time.Duration
	LowWatermark int
}

func NewDailyMonitor(store DailyCounter, cfg MonitorConfig) *DailyMonitor {
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}

	return &DailyMonitor{
		store:        store,
		interval:     cfg.Interval,
		lowWatermark: int64(cfg.LowWatermark),
		now:          time.Now,
		remaining:    make(map[int]int64),
		stopChan:     make(chan struct{}),
	}
}

// Start checks once immediately and then on every tick until ctx is done
// or Stop is called.
func (m *DailyMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	log.Printf("[DailyMonitor] Starting with interval %v", m.interval)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Println("[DailyMonitor] Context cancelled, stopping")
			m.setStopped()
			return
		case <-m.stopChan:
			log.Println("[DailyMonitor] Stop signal received")
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

func (m *DailyMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		close(m.stopChan)
		m.running = false
		log.Println("[DailyMonitor] Stopped")
	}
}

func (m *DailyMonitor) setStopped() {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
}

// Check counts the remaining daily words for every size.
func (m *DailyMonitor) Check(ctx context.Context) {
	today := model.DayKey(m.now())
	remaining := make(map[int]int64)
	var lastErr string

	for size := model.MinWordSize; size <= model.MaxWordSize; size++ {
		n, err := m.store.CountFrom(ctx, model.TableDaily, strconv.Itoa(size), today)
		if err != nil {
			log.Printf("[DailyMonitor] Error counting size %d: %v", size, err)
			lastErr = err.Error()
			continue
		}
		remaining[size] = n
		middleware.SetDailyWordsRemaining(size, n)

		if n < m.lowWatermark {
			log.Printf("[DailyMonitor] Warning: only %d daily words of size %d left from %s", n, size, today)
		}
	}

	m.mu.Lock()
	m.remaining = remaining
	m.lastCheck = m.now()
	m.lastErr = lastErr
	m.mu.Unlock()
}

// Remaining returns the counts from the last check.
func (m *DailyMonitor) Remaining() map[int]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[int]int64, len(m.remaining))
	for size, n := range m.remaining {
		out[size] = n
	}
	return out
}

// GetStatus returns current monitor status
func (m *DailyMonitor) GetStatus() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	remaining := make(map[string]int64, len(m.remaining))
	for size, n := range m.remaining {
		remaining[strconv.Itoa(size)] = n
	}

	status := map[string]interface{}{
		"running":      m.running,
		"interval":     m.interval.String(),
		"lowWatermark": m.lowWatermark,
		"remaining":    remaining,
	}
	if !m.lastCheck.IsZero() {
		status["lastCheck"] = m.lastCheck.UTC().Format(time.RFC3339)
	}
	if m.lastErr != "" {
		status["lastError"] = m.lastErr
	}
	return status
}
