package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeDaily struct {
	mu    sync.Mutex
	rows  map[string][]string
	err   error
	calls int
}

func (f *fakeDaily) CountFrom(ctx context.Context, table, partition, fromRow string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, row := range f.rows[partition] {
		if row >= fromRow {
			n++
		}
	}
	return n, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)
}

func TestCheckCountsFromToday(t *testing.T) {
	store := &fakeDaily{rows: map[string][]string{
		"5": {"20261017", "20261018", "20261019"},
		"6": {"20261018"},
	}}
	m := NewDailyMonitor(store, MonitorConfig{Interval: time.Minute, LowWatermark: 2})
	m.now = fixedNow

	m.Check(context.Background())

	got := m.Remaining()
	if got[5] != 2 || got[6] != 1 || got[7] != 0 {
		t.Errorf("unexpected remaining counts: %v", got)
	}

	status := m.GetStatus()
	if _, ok := status["lastCheck"]; !ok {
		t.Error("expected lastCheck in status")
	}
	if _, ok := status["lastError"]; ok {
		t.Error("unexpected lastError in status")
	}
}

func TestCheckRecordsErrors(t *testing.T) {
	store := &fakeDaily{err: errors.New("connection refused")}
	m := NewDailyMonitor(store, MonitorConfig{Interval: time.Minute})
	m.now = fixedNow

	m.Check(context.Background())

	if len(m.Remaining()) != 0 {
		t.Errorf("expected no counts on error, got %v", m.Remaining())
	}
	if got := m.GetStatus()["lastError"]; got != "connection refused" {
		t.Errorf("expected lastError, got %v", got)
	}
}

func TestStartAndStop(t *testing.T) {
	store := &fakeDaily{rows: map[string][]string{}}
	m := NewDailyMonitor(store, MonitorConfig{Interval: 10 * time.Millisecond})

	done := make(chan struct{})
	go func() {
		m.Start(context.Background())
		close(done)
	}()

	deadline := time.After(time.Second)
	for {
		store.mu.Lock()
		calls := store.calls
		store.mu.Unlock()
		if calls >= 6 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("monitor never ran a second check")
		case <-time.After(5 * time.Millisecond):
		}
	}

	m.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
	if m.GetStatus()["running"] != false {
		t.Error("expected running=false after Stop")
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	m := NewDailyMonitor(&fakeDaily{}, MonitorConfig{Interval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor ignored context cancellation")
	}
}
