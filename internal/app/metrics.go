package app

import (
	"maps"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks command and render counts.
type Metrics struct {
	mu       sync.RWMutex
	commands map[string]uint64

	commandCount   atomic.Uint64
	commandTotalNs atomic.Int64
	alertCount     atomic.Uint64
	errorCount     atomic.Uint64

	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		commands:  make(map[string]uint64),
		startTime: time.Now(),
	}
}

// RecordCommand records one command run and how long it took.
func (m *Metrics) RecordCommand(name string, duration time.Duration, err error) {
	m.commandCount.Add(1)
	m.commandTotalNs.Add(duration.Nanoseconds())
	if err != nil {
		m.errorCount.Add(1)
	}

	m.mu.Lock()
	m.commands[name]++
	m.mu.Unlock()
}

// RecordAlert records a command that ended with an alert.
func (m *Metrics) RecordAlert() {
	m.alertCount.Add(1)
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)
	for {
		old := m.renderMaxNs.Load()
		if ns <= old || m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// MetricsSnapshot is a point-in-time copy of the metrics.
type MetricsSnapshot struct {
	Uptime time.Duration

	CommandCount   uint64
	CommandAvg     time.Duration
	AlertCount     uint64
	ErrorCount     uint64
	CommandsByName map[string]uint64

	RenderCount uint64
	RenderAvg   time.Duration
	RenderMax   time.Duration
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		CommandCount: m.commandCount.Load(),
		AlertCount:   m.alertCount.Load(),
		ErrorCount:   m.errorCount.Load(),
		RenderCount:  m.renderCount.Load(),
		RenderMax:    time.Duration(m.renderMaxNs.Load()),
	}
	if s.CommandCount > 0 {
		s.CommandAvg = time.Duration(m.commandTotalNs.Load() / int64(s.CommandCount))
	}
	if s.RenderCount > 0 {
		s.RenderAvg = time.Duration(m.renderTotalNs.Load() / int64(s.RenderCount))
	}

	m.mu.RLock()
	s.Uptime = time.Since(m.startTime)
	s.CommandsByName = maps.Clone(m.commands)
	m.mu.RUnlock()
	return s
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	m.commands = make(map[string]uint64)
	m.startTime = time.Now()
	m.mu.Unlock()

	m.commandCount.Store(0)
	m.commandTotalNs.Store(0)
	m.alertCount.Store(0)
	m.errorCount.Store(0)
	m.renderCount.Store(0)
	m.renderTotalNs.Store(0)
	m.renderMaxNs.Store(0)
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
