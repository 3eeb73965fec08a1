package app

import (
	"errors"
	"testing"
	"time"
)

func TestMetrics_RecordCommand(t *testing.T) {
	m := NewMetrics()

	m.RecordCommand("quick_find_goto_next", 2*time.Millisecond, nil)
	m.RecordCommand("quick_find_goto_next", 4*time.Millisecond, nil)
	m.RecordCommand("save", 3*time.Millisecond, errors.New("disk full"))

	s := m.Snapshot()
	if s.CommandCount != 3 {
		t.Errorf("expected 3 commands, got %d", s.CommandCount)
	}
	if s.CommandAvg != 3*time.Millisecond {
		t.Errorf("expected 3ms average, got %v", s.CommandAvg)
	}
	if s.ErrorCount != 1 {
		t.Errorf("expected 1 error, got %d", s.ErrorCount)
	}
	if s.CommandsByName["quick_find_goto_next"] != 2 || s.CommandsByName["save"] != 1 {
		t.Errorf("unexpected per-command counts %v", s.CommandsByName)
	}
}

func TestMetrics_SnapshotIsACopy(t *testing.T) {
	m := NewMetrics()
	m.RecordCommand("save", time.Millisecond, nil)

	s := m.Snapshot()
	s.CommandsByName["save"] = 99
	if got := m.Snapshot().CommandsByName["save"]; got != 1 {
		t.Errorf("snapshot mutation leaked into metrics: %d", got)
	}
}

func TestMetrics_RecordAlert(t *testing.T) {
	m := NewMetrics()
	m.RecordAlert()
	m.RecordAlert()

	if got := m.Snapshot().AlertCount; got != 2 {
		t.Errorf("expected 2 alerts, got %d", got)
	}
}

func TestMetrics_RecordRender(t *testing.T) {
	m := NewMetrics()
	m.RecordRender(1 * time.Millisecond)
	m.RecordRender(5 * time.Millisecond)
	m.RecordRender(3 * time.Millisecond)

	s := m.Snapshot()
	if s.RenderCount != 3 {
		t.Errorf("expected 3 renders, got %d", s.RenderCount)
	}
	if s.RenderMax != 5*time.Millisecond {
		t.Errorf("expected 5ms max, got %v", s.RenderMax)
	}
	if s.RenderAvg != 3*time.Millisecond {
		t.Errorf("expected 3ms average, got %v", s.RenderAvg)
	}
}

func TestMetrics_EmptySnapshot(t *testing.T) {
	s := NewMetrics().Snapshot()
	if s.CommandAvg != 0 || s.RenderAvg != 0 {
		t.Errorf("expected zero averages, got %v and %v", s.CommandAvg, s.RenderAvg)
	}
	if s.Uptime < 0 {
		t.Errorf("negative uptime %v", s.Uptime)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.RecordCommand("save", time.Millisecond, errors.New("x"))
	m.RecordAlert()
	m.RecordRender(time.Millisecond)

	m.Reset()

	s := m.Snapshot()
	if s.CommandCount != 0 || s.AlertCount != 0 || s.ErrorCount != 0 {
		t.Errorf("expected cleared command metrics, got %+v", s)
	}
	if s.RenderCount != 0 || s.RenderMax != 0 {
		t.Errorf("expected cleared render metrics, got %+v", s)
	}
	if len(s.CommandsByName) != 0 {
		t.Errorf("expected no per-command counts, got %v", s.CommandsByName)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				m.RecordCommand("move_left", time.Microsecond, nil)
				m.RecordRender(time.Microsecond)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	s := m.Snapshot()
	if s.CommandCount != 800 || s.CommandsByName["move_left"] != 800 {
		t.Errorf("expected 800 commands, got %d / %d", s.CommandCount, s.CommandsByName["move_left"])
	}
}
