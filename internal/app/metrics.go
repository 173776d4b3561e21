package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts the work done by the event loop.
type Metrics struct {
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	keyCount   atomic.Uint64
	keyTotalNs atomic.Int64

	resizes atomic.Uint64
	reloads atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a metrics tracker starting now.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordRender records the time taken to draw one frame.
func (m *Metrics) RecordRender(d time.Duration) {
	ns := d.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)
	for {
		cur := m.renderMaxNs.Load()
		if ns <= cur || m.renderMaxNs.CompareAndSwap(cur, ns) {
			return
		}
	}
}

// RecordKey records the time taken to apply one key event.
func (m *Metrics) RecordKey(d time.Duration) {
	m.keyCount.Add(1)
	m.keyTotalNs.Add(d.Nanoseconds())
}

// RecordResize counts a terminal resize.
func (m *Metrics) RecordResize() { m.resizes.Add(1) }

// RecordReload counts a configuration reload.
func (m *Metrics) RecordReload() { m.reloads.Add(1) }

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Renders   uint64
	AvgRender time.Duration
	MaxRender time.Duration
	Keys      uint64
	AvgKey    time.Duration
	Resizes   uint64
	Reloads   uint64
	Uptime    time.Duration
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Renders:   m.renderCount.Load(),
		MaxRender: time.Duration(m.renderMaxNs.Load()),
		Keys:      m.keyCount.Load(),
		Resizes:   m.resizes.Load(),
		Reloads:   m.reloads.Load(),
		Uptime:    time.Since(m.startTime),
	}
	if s.Renders > 0 {
		s.AvgRender = time.Duration(m.renderTotalNs.Load() / int64(s.Renders))
	}
	if s.Keys > 0 {
		s.AvgKey = time.Duration(m.keyTotalNs.Load() / int64(s.Keys))
	}
	return s
}

// Fields returns the snapshot as log fields.
func (s MetricsSnapshot) Fields() map[string]any {
	return map[string]any{
		"renders":    s.Renders,
		"avg_render": s.AvgRender.String(),
		"max_render": s.MaxRender.String(),
		"keys":       s.Keys,
		"avg_key":    s.AvgKey.String(),
		"resizes":    s.Resizes,
		"reloads":    s.Reloads,
		"uptime":     s.Uptime.String(),
	}
}
