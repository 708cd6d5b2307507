package memarena

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    allocCounter   prometheus.Counter
//	    allocHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordAlloc(size int, duration time.Duration, err error) {
//	    p.allocCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordAlloc is called after each allocation attempt.
	// size is the requested byte size, duration the time spent under the
	// arena lock, err is nil if the allocation succeeded.
	RecordAlloc(size int, duration time.Duration, err error)

	// RecordFree is called after each deallocation.
	RecordFree(size int, duration time.Duration)

	// RecordReset is called after each bulk reset.
	RecordReset()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAlloc(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordFree(int, time.Duration)         {}
func (NoopMetricsCollector) RecordReset()                          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocCount      atomic.Int64
	AllocErrors     atomic.Int64
	AllocBytes      atomic.Int64
	AllocTotalNanos atomic.Int64
	FreeCount       atomic.Int64
	FreeBytes       atomic.Int64
	FreeTotalNanos  atomic.Int64
	ResetCount      atomic.Int64
}

// RecordAlloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAlloc(size int, duration time.Duration, err error) {
	b.AllocCount.Add(1)
	b.AllocTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AllocErrors.Add(1)
		return
	}
	b.AllocBytes.Add(int64(size))
}

// RecordFree implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFree(size int, duration time.Duration) {
	b.FreeCount.Add(1)
	b.FreeBytes.Add(int64(size))
	b.FreeTotalNanos.Add(duration.Nanoseconds())
}

// RecordReset implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReset() {
	b.ResetCount.Add(1)
}
