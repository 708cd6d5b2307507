package memarena

type options struct {
	logger       *Logger
	metrics      MetricsCollector
	heapBuffer   bool
	strictChecks bool
	acquirer     MemoryAcquirer
}

// Option configures arena construction.
//
// Options exist to avoid exploding the constructor surface; the zero
// configuration (off-heap buffer, no logging, no metrics, unchecked
// frees) is the fast path.
type Option func(*options)

// WithLogger configures structured logging for arena operations.
//
// If nil is passed, logging stays disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// allocations. Pass nil to disable metrics collection.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(o *options) {
		if collector == nil {
			collector = NoopMetricsCollector{}
		}
		o.metrics = collector
	}
}

// WithHeapBuffer backs the arena with a garbage-collected []byte instead
// of an anonymous mapping. Useful for tiny arenas where a pair of
// syscalls per arena is not worth it, or on platforms without mmap.
func WithHeapBuffer() Option {
	return func(o *options) {
		o.heapBuffer = true
	}
}

// WithStrictChecks enables a debug shadow stack that records every live
// allocation and validates exact LIFO order on Free and FreeSlice.
// Mismatched or out-of-order frees panic with a descriptive message
// instead of silently corrupting the cursor.
//
// Intended for tests and debug builds; it adds bookkeeping to every
// allocation.
func WithStrictChecks() Option {
	return func(o *options) {
		o.strictChecks = true
	}
}

// WithMemoryAcquirer charges the arena's capacity against an external
// memory budget for the arena's whole lifetime. Construction fails if
// the budget rejects the reservation; Close returns it.
//
// The resource package provides a Controller implementing MemoryAcquirer
// that can be shared across arenas:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 30})
//	a, err := memarena.NewArena(64<<20, memarena.WithMemoryAcquirer(rc))
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(o *options) {
		o.acquirer = acquirer
	}
}
