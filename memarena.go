package memarena

import (
	"fmt"
	"sync/atomic"

	"github.com/hupe1980/memarena/internal/arena"
	"github.com/hupe1980/memarena/internal/mem"
	"github.com/hupe1980/memarena/internal/mmap"
)

// MemoryAcquirer reserves backing memory against an external budget.
// resource.Controller implements it; custom implementations can bridge
// to any accounting scheme.
type MemoryAcquirer interface {
	// AcquireMemory reserves bytes. It must fail fast when the budget
	// would be exceeded.
	AcquireMemory(bytes int64) error
	// ReleaseMemory returns bytes to the budget.
	ReleaseMemory(bytes int64)
}

// Stats is a point-in-time snapshot of the arena, taken under its lock.
type Stats struct {
	Capacity    int    // Immutable byte length of the buffer
	Offset      int    // Current cursor position
	Remaining   int    // Capacity - Offset
	PeakOffset  int    // High-water mark of the cursor
	BytesPadded uint64 // Cumulative alignment padding
	TotalAllocs uint64 // Historical allocation count
	TotalFrees  uint64 // Historical free count
	TotalResets uint64 // Historical reset count
}

// Arena is a fixed-capacity, stack-discipline memory arena.
//
// It owns one contiguous buffer for its entire lifetime and serves typed
// allocations through a monotonically advancing cursor. Deallocation is
// explicit and LIFO: freeing anything but the most recent live
// allocation is caller error and, without WithStrictChecks, goes
// undetected. Reset moves the cursor back to zero without clearing
// whatever is still in the buffer.
//
// All operations are linearized by a single per-arena lock, so an Arena
// is safe to share across goroutines. There is no free-list, no interior
// reuse, and no growth: when the buffer is exhausted, allocations fail
// with ErrArenaFull until the caller frees or resets.
type Arena struct {
	core     *arena.Flat
	capacity int
	logger   *Logger
	metrics  MetricsCollector
	acquirer MemoryAcquirer
	closed   atomic.Bool
}

// NewArena creates an arena with a buffer of capacity bytes.
//
// The buffer is an off-heap anonymous mapping by default (invisible to
// the garbage collector, released by Close); WithHeapBuffer switches to
// a GC-managed slice. Failure to obtain the buffer is unrecoverable for
// the arena: no instance is returned and nothing is retried.
func NewArena(capacity int, optFns ...Option) (*Arena, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("memarena: %w: %d", ErrInvalidCapacity, capacity)
	}

	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}

	if o.acquirer != nil {
		if err := o.acquirer.AcquireMemory(int64(capacity)); err != nil {
			return nil, fmt.Errorf("memarena: acquire buffer: %w", err)
		}
	}

	buf, release, err := acquireBuffer(capacity, o.heapBuffer)
	if err != nil {
		if o.acquirer != nil {
			o.acquirer.ReleaseMemory(int64(capacity))
		}
		return nil, fmt.Errorf("memarena: acquire buffer: %w", err)
	}

	a := &Arena{
		core:     arena.NewFlat(buf, release, o.strictChecks),
		capacity: capacity,
		logger:   o.logger,
		metrics:  o.metrics,
		acquirer: o.acquirer,
	}

	a.logger.LogCreate(capacity, !o.heapBuffer && capacity > 0)

	return a, nil
}

func acquireBuffer(capacity int, heap bool) ([]byte, func([]byte) error, error) {
	if capacity == 0 || heap {
		// The cursor math aligns offsets, so the buffer itself has to
		// start aligned; make([]byte) alone does not guarantee that.
		return mem.AllocAligned(capacity), nil, nil
	}

	m, err := mmap.MapAnon(capacity)
	if err != nil {
		return nil, nil, err
	}

	// The cursor walks the buffer front to back.
	_ = m.Advise(mmap.AccessSequential)

	return m.Bytes(), func([]byte) error { return m.Close() }, nil
}

// Reset moves the cursor back to zero unconditionally, making the full
// capacity available again.
//
// Reset does not clear values still sitting in the buffer: the arena
// keeps no record of what is live, so anything holding external
// resources must be freed (or abandoned knowingly) before resetting.
func (a *Arena) Reset() {
	a.core.Reset()
	a.metrics.RecordReset()
	a.logger.LogReset(a.capacity)
}

// Remaining returns the number of unallocated bytes, a point-in-time
// snapshot taken under the lock.
func (a *Arena) Remaining() int {
	return a.core.Remaining()
}

// Capacity returns the immutable byte length of the buffer.
func (a *Arena) Capacity() int {
	return a.capacity
}

// Stats returns a snapshot of the cursor and counters.
func (a *Arena) Stats() Stats {
	s := a.core.Stats()
	return Stats{
		Capacity:    s.Capacity,
		Offset:      s.Offset,
		Remaining:   s.Capacity - s.Offset,
		PeakOffset:  s.PeakOffset,
		BytesPadded: s.BytesPadded,
		TotalAllocs: s.TotalAllocs,
		TotalFrees:  s.TotalFrees,
		TotalResets: s.TotalResets,
	}
}

// Usage returns the used fraction of capacity as a percentage.
func (a *Arena) Usage() float64 {
	s := a.Stats()
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Offset) / float64(s.Capacity) * 100
}

// Close releases the buffer exactly once and returns any reserved budget
// to the MemoryAcquirer. All pointers and slices handed out by this
// arena are invalid afterwards; subsequent allocations fail with
// ErrClosed. Close is idempotent.
func (a *Arena) Close() error {
	if a.closed.Swap(true) {
		return nil
	}

	err := a.core.Close()
	if a.acquirer != nil {
		a.acquirer.ReleaseMemory(int64(a.capacity))
	}
	a.logger.LogClose(err)

	if err != nil {
		return fmt.Errorf("memarena: release buffer: %w", err)
	}
	return nil
}

func (a *Arena) String() string {
	s := a.Stats()
	return fmt.Sprintf(
		"Arena{capacity: %d, used: %d, remaining: %d, peak: %d, usage: %.1f%%, allocs: %d, frees: %d}",
		s.Capacity,
		s.Offset,
		s.Remaining,
		s.PeakOffset,
		a.Usage(),
		s.TotalAllocs,
		s.TotalFrees,
	)
}
