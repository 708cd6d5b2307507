package arena

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"unsafe"
)

var (
	// ErrArenaFull is returned when an allocation does not fit into the
	// remaining capacity. The cursor is left untouched.
	ErrArenaFull = errors.New("arena: not enough capacity")
	// ErrInvalidCount is returned for degenerate array counts (zero,
	// negative, or large enough to overflow the byte size).
	ErrInvalidCount = errors.New("arena: invalid element count")
	// ErrClosed is returned when allocating from a closed arena.
	ErrClosed = errors.New("arena: closed")
)

// record describes one live allocation. Records are kept only in strict
// mode, where Pop validates exact LIFO order against them.
type record struct {
	offset uintptr
	size   uintptr
}

// Stats is a point-in-time snapshot of the cursor and the counters.
type Stats struct {
	Capacity    int
	Offset      int
	BytesPadded uint64
	PeakOffset  int
	TotalAllocs uint64
	TotalFrees  uint64
	TotalResets uint64
}

// Flat is a fixed-capacity bump allocator over one contiguous buffer.
//
// The only mutable state is the cursor: it moves forward on successful
// allocations, backward on Pop/Reset, and never on a failed call. The
// invariant 0 <= offset <= len(buf) holds at all times. Flat keeps no
// registry of live allocations; callers own the stack discipline.
//
// Every method takes the per-instance mutex for its full duration,
// including the time spent zeroing on Alloc and running the destroy
// callback on Pop. Calls are fully linearized.
//
// All unsafe address math of the module lives here. The public package
// wraps Flat with typed, checked entry points.
type Flat struct {
	mu      sync.Mutex
	buf     []byte
	release func([]byte) error // nil for heap-backed buffers
	offset  uintptr
	closed  bool

	strict bool
	shadow []record

	bytesPadded uint64
	peakOffset  uintptr
	totalAllocs uint64
	totalFrees  uint64
	totalResets uint64
}

// NewFlat creates a Flat over buf. The buffer is exclusively owned by the
// arena from this point on; release, if non-nil, is invoked exactly once
// by Close to return it to its origin (e.g. munmap).
//
// With strict enabled, Pop validates exact LIFO order against a shadow
// stack and panics on mismatch instead of silently corrupting the cursor.
func NewFlat(buf []byte, release func([]byte) error, strict bool) *Flat {
	return &Flat{
		buf:     buf,
		release: release,
		strict:  strict,
	}
}

// Alloc reserves size bytes at the next address aligned to align and
// returns a pointer to the zeroed region. align must be a power of two;
// this is assumed, not verified. On ErrArenaFull the cursor is untouched.
func (f *Flat) Alloc(size, align uintptr) (unsafe.Pointer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrClosed
	}

	aligned := (f.offset + align - 1) &^ (align - 1)
	if aligned+size > uintptr(len(f.buf)) {
		return nil, ErrArenaFull
	}

	p := unsafe.Add(unsafe.Pointer(unsafe.SliceData(f.buf)), aligned) //nolint:gosec // unsafe is required for arena implementation
	if size > 0 {
		clear(unsafe.Slice((*byte)(p), size))
	}

	f.bytesPadded += uint64(aligned - f.offset)
	f.offset = aligned + size
	if f.offset > f.peakOffset {
		f.peakOffset = f.offset
	}
	f.totalAllocs++

	if f.strict {
		f.shadow = append(f.shadow, record{offset: aligned, size: size})
	}

	return p, nil
}

// AllocArray reserves count contiguous elements of size bytes each,
// aligned to align, and returns a pointer to the zeroed first element.
// count <= 0 and counts whose total byte size would overflow the
// address-space representation fail with ErrInvalidCount; the cursor is
// untouched on any failure.
func (f *Flat) AllocArray(count int, size, align uintptr) (unsafe.Pointer, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	if size > 0 && uintptr(count) > uintptr(math.MaxInt)/size {
		return nil, ErrInvalidCount
	}

	return f.Alloc(uintptr(count)*size, align)
}

// Pop undoes the most recent allocation of size bytes at p. destroy, if
// non-nil, runs inside the critical section before the cursor moves; the
// caller uses it to clear the freed value.
//
// The cursor retreats to the address of the freed region, which reclaims
// any padding inserted in front of it. For the top of the stack this is
// the same as subtracting the allocation's size. The guard only ever
// moves the cursor backward within [0, capacity]; a Pop that cannot
// retreat is a silent no-op apart from destroy. Without strict mode
// nothing verifies that p is actually the top of the stack.
func (f *Flat) Pop(p unsafe.Pointer, size uintptr, destroy func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}

	if f.strict {
		f.checkTopLocked(p, size)
	}

	if destroy != nil {
		destroy()
	}

	base := uintptr(unsafe.Pointer(unsafe.SliceData(f.buf))) //nolint:gosec // unsafe is required for arena implementation
	if p != nil && uintptr(p) >= base {
		if off := uintptr(p) - base; off <= f.offset {
			f.offset = off
		}
	}
	f.totalFrees++
}

// checkTopLocked validates that (p, size) is exactly the most recent live
// allocation and pops its shadow record. Misuse is a programmer error, so
// it panics rather than returning an error.
func (f *Flat) checkTopLocked(p unsafe.Pointer, size uintptr) {
	if len(f.shadow) == 0 {
		panic("arena: free with no live allocations")
	}

	top := f.shadow[len(f.shadow)-1]
	off := uintptr(p) - uintptr(unsafe.Pointer(unsafe.SliceData(f.buf))) //nolint:gosec // unsafe is required for arena implementation
	if off != top.offset || size != top.size {
		panic(fmt.Sprintf("arena: out-of-order free: got offset=%d size=%d, top of stack is offset=%d size=%d",
			off, size, top.offset, top.size))
	}

	f.shadow = f.shadow[:len(f.shadow)-1]
}

// Reset moves the cursor back to zero unconditionally. It does not clear
// any values still in the buffer; the arena has no registry to walk.
func (f *Flat) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.offset = 0
	f.shadow = f.shadow[:0]
	f.totalResets++
}

// Remaining returns the number of bytes between the cursor and capacity.
func (f *Flat) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.buf) - int(f.offset)
}

// Capacity returns the immutable byte length of the buffer.
func (f *Flat) Capacity() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.buf)
}

// Offset returns the current cursor position.
func (f *Flat) Offset() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return int(f.offset)
}

// Stats returns a snapshot of the cursor and counters, taken under the lock.
func (f *Flat) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()

	return Stats{
		Capacity:    len(f.buf),
		Offset:      int(f.offset),
		BytesPadded: f.bytesPadded,
		PeakOffset:  int(f.peakOffset),
		TotalAllocs: f.totalAllocs,
		TotalFrees:  f.totalFrees,
		TotalResets: f.totalResets,
	}
}

// Close releases the buffer exactly once. All pointers handed out before
// Close become invalid. Close is idempotent; subsequent allocations fail
// with ErrClosed.
func (f *Flat) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	var err error
	if f.release != nil {
		err = f.release(f.buf)
	}
	f.buf = nil
	f.offset = 0
	f.shadow = nil

	return err
}
