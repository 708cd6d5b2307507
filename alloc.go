package memarena

import (
	"math"
	"time"
	"unsafe"
)

// New allocates a zeroed T from the arena and returns a pointer into the
// arena's buffer. The address satisfies T's alignment. On ErrArenaFull
// the arena is unchanged.
//
// Generic functions cannot be methods, so allocation takes the arena as
// its first argument.
func New[T any](a *Arena) (*T, error) {
	var zero T
	size := unsafe.Sizeof(zero)

	start := time.Now()
	p, err := a.core.Alloc(size, unsafe.Alignof(zero))
	a.metrics.RecordAlloc(int(size), time.Since(start), err)
	a.logger.LogAlloc(int(size), err)
	if err != nil {
		return nil, translateError(err)
	}

	return (*T)(p), nil
}

// Free undoes the most recent New[T] call. The value is cleared to its
// zero state (dropping any references it holds) inside the arena's
// critical section, then the cursor retreats past it, reclaiming the
// region and any alignment padding in front of it.
//
// This is a deliberately weak contract: unless WithStrictChecks is set,
// nothing verifies that p really is the most recent live allocation —
// out-of-order frees silently corrupt the cursor. The guard only
// prevents the cursor from leaving [0, capacity]; a Free that cannot
// retreat is a no-op. Freeing nil is a no-op.
func Free[T any](a *Arena, p *T) {
	if p == nil {
		return
	}
	var zero T
	size := unsafe.Sizeof(zero)

	start := time.Now()
	a.core.Pop(unsafe.Pointer(p), size, func() {
		*p = zero
	})
	a.metrics.RecordFree(int(size), time.Since(start))
	a.logger.LogFree(int(size))
}

// MakeSlice allocates a zeroed []T of the given length from the arena.
// Elements are contiguous and the first element satisfies T's alignment.
//
// count <= 0 and counts whose byte size would overflow fail with
// ErrInvalidCount; a size that does not fit the remaining capacity fails
// with ErrArenaFull. Either way the arena is unchanged.
func MakeSlice[T any](a *Arena, count int) ([]T, error) {
	var zero T
	size := unsafe.Sizeof(zero)

	start := time.Now()
	p, err := a.core.AllocArray(count, size, unsafe.Alignof(zero))
	a.metrics.RecordAlloc(sliceBytes(count, size), time.Since(start), err)
	a.logger.LogAlloc(sliceBytes(count, size), err)
	if err != nil {
		return nil, translateError(err)
	}

	return unsafe.Slice((*T)(p), count), nil
}

// FreeSlice undoes the most recent MakeSlice[T] call. Elements are
// cleared in reverse index order inside the critical section, then the
// cursor retreats past the whole array under the same guard and weak
// contract as Free. Freeing an empty or nil slice is a no-op.
//
// s must be the exact slice returned by MakeSlice, not a reslice.
func FreeSlice[T any](a *Arena, s []T) {
	if len(s) == 0 {
		return
	}
	var zero T
	size := unsafe.Sizeof(zero)
	total := uintptr(len(s)) * size

	start := time.Now()
	a.core.Pop(unsafe.Pointer(unsafe.SliceData(s)), total, func() {
		for i := len(s) - 1; i >= 0; i-- {
			s[i] = zero
		}
	})
	a.metrics.RecordFree(int(total), time.Since(start))
	a.logger.LogFree(int(total))
}

// sliceBytes is the metric-reporting size of a slice request. Degenerate
// counts report zero; they never reach the cursor.
func sliceBytes(count int, size uintptr) int {
	if count <= 0 || size == 0 {
		return 0
	}
	if uintptr(count) > uintptr(math.MaxInt)/size {
		return 0
	}
	return count * int(size)
}
