// Package memarena provides a fixed-capacity, stack-discipline memory
// arena for Go.
//
// An Arena owns one contiguous buffer (an off-heap anonymous mapping by
// default) and serves typed allocations by advancing a single cursor.
// Deallocation is explicit and strictly last-in-first-out; Reset reclaims
// everything at once. There is no free-list, no interior reuse, and no
// growth.
//
// # Quick Start
//
//	a, err := memarena.NewArena(1 << 20)
//	if err != nil { ... }
//	defer a.Close()
//
//	p, err := memarena.New[Vertex](a)
//	if err != nil { ... }
//	p.X = 1
//
//	buf, err := memarena.MakeSlice[float32](a, 256)
//	if err != nil { ... }
//
//	memarena.FreeSlice(a, buf) // reverse order of allocation
//	memarena.Free(a, p)
//
// # Failure Model
//
// Allocations that do not fit return ErrArenaFull and leave the arena
// unchanged; degenerate slice counts return ErrInvalidCount. The only
// fatal condition is construction itself: if the backing buffer cannot
// be obtained, NewArena returns an error and no arena exists.
//
// # Caller Obligations
//
// The arena remembers only its cursor, not what is live. Frees must
// mirror allocations in exact reverse order; Reset must only run while
// nothing in the buffer still owns external resources. WithStrictChecks
// turns violations of the LIFO discipline into panics for debugging.
//
// # Concurrency
//
// Every operation holds the arena's single lock for its full duration,
// so arenas can be shared freely across goroutines at the cost of
// serialized allocation.
//
// # Key Features
//
//   - Off-heap buffers via anonymous mmap (no GC pressure), heap opt-in
//   - Generic typed API: New[T], Free[T], MakeSlice[T], FreeSlice[T]
//   - Correct per-type address alignment
//   - Optional strict LIFO validation for debug builds
//   - Global memory budgets via the resource package
//   - Structured logging (log/slog) and pluggable metrics
package memarena
