// Package mmap provides anonymous memory mappings for off-heap allocation.
//
// # Overview
//
// MapAnon() creates read-write anonymous mappings outside the Go heap.
// The arena uses them for its backing buffer: the kernel demand-pages the
// region, the garbage collector never scans it, and releasing it is a
// single munmap.
//
// # Usage
//
//	m, err := mmap.MapAnon(size)
//	if err != nil { ... }
//	defer m.Close()
//
//	buf := m.Bytes()
//
//	// Provide kernel hints for access patterns
//	m.Advise(mmap.AccessSequential)
//
// # Platform Support
//
// The package provides a unified API across platforms:
//
//   - Unix (Linux, macOS, BSD): Uses mmap(2) with madvise(2) for access hints
//   - Windows: Uses VirtualAlloc/VirtualFree (madvise is a no-op)
//
// # Thread Safety
//
// Mapping is safe for concurrent read access. The Close() method is
// idempotent and protected by atomic operations. However, callers must
// ensure no goroutines access Bytes() after Close() returns.
package mmap
