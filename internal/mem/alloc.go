// Package mem provides memory allocation utilities.
package mem

import (
	"unsafe"
)

// Alignment is the byte alignment guaranteed for AllocAligned buffers
// (one cache line, and a multiple of every alignment the Go type system
// can require).
const Alignment = 64

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// The arena aligns allocations by offset into its buffer, so the buffer
// itself must start aligned; the Go allocator does not guarantee that for
// small byte slices.
//
// Note: This function allocates slightly more memory than requested to ensure
// alignment. The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	// Allocate size + alignment to ensure we can find an aligned offset
	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	// Calculate the offset to the first aligned byte
	ptr := unsafe.Pointer(unsafe.SliceData(buf)) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size)]
}
