// Package arena implements the unsafe core of the memory arena: a
// fixed-capacity bump allocator over one contiguous buffer.
//
// # Model
//
// The arena owns exactly one buffer for its whole life and serves
// allocations by advancing a single cursor. There is no free-list, no
// growth, and no record of what is live; deallocation is a pure LIFO
// cursor retreat, guarded only against underflow. reset() is a thaw
// without destruct.
//
// # Concurrency
//
// A single per-instance mutex covers every operation for its full
// duration. Calls are linearized; the cursor is never torn.
//
// # Safety
//
// All raw pointer arithmetic of the module is contained in this package.
// The public memarena package exposes only typed, checked entry points
// on top of it.
package arena
