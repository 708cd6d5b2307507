// Package resource implements a Controller for global memory budgets.
//
// A Controller tracks the bytes reserved by arena buffers and enforces an
// optional hard limit across all arenas that share it. Tracking uses a
// weighted semaphore for the limit and an atomic counter for usage.
// AcquireMemory is non-blocking and returns immediately with
// ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB budget
//	})
//	if err := rc.AcquireMemory(capacity); err != nil { ... }
//	defer rc.ReleaseMemory(capacity)
//
// A nil *Controller is valid and disables all tracking, so callers do not
// need to branch on whether a budget is configured.
package resource
