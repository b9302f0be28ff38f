// Package resource implements the memory budget shared by dictionary buffers.
//
// Every buffer allocation is reserved against a Controller before it is made
// and released when the buffer is replaced or the dictionary is closed. A
// refused reservation is how a dictionary observes an out-of-memory
// condition.
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 20, // 1MB limit
//	})
//
//	if err := rc.AcquireMemory(4096); err != nil {
//	    // ErrMemoryLimitExceeded - caller decides retry/backoff
//	}
//	defer rc.ReleaseMemory(4096)
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
