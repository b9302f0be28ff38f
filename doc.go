// Package intdict provides a dictionary of int keys to int values stored in
// two parallel, resizable buffers.
//
// The dictionary deliberately does not hash: lookups scan the occupied part of
// the key buffer linearly, entries are kept in insertion order, and ordering by
// key is computed on demand. What it does manage carefully is capacity: the
// buffers grow when they fill up and shrink when occupancy drops, according to
// a pluggable capacity.Policy, and every allocation can be charged against a
// shared memory budget.
//
// # Quick Start
//
//	d, err := intdict.New()
//	if err != nil {
//	    return err
//	}
//	defer d.Close()
//
//	_ = d.Put(3, 30)
//	_ = d.Put(1, 10)
//	_ = d.Put(2, 20)
//
//	s, _ := d.RenderSorted() // {[1:10][2:20][3:30]}
//
// # Missing Keys
//
// Get returns 0 for a key that is not present, which is indistinguishable from
// a key stored with the value 0. Use Contains or Lookup when the difference
// matters.
//
// # Capacity Management
//
// A new dictionary has capacity 1. After every insert and delete the configured
// capacity.Policy is asked for a decision:
//
//   - capacity.Hysteresis (default): double when full, halve once occupancy
//     falls to a quarter and the halved buffers keep a free slot.
//   - capacity.HalfMinusOne: double when full, halve when the length drops to
//     exactly capacity/2 - 1.
//
// Keys and values share one allocation, so a resize changes both buffers or
// neither.
//
// # Memory Budget
//
// With WithResourceController every allocation is reserved before it is made.
// When a reservation is refused the operation returns an error matching
// ErrMemory (a *ResizeError). The mutation that triggered the resize stays
// applied: a Put that filled the last slot keeps its entry, and the next Put of
// a new key retries the grow before writing anything.
//
// # Thread Safety
//
// Dictionary is not safe for concurrent use. Wrap it with NewSynchronized when
// it must be shared between goroutines. A resource.Controller may be shared
// freely.
package intdict
