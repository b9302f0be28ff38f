// Package testutil provides testing utilities for intdict.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and generators for random
// put/delete workloads.
//
// # Random Workloads
//
//	rng := testutil.NewRNG(seed)
//	ops := rng.Ops(1000, 64, 0.4) // 1000 ops over keys [0, 64), 40% deletes
//	for _, op := range ops {
//	    switch op.Kind {
//	    case testutil.OpPut:
//	        _ = d.Put(op.Key, op.Value)
//	    case testutil.OpDelete:
//	        _ = d.Delete(op.Key)
//	    }
//	}
package testutil
