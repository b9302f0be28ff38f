package testutil

import (
	"fmt"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Ints returns n pseudo-random values in [lo, hi).
func (r *RNG) Ints(n, lo, hi int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		out[i] = lo + r.rand.Intn(hi-lo)
	}
	return out
}

// OpKind is the kind of a generated operation.
type OpKind uint8

const (
	OpPut OpKind = iota
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpPut:
		return "put"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("OpKind(%d)", uint8(k))
	}
}

// Op is a single dictionary operation.
type Op struct {
	Kind  OpKind
	Key   int
	Value int
}

func (o Op) String() string {
	if o.Kind == OpDelete {
		return fmt.Sprintf("delete(%d)", o.Key)
	}
	return fmt.Sprintf("put(%d,%d)", o.Key, o.Value)
}

// Ops generates n operations over keys in [0, keySpace). Each operation is a
// delete with probability deleteRatio, otherwise a put with a value in
// [-1000, 1000).
func (r *RNG) Ops(n, keySpace int, deleteRatio float64) []Op {
	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make([]Op, n)
	for i := range ops {
		op := Op{Key: r.rand.Intn(keySpace)}
		if r.rand.Float64() < deleteRatio {
			op.Kind = OpDelete
		} else {
			op.Kind = OpPut
			op.Value = r.rand.Intn(2000) - 1000
		}
		ops[i] = op
	}
	return ops
}
