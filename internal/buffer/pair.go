package buffer

import (
	"errors"
	"fmt"
	"math/bits"
)

// WordSize is the size in bytes of one stored key or value.
const WordSize = int64(bits.UintSize / 8)

// ErrInvalidCapacity is returned when a requested capacity cannot hold the
// live entries or is below one.
var ErrInvalidCapacity = errors.New("invalid capacity")

// Reserver reserves and releases bytes against a memory budget.
type Reserver interface {
	AcquireMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

type unlimited struct{}

func (unlimited) AcquireMemory(int64) error { return nil }
func (unlimited) ReleaseMemory(int64)       {}

// BytesFor returns the number of bytes reserved for a pair of the given capacity.
func BytesFor(capacity int) int64 {
	return 2 * int64(capacity) * WordSize
}

// Pair holds two equally sized int buffers in a single allocation.
type Pair struct {
	data     []int // keys in data[:capacity], values in data[capacity:]
	capacity int
	budget   Reserver
}

// New reserves and allocates a pair with the given capacity.
// A nil budget means unlimited.
func New(capacity int, budget Reserver) (*Pair, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if budget == nil {
		budget = unlimited{}
	}
	if err := budget.AcquireMemory(BytesFor(capacity)); err != nil {
		return nil, err
	}
	return &Pair{
		data:     make([]int, 2*capacity),
		capacity: capacity,
		budget:   budget,
	}, nil
}

// Cap returns the capacity shared by both buffers.
func (p *Pair) Cap() int {
	return p.capacity
}

// Keys returns the key buffer. Its length is Cap().
func (p *Pair) Keys() []int {
	return p.data[:p.capacity:p.capacity]
}

// Values returns the value buffer. Its length is Cap().
func (p *Pair) Values() []int {
	return p.data[p.capacity:]
}

// Set stores key and value at index i.
func (p *Pair) Set(i, key, value int) {
	p.data[i] = key
	p.data[p.capacity+i] = value
}

// SetValue overwrites the value at index i.
func (p *Pair) SetValue(i, value int) {
	p.data[p.capacity+i] = value
}

// Key returns the key at index i.
func (p *Pair) Key(i int) int {
	return p.data[i]
}

// Value returns the value at index i.
func (p *Pair) Value(i int) int {
	return p.data[p.capacity+i]
}

// Remove closes the gap at index i among the first live entries,
// preserving the order of the rest.
func (p *Pair) Remove(i, live int) {
	keys := p.data[:live]
	values := p.data[p.capacity : p.capacity+live]
	copy(keys[i:], keys[i+1:])
	copy(values[i:], values[i+1:])
	keys[live-1] = 0
	values[live-1] = 0
}

// Resize replaces the allocation with one of the given capacity, keeping the
// first live entries. On error the pair is unchanged.
func (p *Pair) Resize(capacity, live int) error {
	if capacity < 1 || live < 0 || live > capacity || live > p.capacity {
		return fmt.Errorf("%w: %d (live %d)", ErrInvalidCapacity, capacity, live)
	}
	if capacity == p.capacity {
		return nil
	}

	if err := p.budget.AcquireMemory(BytesFor(capacity)); err != nil {
		return err
	}

	data := make([]int, 2*capacity)
	copy(data[:live], p.data[:live])
	copy(data[capacity:capacity+live], p.data[p.capacity:p.capacity+live])

	p.budget.ReleaseMemory(BytesFor(p.capacity))
	p.data = data
	p.capacity = capacity

	return nil
}

// Release returns the reservation to the budget. The pair must not be used
// afterwards; calling Release again is a no-op.
func (p *Pair) Release() {
	if p.data == nil {
		return
	}
	p.budget.ReleaseMemory(BytesFor(p.capacity))
	p.data = nil
	p.capacity = 0
}
