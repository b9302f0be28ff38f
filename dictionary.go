package intdict

import (
	"fmt"
	"time"

	"github.com/hupe1980/intdict/capacity"
	"github.com/hupe1980/intdict/internal/buffer"
)

const initialCapacity = 1

// Dictionary maps int keys to int values.
//
// Entries occupy the first Len() slots of a paired key/value buffer in
// insertion order. The zero value is not usable; create dictionaries with New
// or FromSlices.
type Dictionary struct {
	buf    *buffer.Pair
	length int
	opts   options
	closed bool
}

// New creates an empty dictionary with capacity 1.
//
// If the initial buffers cannot be reserved, New returns an error matching
// ErrAllocation and a nil dictionary.
func New(optFns ...Option) (*Dictionary, error) {
	return newDictionary(applyOptions(optFns))
}

func newDictionary(o options) (*Dictionary, error) {
	buf, err := buffer.New(initialCapacity, o.resources)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrAllocation, err)
		o.logger.Error("dictionary allocation failed", "error", err)
		return nil, err
	}

	return &Dictionary{
		buf:  buf,
		opts: o,
	}, nil
}

// Close releases the buffers. Further Put and Delete calls return ErrClosed
// and reads behave as on an empty dictionary. Closing twice returns ErrClosed.
func (d *Dictionary) Close() error {
	if d == nil {
		return nil
	}
	if d.closed {
		return ErrClosed
	}
	d.buf.Release()
	d.length = 0
	d.closed = true
	return nil
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return d.length
}

// Cap returns the allocated capacity shared by the key and value buffers.
func (d *Dictionary) Cap() int {
	return d.buf.Cap()
}

// Lookup returns the buffer index of key. The scan is linear in Len().
func (d *Dictionary) Lookup(key int) (int, bool) {
	if d.closed {
		return -1, false
	}
	for i, k := range d.buf.Keys()[:d.length] {
		if k == key {
			return i, true
		}
	}
	return -1, false
}

// Contains reports whether key is present.
func (d *Dictionary) Contains(key int) bool {
	_, ok := d.Lookup(key)
	return ok
}

// Get returns the value stored for key, or 0 if key is absent.
// A stored 0 and a missing key look the same; use Contains to tell them apart.
func (d *Dictionary) Get(key int) int {
	i, ok := d.Lookup(key)
	if !ok {
		return 0
	}
	return d.buf.Value(i)
}

// Put stores value under key. An existing key is updated in place; a new key
// is appended and may grow the buffers.
//
// A failed grow returns an error matching ErrMemory. If the entry had already
// been appended it is kept.
func (d *Dictionary) Put(key, value int) error {
	start := time.Now()
	inserted, err := d.put(key, value)
	d.opts.metricsObserver.OnPut(time.Since(start), inserted, err)
	d.opts.logger.LogPut(key, inserted, err)
	return err
}

func (d *Dictionary) put(key, value int) (bool, error) {
	if d.closed {
		return false, ErrClosed
	}

	if i, ok := d.Lookup(key); ok {
		d.buf.SetValue(i, value)
		return false, nil
	}

	if d.length >= d.buf.Cap() {
		// A previous grow failed and left no free slot.
		if err := d.manage("put"); err != nil {
			return false, err
		}
		if d.length >= d.buf.Cap() {
			return false, &ResizeError{
				Op:     "put",
				Action: capacity.None,
				From:   d.buf.Cap(),
				To:     d.buf.Cap(),
				cause:  errNoRoom,
			}
		}
	}

	d.buf.Set(d.length, key, value)
	d.length++

	return true, d.manage("put")
}

// Delete removes key, shifting the entries after it down by one.
// It returns ErrNotFound if key is absent. A failed shrink returns an error
// matching ErrMemory; the entry is removed regardless.
func (d *Dictionary) Delete(key int) error {
	start := time.Now()
	err := d.delete(key)
	d.opts.metricsObserver.OnDelete(time.Since(start), err)
	d.opts.logger.LogDelete(key, err)
	return err
}

func (d *Dictionary) delete(key int) error {
	if d.closed {
		return ErrClosed
	}

	i, ok := d.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, key)
	}

	d.buf.Remove(i, d.length)
	d.length--

	return d.manage("delete")
}

// manage applies the capacity policy's decision for the current length.
func (d *Dictionary) manage(op string) error {
	from := d.buf.Cap()
	decision := d.opts.policy.Plan(from, d.length)
	if decision.Action == capacity.None || decision.Capacity == from {
		return nil
	}

	var err error
	if rerr := d.buf.Resize(decision.Capacity, d.length); rerr != nil {
		err = &ResizeError{
			Op:     op,
			Action: decision.Action,
			From:   from,
			To:     decision.Capacity,
			cause:  rerr,
		}
	}

	d.opts.metricsObserver.OnResize(from, decision.Capacity, err)
	d.opts.logger.LogResize(op, from, decision.Capacity, err)

	return err
}
