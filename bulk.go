package intdict

import "fmt"

// FromSlices builds a dictionary by putting keys[i], values[i] in order.
// Later duplicates overwrite earlier ones.
//
// Construction stops at the first failing Put: the partial dictionary is
// closed and the error is returned with the index of the failing pair.
func FromSlices(keys, values []int, optFns ...Option) (*Dictionary, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, len(keys), len(values))
	}

	d, err := New(optFns...)
	if err != nil {
		return nil, err
	}

	for i, k := range keys {
		if err := d.Put(k, values[i]); err != nil {
			err = fmt.Errorf("pair %d: %w", i, err)
			d.opts.logger.LogBuild(len(keys), d.Len(), err)
			_ = d.Close()
			return nil, err
		}
	}

	d.opts.logger.LogBuild(len(keys), d.Len(), nil)

	return d, nil
}
