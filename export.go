package intdict

import (
	"fmt"

	"github.com/hupe1980/intdict/codec"
)

// Export encodes the entries ordered by ascending key with c.
// A nil codec uses codec.Default.
func (d *Dictionary) Export(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}

	entries, err := d.Entries()
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}

	return c.Marshal(entries)
}

// MarshalJSON encodes the entries ordered by ascending key as a JSON array of
// {"key":k,"value":v} objects.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	return d.Export(codec.JSON{})
}

// Import builds a dictionary from data produced by Export with the same codec.
// A nil codec uses codec.Default.
func Import(data []byte, c codec.Codec, optFns ...Option) (*Dictionary, error) {
	if c == nil {
		c = codec.Default
	}

	var entries []Entry
	if err := c.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
	}

	keys := make([]int, len(entries))
	values := make([]int, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
		values[i] = e.Value
	}

	return FromSlices(keys, values, optFns...)
}
