package intdict

import (
	"bufio"
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Entry is a key/value pair.
type Entry struct {
	Key   int `json:"key"`
	Value int `json:"value"`
}

// sortedKeys copies the entries into a transient dictionary, sorts the copy's
// key buffer in place and returns the sorted keys. The copy shares the
// budget, so building it can fail with ErrMemory.
func (d *Dictionary) sortedKeys() ([]int, error) {
	if d.closed || d.length == 0 {
		return nil, nil
	}

	tmp, err := newDictionary(d.opts.silent())
	if err != nil {
		return nil, err
	}
	defer tmp.Close()

	for i := 0; i < d.length; i++ {
		if err := tmp.Put(d.buf.Key(i), d.buf.Value(i)); err != nil {
			return nil, err
		}
	}

	keys := tmp.buf.Keys()[:tmp.length]
	slices.Sort(keys)

	return slices.Clone(keys), nil
}

func (d *Dictionary) sortedEntries() ([]Entry, error) {
	keys, err := d.sortedKeys()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Key: k, Value: d.Get(k)}
	}
	return entries, nil
}

// Entries returns all entries ordered by ascending key.
func (d *Dictionary) Entries() ([]Entry, error) {
	start := time.Now()
	entries, err := d.sortedEntries()
	d.opts.metricsObserver.OnRender(time.Since(start), len(entries), err)
	return entries, err
}

// Keys returns all keys in ascending order.
func (d *Dictionary) Keys() ([]int, error) {
	start := time.Now()
	keys, err := d.sortedKeys()
	d.opts.metricsObserver.OnRender(time.Since(start), len(keys), err)
	return keys, err
}

// All returns an iterator over the entries ordered by ascending key.
// The order is fixed when iteration starts; if the snapshot cannot be built
// the iterator yields nothing. Use Entries to observe the error.
func (d *Dictionary) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		entries, err := d.Entries()
		if err != nil {
			return
		}
		for _, e := range entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// WriteSorted writes the entries ordered by ascending key as
// {[k1:v1][k2:v2]...}. An empty dictionary is written as {}.
func (d *Dictionary) WriteSorted(w io.Writer) error {
	start := time.Now()
	n, err := d.writeSorted(w)
	d.opts.metricsObserver.OnRender(time.Since(start), n, err)
	return err
}

func (d *Dictionary) writeSorted(w io.Writer) (int, error) {
	entries, err := d.sortedEntries()
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 48)

	buf = append(buf, '{')
	for _, e := range entries {
		buf = append(buf, '[')
		buf = strconv.AppendInt(buf, int64(e.Key), 10)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(e.Value), 10)
		buf = append(buf, ']')
		if _, err := bw.Write(buf); err != nil {
			return 0, err
		}
		buf = buf[:0]
	}
	buf = append(buf, '}')
	if _, err := bw.Write(buf); err != nil {
		return 0, err
	}

	return len(entries), bw.Flush()
}

// RenderSorted returns the entries ordered by ascending key as
// {[k1:v1][k2:v2]...}. An empty dictionary renders as {}.
func (d *Dictionary) RenderSorted() (string, error) {
	var sb strings.Builder
	if err := d.WriteSorted(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
