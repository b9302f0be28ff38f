package intdict

import (
	"errors"
	"testing"

	"github.com/hupe1980/intdict/capacity"
	"github.com/hupe1980/intdict/internal/buffer"
	"github.com/hupe1980/intdict/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GrowthSequence(t *testing.T) {
	d := newTestDictionary(t)

	// Capacity doubles as soon as the buffers fill up.
	want := []int{2, 4, 4, 8, 8, 8, 8, 16}
	for i, c := range want {
		require.NoError(t, d.Put(i, i))
		assert.Equal(t, c, d.Cap(), "after %d puts", i+1)
		assert.Less(t, d.Len(), d.Cap())
	}
}

func TestManager_HalfMinusOne(t *testing.T) {
	d := newTestDictionary(t, WithCapacityPolicy(capacity.HalfMinusOne{}))

	for k := 0; k < 4; k++ {
		require.NoError(t, d.Put(k, k))
	}
	require.Equal(t, 8, d.Cap())

	// 4 -> 3 == 8/2-1 halves the buffers.
	require.NoError(t, d.Delete(0))
	assert.Equal(t, 4, d.Cap())

	// 3 -> 2: no rule applies.
	require.NoError(t, d.Delete(1))
	assert.Equal(t, 4, d.Cap())

	// 2 -> 1 == 4/2-1.
	require.NoError(t, d.Delete(2))
	assert.Equal(t, 2, d.Cap())

	// Empty: no-op.
	require.NoError(t, d.Delete(3))
	assert.Equal(t, 2, d.Cap())
	assert.Equal(t, 0, d.Len())
}

func TestManager_HysteresisShrink(t *testing.T) {
	d := newTestDictionary(t)

	for k := 0; k < 16; k++ {
		require.NoError(t, d.Put(k, k))
	}
	require.Equal(t, 32, d.Cap())

	caps := map[int]int{}
	for k := 0; k < 16; k++ {
		require.NoError(t, d.Delete(k))
		caps[d.Len()] = d.Cap()
	}

	assert.Equal(t, 32, caps[9])
	assert.Equal(t, 16, caps[8])
	assert.Equal(t, 8, caps[4])
	assert.Equal(t, 4, caps[2])
	assert.Equal(t, 4, caps[1])
	assert.Equal(t, 4, caps[0])
}

func TestManager_CapacityInvariant(t *testing.T) {
	for _, p := range []capacity.Policy{capacity.Hysteresis{}, capacity.HalfMinusOne{}} {
		d := newTestDictionary(t, WithCapacityPolicy(p))

		for k := 0; k < 100; k++ {
			require.NoError(t, d.Put(k, k))
			assert.GreaterOrEqual(t, d.Cap(), d.Len())
			assert.GreaterOrEqual(t, d.Cap(), 1)
		}
		for k := 0; k < 100; k++ {
			require.NoError(t, d.Delete(k))
			assert.GreaterOrEqual(t, d.Cap(), d.Len())
			assert.GreaterOrEqual(t, d.Cap(), 1)
		}
	}
}

// Alternating a single put and delete of the same key must not make the
// capacity climb.
func TestManager_NoOscillationGrowth(t *testing.T) {
	for _, p := range []capacity.Policy{capacity.Hysteresis{}, capacity.HalfMinusOne{}} {
		for prior := 0; prior <= 40; prior++ {
			d := newTestDictionary(t, WithCapacityPolicy(p))
			for k := 0; k < prior; k++ {
				require.NoError(t, d.Put(k, k))
			}

			maxCap := 0
			for i := 0; i < 200; i++ {
				require.NoError(t, d.Put(-1, i))
				require.NoError(t, d.Delete(-1))
				maxCap = max(maxCap, d.Cap())
			}

			assert.Equal(t, prior, d.Len())
			assert.LessOrEqual(t, maxCap, 2*max(prior+1, 1)*2, "policy %T prior %d", p, prior)
		}
	}
}

func TestManager_HysteresisStableAfterFirstCycle(t *testing.T) {
	for prior := 0; prior <= 64; prior++ {
		metrics := &BasicMetricsObserver{}
		d := newTestDictionary(t, WithMetricsObserver(metrics))
		for k := 0; k < prior; k++ {
			require.NoError(t, d.Put(k, k))
		}

		require.NoError(t, d.Put(-1, 0))
		require.NoError(t, d.Delete(-1))
		before := metrics.GetStats().Resizes()

		for i := 0; i < 1000; i++ {
			require.NoError(t, d.Put(-1, i))
			require.NoError(t, d.Delete(-1))
		}

		assert.Equal(t, before, metrics.GetStats().Resizes(), "prior %d", prior)
	}
}

func TestManager_HalfMinusOneReallocatesAtBoundary(t *testing.T) {
	metrics := &BasicMetricsObserver{}
	d := newTestDictionary(t, WithCapacityPolicy(capacity.HalfMinusOne{}), WithMetricsObserver(metrics))

	for k := 0; k < 3; k++ {
		require.NoError(t, d.Put(k, k))
	}
	require.Equal(t, 4, d.Cap())
	before := metrics.GetStats()

	for i := 0; i < 10; i++ {
		require.NoError(t, d.Put(-1, i))
		assert.Equal(t, 8, d.Cap())
		require.NoError(t, d.Delete(-1))
		assert.Equal(t, 4, d.Cap())
	}

	after := metrics.GetStats()
	assert.Equal(t, int64(10), after.GrowCount-before.GrowCount)
	assert.Equal(t, int64(10), after.ShrinkCount-before.ShrinkCount)
}

func TestBudget_AllocationError(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: buffer.BytesFor(1) - 1})

	d, err := New(WithResourceController(rc))
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
}

func TestBudget_FailedGrowKeepsEntry(t *testing.T) {
	// Capacity 1 and 2 fit side by side, 2 and 4 do not.
	rc := resource.NewController(resource.Config{MemoryLimitBytes: buffer.BytesFor(3)})
	d := newTestDictionary(t, WithResourceController(rc))

	require.NoError(t, d.Put(1, 10))
	require.Equal(t, 2, d.Cap())

	err := d.Put(2, 20)
	require.ErrorIs(t, err, ErrMemory)

	var re *ResizeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "put", re.Op)
	assert.Equal(t, capacity.Grow, re.Action)
	assert.Equal(t, 2, re.From)
	assert.Equal(t, 4, re.To)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)

	// The entry stays; the buffers are full but not overflowed.
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, 2, d.Cap())
	assert.Equal(t, 20, d.Get(2))

	// Updates need no room.
	require.NoError(t, d.Put(2, 21))
	assert.Equal(t, 21, d.Get(2))

	// A new key cannot be written without a successful grow.
	err = d.Put(3, 30)
	assert.ErrorIs(t, err, ErrMemory)
	assert.False(t, d.Contains(3))
	assert.Equal(t, 2, d.Len())
	assert.LessOrEqual(t, d.Len(), d.Cap())
}

func TestBudget_RetryAfterRelease(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: buffer.BytesFor(6)})
	d := newTestDictionary(t, WithResourceController(rc))

	// Another consumer holds part of the budget.
	require.NoError(t, rc.AcquireMemory(buffer.BytesFor(3)))

	require.NoError(t, d.Put(1, 10))
	assert.ErrorIs(t, d.Put(2, 20), ErrMemory)
	assert.ErrorIs(t, d.Put(3, 30), ErrMemory)
	assert.Equal(t, 2, d.Len())

	rc.ReleaseMemory(buffer.BytesFor(3))

	require.NoError(t, d.Put(3, 30))
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 4, d.Cap())
	assert.Equal(t, 10, d.Get(1))
	assert.Equal(t, 20, d.Get(2))
	assert.Equal(t, 30, d.Get(3))
}

func TestBudget_FailedShrinkKeepsDelete(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: buffer.BytesFor(16)})
	d := newTestDictionary(t, WithResourceController(rc))

	for k := 0; k < 4; k++ {
		require.NoError(t, d.Put(k, k))
	}
	require.Equal(t, 8, d.Cap())

	// Leave less headroom than the 4-slot replacement needs.
	require.NoError(t, rc.AcquireMemory(buffer.BytesFor(16)-rc.MemoryUsage()-buffer.BytesFor(3)))

	require.NoError(t, d.Delete(0))
	err := d.Delete(1)
	require.ErrorIs(t, err, ErrMemory)

	var re *ResizeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "delete", re.Op)
	assert.Equal(t, capacity.Shrink, re.Action)

	assert.Equal(t, 2, d.Len())
	assert.False(t, d.Contains(1))
	assert.Equal(t, 8, d.Cap())
	assert.Equal(t, 2, d.Get(2))
	assert.Equal(t, 3, d.Get(3))
}

func TestBudget_CloseReleases(t *testing.T) {
	rc := resource.NewController(resource.Config{})

	d, err := New(WithResourceController(rc))
	require.NoError(t, err)
	for k := 0; k < 10; k++ {
		require.NoError(t, d.Put(k, k))
	}
	assert.Equal(t, buffer.BytesFor(d.Cap()), rc.MemoryUsage())

	require.NoError(t, d.Close())
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestBudget_SharedBetweenDictionaries(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: buffer.BytesFor(12)})

	a := newTestDictionary(t, WithResourceController(rc))
	b := newTestDictionary(t, WithResourceController(rc))

	for k := 0; k < 3; k++ {
		require.NoError(t, a.Put(k, k))
	}
	require.Equal(t, 4, a.Cap())

	// b can reach capacity 4 but not 8 while a holds 4 slots.
	for k := 0; k < 3; k++ {
		require.NoError(t, b.Put(k, k))
	}
	assert.ErrorIs(t, b.Put(3, 3), ErrMemory)

	require.NoError(t, a.Close())
	require.NoError(t, b.Put(4, 4))
	assert.Equal(t, 8, b.Cap())
}

type fixedPolicy struct{}

func (fixedPolicy) Plan(c, _ int) capacity.Decision {
	return capacity.Decision{Action: capacity.None, Capacity: c}
}

func TestManager_PolicyWithoutRoom(t *testing.T) {
	d := newTestDictionary(t, WithCapacityPolicy(fixedPolicy{}))

	require.NoError(t, d.Put(1, 10))

	err := d.Put(2, 20)
	assert.ErrorIs(t, err, ErrMemory)
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, 1, d.Cap())
}
