// Package capacity decides when a dictionary's buffers grow or shrink.
//
// A Policy is a pure function of the current capacity and logical length.
// It never allocates; the dictionary applies the returned Decision.
package capacity

import "fmt"

// Action is the kind of resize a Decision asks for.
type Action uint8

const (
	// None keeps the current capacity.
	None Action = iota
	// Grow enlarges the buffers.
	Grow
	// Shrink reduces the buffers.
	Shrink
)

func (a Action) String() string {
	switch a {
	case None:
		return "none"
	case Grow:
		return "grow"
	case Shrink:
		return "shrink"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Decision is the outcome of a Policy.
type Decision struct {
	Action   Action
	Capacity int // target capacity; equals the input capacity for None
}

// Policy determines the capacity a dictionary should have.
type Policy interface {
	// Plan is called after every structural mutation with the allocated
	// capacity and the logical length.
	Plan(capacity, length int) Decision
}

// Default returns the policy used when none is configured.
func Default() Policy {
	return Hysteresis{}
}

// HalfMinusOne doubles the capacity when the buffers are full and halves it
// when the length drops to exactly capacity/2 - 1.
//
// Capacity stays bounded under alternating put/delete, but at the boundary
// every put grows and every delete shrinks.
type HalfMinusOne struct{}

func (HalfMinusOne) Plan(capacity, length int) Decision {
	switch {
	case length == 0:
		return keep(capacity)
	case length >= capacity:
		return Decision{Action: Grow, Capacity: 2 * capacity}
	case capacity >= 2 && length == capacity/2-1:
		return Decision{Action: Shrink, Capacity: capacity / 2}
	default:
		return keep(capacity)
	}
}

// Hysteresis doubles the capacity when the buffers are full and halves it once
// occupancy falls to a quarter, provided the halved buffers still leave room
// for the next append without growing again.
type Hysteresis struct{}

func (Hysteresis) Plan(capacity, length int) Decision {
	switch {
	case length == 0:
		return keep(capacity)
	case length >= capacity:
		return Decision{Action: Grow, Capacity: 2 * capacity}
	case length <= capacity/4 && length+2 <= capacity/2:
		return Decision{Action: Shrink, Capacity: capacity / 2}
	default:
		return keep(capacity)
	}
}

func keep(capacity int) Decision {
	return Decision{Action: None, Capacity: capacity}
}
