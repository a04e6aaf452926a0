// Package data holds the chart's data model: entries, the data sets that
// group them, and the collection the chart renders.
package data

import (
	"fmt"
	"math"
	"reflect"
)

// Epsilon is the tolerance used when comparing entry coordinates.
const Epsilon = 1e-5

// Entry is a single immutable point of a data set. Data is an opaque
// payload owned by the caller.
type Entry struct {
	X, Y float64
	Data any
}

// E builds an Entry without a payload.
func E(x, y float64) Entry {
	return Entry{X: x, Y: y}
}

// Equal reports whether e and o have the same coordinates within Epsilon and
// carry the identical payload. Payloads that cannot be compared are only
// considered equal when both are nil.
func (e Entry) Equal(o Entry) bool {
	if math.Abs(e.X-o.X) > Epsilon || math.Abs(e.Y-o.Y) > Epsilon {
		return false
	}
	return samePayload(e.Data, o.Data)
}

func samePayload(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// DistanceSq returns the squared distance between e and the value-space
// point (x, y).
func (e Entry) DistanceSq(x, y float64) float64 {
	dx, dy := e.X-x, e.Y-y
	return dx*dx + dy*dy
}

func (e Entry) String() string {
	return fmt.Sprintf("Entry(%g, %g)", e.X, e.Y)
}
