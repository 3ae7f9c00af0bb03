// Package capacity maps a table number to the party sizes it seats.
package capacity

// Limits is an inclusive guest-count range.
type Limits struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// GuestLimits returns the seating band of a table. Unknown numbers seat one
// guest.
func GuestLimits(tableNumber int) Limits {
	switch {
	case tableNumber == 1 || tableNumber == 8:
		return Limits{Min: 1, Max: 8}
	case tableNumber == 2:
		return Limits{Min: 1, Max: 6}
	case tableNumber >= 3 && tableNumber <= 7:
		return Limits{Min: 1, Max: 4}
	case tableNumber >= 9 && tableNumber <= 13:
		return Limits{Min: 1, Max: 2}
	default:
		return Limits{Min: 1, Max: 1}
	}
}

// Clamp pulls n into [Min, Max].
func (l Limits) Clamp(n int) int {
	if n < l.Min {
		return l.Min
	}
	if n > l.Max {
		return l.Max
	}
	return n
}

// Contains reports whether n is inside the range.
func (l Limits) Contains(n int) bool {
	return n >= l.Min && n <= l.Max
}
