// Package ring implements index arithmetic over an ordered ring of matches.
//
// Two traversal policies are supported. Bounded traversal clamps at either
// end of the ring, so stepping past an end returns the same boundary index;
// callers detect "no movement" to raise a boundary alert. Wrapping traversal
// cycles modulo the ring size.
//
// All functions require n >= 1.
package ring

// Bounded returns the index one step from i, clamped to [0, n-1].
func Bounded(i, n int, reverse bool) int {
	if reverse {
		i--
		if i < 0 {
			return 0
		}
		return i
	}
	i++
	if i >= n {
		return n - 1
	}
	return i
}

// Wrapped returns the index one step from i, cycling modulo n.
func Wrapped(i, n int, reverse bool) int {
	if reverse {
		i--
		if i < 0 {
			return n - 1
		}
		return i
	}
	i++
	if i >= n {
		return 0
	}
	return i
}

// Next dispatches to Wrapped or Bounded according to wrap.
func Next(i, n int, reverse, wrap bool) int {
	if wrap {
		return Wrapped(i, n, reverse)
	}
	return Bounded(i, n, reverse)
}

// AtBoundary reports whether a bounded step from i in the given direction
// would not move.
func AtBoundary(i, n int, reverse bool) bool {
	if reverse {
		return i == 0
	}
	return i == n-1
}

// Extreme returns the ring index a jump lands on: the last index when
// reverse, otherwise the first.
func Extreme(n int, reverse bool) int {
	if reverse {
		return n - 1
	}
	return 0
}
