package gridgraph

// Validate returns ErrBadConnectivity unless c is Conn4 or Conn8.
// Complexity: O(1).
func Validate(c Connectivity) error {
	if c != Conn4 && c != Conn8 {
		return ErrBadConnectivity
	}

	return nil
}

// Neighborhood returns the precomputed steps for c, clockwise from north.
// The slice is shared; callers must not modify it.
// An invalid c yields nil; call Validate first.
// Complexity: O(1).
func Neighborhood(c Connectivity) []Step {
	switch c {
	case Conn4:
		return conn4Steps
	case Conn8:
		return conn8Steps
	default:
		return nil
	}
}
