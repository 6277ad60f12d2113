package gridgraph

import (
	"errors"
	"math"
)

// ErrBadConnectivity indicates a Connectivity value other than Conn4 or Conn8.
var ErrBadConnectivity = errors.New("gridgraph: connectivity must be Conn4 or Conn8")

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = 4
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8 Connectivity = 8
)

// String returns "4" or "8" (or "invalid").
func (c Connectivity) String() string {
	switch c {
	case Conn4:
		return "4"
	case Conn8:
		return "8"
	default:
		return "invalid"
	}
}

// Step is one move from a cell to a neighbor.
type Step struct {
	DX, DY int     // column and row offsets
	Length float64 // geometric length in cell units: 1 or √2
}

// Diagonal is the length of a diagonal step in cell units.
const Diagonal = math.Sqrt2

// Precomputed neighborhoods, shared read-only by every caller.
var (
	conn4Steps = []Step{
		{0, -1, 1}, {1, 0, 1}, {0, 1, 1}, {-1, 0, 1},
	}
	conn8Steps = []Step{
		{0, -1, 1}, {1, -1, Diagonal}, {1, 0, 1}, {1, 1, Diagonal},
		{0, 1, 1}, {-1, 1, Diagonal}, {-1, 0, 1}, {-1, -1, Diagonal},
	}
)
