// Package costdist defines core types and configuration options
// for the accumulated cost-distance transform over friction rasters.
//
// The transform computes, for every cell, the minimum total cost of
// travelling from any source cell to that cell, where crossing from a cell A
// to its neighbor B costs 0.5*(friction[A]+friction[B]) times the step length.
//
// Complexity:
//
//	– Time:  O(N log N)   where N = number of valid friction cells
//	   • Each cell is finalized at most once (N extractions).
//	   • Each relaxation may push into the heap (up to d·N pushes, d = 4 or 8).
//	– Space: O(N)
//	   • Cost and finalized arrays of length W×H.
//	   • Heap entries under lazy decrease-key.
//
// Options:
//
//	– MaxCost:      bound on accumulated cost; cells beyond it stay unreached.
//	– Connectivity: gridgraph.Conn4 or gridgraph.Conn8.
//	– CellSize:     ground distance of one cell step (multiplies every edge cost).
//	– Context:      checked periodically so very large rasters can be cancelled.
//	– Logger:       per-call override of the package logger.
//
// Errors (sentinel):
//
//	– ErrNilGrid            if friction or sources is nil.
//	– ErrDimensionMismatch  if friction and sources differ in shape.
//	– ErrInvalidArgument    if MaxCost <= 0, CellSize <= 0 or Connectivity is not 4|8.
package costdist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/costdist/gridgraph"
	"github.com/katalvlaran/costdist/raster"
)

// Sentinel errors returned by Accumulate.
var (
	// ErrNilGrid indicates that a nil friction grid or source mask was passed.
	ErrNilGrid = errors.New("costdist: grid is nil")

	// ErrDimensionMismatch indicates friction and sources have different shapes.
	// It wraps raster.ErrDimensionMismatch so either sentinel matches.
	ErrDimensionMismatch = fmt.Errorf("costdist: %w", raster.ErrDimensionMismatch)

	// ErrInvalidArgument indicates a nonsensical option value.
	ErrInvalidArgument = errors.New("costdist: invalid argument")
)

// DefaultMaxCost is the accumulated-cost bound used by the travel-time
// analyses this package was built for (minutes, with friction in min/m).
const DefaultMaxCost = 200000

// cancelCheckInterval is the number of heap pops between context checks.
const cancelCheckInterval = 4096

// Options configures Accumulate.
//
// MaxCost      – accumulated cost bound; must be > 0 and not NaN. Default DefaultMaxCost.
// Connectivity – gridgraph.Conn4 or gridgraph.Conn8. Default Conn8.
// CellSize     – ground length of an axis-aligned step. Must be > 0. Default 1.
// Ctx          – cancellation; default context.Background().
// Logger       – nil means the package logger (see SetLogger).
type Options struct {
	MaxCost      float64
	Connectivity gridgraph.Connectivity
	CellSize     float64
	Ctx          context.Context
	Logger       *slog.Logger
}

// Option represents a functional option for configuring Accumulate.
type Option func(*Options)

// WithMaxCost sets the accumulated-cost bound. Validation happens in
// Accumulate, which returns ErrInvalidArgument for max <= 0.
func WithMaxCost(max float64) Option {
	return func(o *Options) {
		o.MaxCost = max
	}
}

// WithConnectivity selects 4- or 8-connected moves.
func WithConnectivity(c gridgraph.Connectivity) Option {
	return func(o *Options) {
		o.Connectivity = c
	}
}

// WithCellSize sets the ground length of one cell step, so friction in
// cost-per-metre combined with a 30 m raster yields cost in the right units.
func WithCellSize(size float64) Option {
	return func(o *Options) {
		o.CellSize = size
	}
}

// WithContext attaches a cancellation context.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		o.Ctx = ctx
	}
}

// WithLogger overrides the package logger for one call.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// DefaultOptions returns an Options struct initialized with defaults.
//
// Defaults:
//   - MaxCost:      DefaultMaxCost.
//   - Connectivity: gridgraph.Conn8.
//   - CellSize:     1.
//   - Ctx:          context.Background().
//   - Logger:       nil (package logger).
func DefaultOptions() Options {
	return Options{
		MaxCost:      DefaultMaxCost,
		Connectivity: gridgraph.Conn8,
		CellSize:     1,
		Ctx:          context.Background(),
	}
}

// validate checks option invariants, returning ErrInvalidArgument with context.
func (o Options) validate() error {
	if !(o.MaxCost > 0) {
		return fmt.Errorf("%w: MaxCost must be > 0, got %v", ErrInvalidArgument, o.MaxCost)
	}
	if !(o.CellSize > 0) {
		return fmt.Errorf("%w: CellSize must be > 0, got %v", ErrInvalidArgument, o.CellSize)
	}
	if err := gridgraph.Validate(o.Connectivity); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if o.Ctx == nil {
		return fmt.Errorf("%w: nil context", ErrInvalidArgument)
	}

	return nil
}

// Stats reports what one Accumulate call did.
type Stats struct {
	Seeds      int     // valid source cells on passable friction
	Finalized  int     // cells whose cost became final (reached cells)
	Pushes     int     // heap pushes, including stale duplicates
	MaxReached float64 // largest finalized cost
}
