// Package costdist implements the accumulated cost-distance transform: a
// multi-source Dijkstra over the grid graph of a friction raster, bounded by
// a maximum accumulated cost.
//
// Notes on implementation choices:
//
//   - Every valid source cell seeds the heap at cost 0; there is no virtual super-source.
//   - Cells with invalid or non-positive/NaN/Inf friction are never seeded,
//     finalized or relaxed into.
//   - Relaxations that would exceed MaxCost are dropped, so nothing beyond the
//     bound enters the heap.
//   - We use a "lazy" decrease-key strategy: pushing duplicates into the heap
//     and ignoring stale entries once their cell is finalized.
package costdist

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/costdist/gridgraph"
	"github.com/katalvlaran/costdist/raster"
)

// Accumulate computes the accumulated minimum cost from any source cell to
// every cell of friction.
//
// Returns a grid of the same shape as friction. Reached cells hold their
// minimum accumulated cost (sources hold exactly 0); unreached cells (beyond
// MaxCost, isolated by impassable cells, or impassable themselves) are invalid.
//
// Preconditions and validation (in order):
//  1. friction and sources must be non-nil (ErrNilGrid).
//  2. Options must be sane (ErrInvalidArgument).
//  3. friction and sources must share a shape (ErrDimensionMismatch).
//
// An empty source mask is not an error: the result is entirely unreached.
//
// Complexity:
//
//   - Time:  O(N log N), N = valid friction cells.
//   - Space: O(W×H).
func Accumulate(friction *raster.Grid[float64], sources *raster.Grid[bool], opts ...Option) (*raster.Grid[float64], error) {
	out, _, err := AccumulateWithStats(friction, sources, opts...)

	return out, err
}

// AccumulateWithStats is Accumulate that also reports counters about the run.
func AccumulateWithStats(friction *raster.Grid[float64], sources *raster.Grid[bool], opts ...Option) (*raster.Grid[float64], Stats, error) {
	// 1) Validate grids are present.
	if friction == nil || sources == nil {
		return nil, Stats{}, ErrNilGrid
	}

	// 2) Build and validate Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, Stats{}, err
	}

	// 3) Validate shapes agree.
	if !friction.SameShape(sources) {
		return nil, Stats{}, fmt.Errorf("%w: friction %dx%d, sources %dx%d", ErrDimensionMismatch,
			friction.Width(), friction.Height(), sources.Width(), sources.Height())
	}

	// 4) Prepare per-call state and run.
	n := friction.Len()
	r := &runner{
		friction:  friction,
		options:   cfg,
		cost:      make([]float64, n),
		finalized: make([]bool, n),
		pq:        make(cellPQ, 0, 64),
		steps:     gridgraph.Neighborhood(cfg.Connectivity),
	}
	log := cfg.Logger
	if log == nil {
		log = Logger()
	}

	r.init(sources)
	log.Debug("costdist: accumulate start",
		"width", friction.Width(), "height", friction.Height(),
		"seeds", r.stats.Seeds, "max_cost", cfg.MaxCost,
		"connectivity", cfg.Connectivity.String(), "cell_size", cfg.CellSize)

	if err := r.process(); err != nil {
		log.Warn("costdist: accumulate aborted", "error", err, "finalized", r.stats.Finalized)
		return nil, r.stats, err
	}

	// 5) Materialize the output grid: finalized cells are valid.
	out, _ := raster.New[float64](friction.Width(), friction.Height())
	for i, done := range r.finalized {
		if done {
			out.SetAt(i, r.cost[i])
		}
	}

	log.Debug("costdist: accumulate done",
		"finalized", r.stats.Finalized, "pushes", r.stats.Pushes, "max_reached", r.stats.MaxReached)

	return out, r.stats, nil
}

// runner holds the mutable state for a single Accumulate execution.
type runner struct {
	friction  *raster.Grid[float64] // input friction; read-only
	options   Options               // validated configuration
	cost      []float64             // tentative cost per cell; +Inf = unreached
	finalized []bool                // cost[i] is final
	pq        cellPQ                // min-heap of tentative costs
	steps     []gridgraph.Step      // neighborhood for the chosen connectivity
	stats     Stats
}

// init sets every cost to +Inf and pushes each passable source at cost 0.
func (r *runner) init(sources *raster.Grid[bool]) {
	for i := range r.cost {
		r.cost[i] = math.Inf(1)
	}
	heap.Init(&r.pq)

	for i := 0; i < sources.Len(); i++ {
		src, ok := sources.At(i)
		if !ok || !src {
			continue
		}
		// A source on an impassable cell is an obstacle like any other.
		if !r.passable(i) {
			continue
		}
		r.cost[i] = 0
		r.push(i, 0)
		r.stats.Seeds++
	}
}

// process is the core loop: extract the cheapest unfinalized cell, finalize
// it and relax its neighbors, until the heap empties or the bound is passed.
func (r *runner) process() error {
	ctx := r.options.Ctx
	pops := 0
	for r.pq.Len() > 0 {
		// 1) Periodically honour cancellation.
		pops++
		if pops%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("costdist: cancelled after %d cells: %w", r.stats.Finalized, err)
			}
		}

		// 2) Pop the smallest tentative cost.
		item := heap.Pop(&r.pq).(cellItem)
		u := item.idx

		// 3) Skip stale entries of already finalized cells.
		if r.finalized[u] {
			continue
		}

		// 4) Past the bound nothing further can be finalized.
		if item.cost > r.options.MaxCost {
			break
		}

		// 5) Finalize and relax.
		r.finalized[u] = true
		r.stats.Finalized++
		if item.cost > r.stats.MaxReached {
			r.stats.MaxReached = item.cost
		}
		r.relax(u)
	}

	return nil
}

// relax tries to improve every passable neighbor of the finalized cell u.
// Edge cost is the mean friction of both cells times the step length.
func (r *runner) relax(u int) {
	fu, _ := r.friction.At(u)
	ux, uy := r.friction.Coordinate(u)
	base := r.cost[u]

	for _, s := range r.steps {
		vx, vy := ux+s.DX, uy+s.DY
		if !r.friction.InBounds(vx, vy) {
			continue
		}
		v := r.friction.Index(vx, vy)
		if r.finalized[v] {
			continue
		}
		if !r.passable(v) {
			continue // impassable: no edge terminates here
		}
		fv, _ := r.friction.At(v)

		newCost := base + 0.5*(fu+fv)*s.Length*r.options.CellSize
		if newCost > r.options.MaxCost || newCost >= r.cost[v] {
			continue
		}
		r.cost[v] = newCost
		r.push(v, newCost)
	}
}

// passable reports whether cell i can be entered: its friction must be valid
// and finite, strictly positive. Hand-built grids may hold 0, negative or NaN
// values in valid cells; those are obstacles too.
func (r *runner) passable(i int) bool {
	f, ok := r.friction.At(i)
	return ok && raster.IsPassable(f)
}

// push adds a heap entry and counts it.
func (r *runner) push(idx int, cost float64) {
	heap.Push(&r.pq, cellItem{idx: idx, cost: cost})
	r.stats.Pushes++
}

// cellItem is a (tentative cost, cell index) pair stored in the heap.
type cellItem struct {
	idx  int     // row-major cell index
	cost float64 // tentative accumulated cost
}

// cellPQ is a min-heap of cellItem ordered by cost ascending.
// Outdated entries stay in the heap and are skipped when popped.
type cellPQ []cellItem

// Len returns the number of items in the heap.
func (pq cellPQ) Len() int { return len(pq) }

// Less orders by smaller cost first.
func (pq cellPQ) Less(i, j int) bool { return pq[i].cost < pq[j].cost }

// Swap swaps two elements in the heap.
func (pq cellPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap. Called by heap.Push.
func (pq *cellPQ) Push(x any) { *pq = append(*pq, x.(cellItem)) }

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *cellPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
