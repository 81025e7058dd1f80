package wildfire

// Topology resolves cell lookups at grid edges and owns the grid-wide
// pairwise exchange traversal. Exactly two variants exist; the choice is
// made at construction and never changes afterwards.
type Topology interface {
	// Cell resolves the cell at (x, y) or nil when no cell exists there.
	Cell(w *World, x, y int) *Cell
	// ExchangeAll runs one pairwise heat-exchange pass over the grid.
	ExchangeAll(w *World, dt float64)
}

// forwardOffsets lists the forward half of the Moore neighborhood: east,
// southeast, south and southwest. Visiting only these per cell covers each
// unordered neighbor pair exactly once over a full traversal.
var forwardOffsets = [4][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}}

// Bounded is the hard-edge topology: cells outside the array simply do not
// exist, so border cells have fewer neighbors.
type Bounded struct{}

// Cell returns nil for out-of-range coordinates.
func (Bounded) Cell(w *World, x, y int) *Cell {
	if x < 0 || x >= w.size.W || y < 0 || y >= w.size.H {
		return nil
	}
	return &w.cells[y*w.size.W+x]
}

// ExchangeAll pairs each cell with its in-range forward neighbors.
func (Bounded) ExchangeAll(w *World, dt float64) {
	for y := 0; y < w.size.H; y++ {
		for x := 0; x < w.size.W; x++ {
			a := &w.cells[y*w.size.W+x]
			for _, off := range forwardOffsets {
				nx, ny := x+off[0], y+off[1]
				if nx < 0 || nx >= w.size.W || ny < 0 || ny >= w.size.H {
					continue
				}
				w.exchangePair(dt, a, &w.cells[ny*w.size.W+nx])
			}
		}
	}
}

// Toroidal wraps coordinates modulo the grid dimensions; the world has no
// edges and every cell has all eight neighbors.
type Toroidal struct{}

// Cell wraps the coordinates onto the grid.
func (Toroidal) Cell(w *World, x, y int) *Cell {
	x = (x%w.size.W + w.size.W) % w.size.W
	y = (y%w.size.H + w.size.H) % w.size.H
	return &w.cells[y*w.size.W+x]
}

// ExchangeAll pairs each cell with all four forward neighbors, wrapping
// across the seams. The offsets are reduced modulo the grid first: on one-
// and two-wide grids distinct offsets wrap onto the same displacement, and
// a displacement that is its own inverse reaches a pair from both
// endpoints. Both collapses are deduplicated so each unordered pair still
// exchanges exactly once per pass.
func (Toroidal) ExchangeAll(w *World, dt float64) {
	gw, gh := w.size.W, w.size.H

	type displacement struct {
		dx, dy int
		halved bool
	}
	steps := make([]displacement, 0, len(forwardOffsets))
	for _, off := range forwardOffsets {
		dx := ((off[0] % gw) + gw) % gw
		dy := ((off[1] % gh) + gh) % gh
		if dx == 0 && dy == 0 {
			continue
		}
		seen := false
		for _, s := range steps {
			if s.dx == dx && s.dy == dy {
				seen = true
				break
			}
		}
		if seen {
			continue
		}
		halved := (2*dx)%gw == 0 && (2*dy)%gh == 0
		steps = append(steps, displacement{dx, dy, halved})
	}

	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			i := y*gw + x
			for _, s := range steps {
				j := ((y+s.dy)%gh)*gw + (x+s.dx)%gw
				// A halved displacement visits {i, j} from both ends;
				// keep only the lower-index end.
				if s.halved && j < i {
					continue
				}
				w.exchangePair(dt, &w.cells[i], &w.cells[j])
			}
		}
	}
}
