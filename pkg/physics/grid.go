// pkg/physics/grid.go
package physics

import (
	"context"
	"math"

	"github.com/opd-ai/go-physics2d/pkg/logging"
)

// SpatialGrid is a uniform-grid broad-phase index over body AABBs. The
// grid covers [0, width*cellSize) x [0, height*cellSize); positions
// outside that range are clamped to the border cells and reported on the
// diagnostic sink. Cell counts are fixed at construction.
//
// Partitions are insertion-ordered slices. Pair generation and the dedup
// tag depend on that ordering staying stable frame to frame, so the
// partitions must never be replaced with an unordered container.
type SpatialGrid struct {
	cellSize float64
	width    int
	height   int
	// cells is row-major, width*height partitions. A body appears in every
	// cell its AABB overlaps.
	cells [][]*PhysicsBody
	diag  *logging.Logger
}

// NewSpatialGrid creates a grid with the given cell size and cell counts.
// Diagnostics default to the package logger; use SetDiagnosticSink to
// route them elsewhere.
func NewSpatialGrid(cellSize float64, width, height int) *SpatialGrid {
	return &SpatialGrid{
		cellSize: cellSize,
		width:    width,
		height:   height,
		cells:    make([][]*PhysicsBody, width*height),
		diag:     logging.NewLogger(),
	}
}

// SetDiagnosticSink replaces the logger that out-of-range lookups are
// reported on. A nil sink is ignored.
func (g *SpatialGrid) SetDiagnosticSink(l *logging.Logger) {
	if l != nil {
		g.diag = l
	}
}

// worldToCell maps a world position to unclamped cell coordinates. An
// out-of-range position is reported and execution continues; the caller
// clamps the result.
func (g *SpatialGrid) worldToCell(v Vector2D) (int, int) {
	cx := int(math.Floor(v.X / g.cellSize))
	cy := int(math.Floor(v.Y / g.cellSize))
	if cx < 0 || cx >= g.width || cy < 0 || cy >= g.height {
		g.diag.Warn(context.Background(), "position outside grid bounds",
			"x", v.X, "y", v.Y, "cell_x", cx, "cell_y", cy)
	}
	return cx, cy
}

// cellsInAABB returns the row-major indices of every cell the box covers,
// after clamping the box's corner cells into the grid.
func (g *SpatialGrid) cellsInAABB(box AABB) []int {
	minX, minY := g.worldToCell(box.Min)
	maxX, maxY := g.worldToCell(box.Max)

	minX = clampInt(minX, 0, g.width-1)
	maxX = clampInt(maxX, 0, g.width-1)
	minY = clampInt(minY, 0, g.height-1)
	maxY = clampInt(maxY, 0, g.height-1)

	cells := make([]int, 0, (maxX-minX+1)*(maxY-minY+1))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			cells = append(cells, y*g.width+x)
		}
	}
	return cells
}

// AddBody inserts the body into every cell its AABB covers and marks it
// resident. Not idempotent: callers check InGrid first if they need that.
func (g *SpatialGrid) AddBody(b *PhysicsBody) {
	for _, idx := range g.cellsInAABB(b.Bounds) {
		g.cells[idx] = append(g.cells[idx], b)
	}
	b.inGrid = true
}

// RemoveBody erases the body from every cell its current AABB covers and
// clears the resident flag. Like AddBody, not idempotence-safe.
func (g *SpatialGrid) RemoveBody(b *PhysicsBody) {
	for _, idx := range g.cellsInAABB(b.Bounds) {
		g.cells[idx] = removeBodyRef(g.cells[idx], b)
	}
	b.inGrid = false
}

// QueryAABB returns the bodies resident in every cell the box covers,
// cell by cell. A body spanning several of the covered cells is returned
// once per cell it occupies; this multiplicity is intentional and the
// pair-generation dedup compensates for it.
func (g *SpatialGrid) QueryAABB(box AABB) []*PhysicsBody {
	var found []*PhysicsBody
	for _, idx := range g.cellsInAABB(box) {
		found = append(found, g.cells[idx]...)
	}
	return found
}

// GeneratePairs produces the frame's candidate collision pairs for the
// given body set. Bodies not yet resident are inserted first. The grid is
// then walked cell by cell in row-major order; each awake body found is
// pulled out of every partition it occupies and matched against a query
// of its AABB, so no later cell can yield it as a first member again.
// Sleeping bodies never initiate a query but stay resident and can still
// be found as the second member of a pair.
//
// Dedup is best-effort: a body remembers only its single most recent
// pairing partner, so duplicates separated by another match, or the same
// pair rediscovered from a different cell later in the walk, can slip
// through. Downstream phases tolerate the occasional duplicate.
func (g *SpatialGrid) GeneratePairs(bodies []*PhysicsBody) []Pair {
	for _, b := range bodies {
		b.lastPartner = NoBody
		if !b.inGrid {
			g.AddBody(b)
		}
	}

	var pairs []Pair
	for ci := range g.cells {
		// Snapshot the partition: processing a member rewrites the live
		// slice underneath us.
		members := append([]*PhysicsBody(nil), g.cells[ci]...)
		for _, a := range members {
			if a.sleeping {
				continue
			}
			if !a.inGrid {
				// Already pulled out via an earlier cell this pass.
				continue
			}
			g.RemoveBody(a)
			for _, b := range g.QueryAABB(a.Bounds) {
				if b.lastPartner == a.ID {
					continue
				}
				b.lastPartner = a.ID
				pairs = append(pairs, Pair{A: a, B: b})
			}
		}
	}
	return pairs
}

func removeBodyRef(cell []*PhysicsBody, b *PhysicsBody) []*PhysicsBody {
	for i, member := range cell {
		if member == b {
			return append(cell[:i], cell[i+1:]...)
		}
	}
	return cell
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
