package game

import "fmt"

// Cell is a position in the matrix grid: X is the column, Y the row.
type Cell struct {
	X, Y int
}

// Add returns the cell displaced by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{c.X + d.X, c.Y + d.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Unit is a grown matrix cell.
type Unit struct {
	Color string
	Order int // Growth order, starting at 0 for the seed.
}

// Grid is the occupancy grid of the matrix. It keeps the creation order of the
// occupied cells, so they can be removed in the order they appeared.
type Grid struct {
	cols, rows int
	units      [][]*Unit // Indexed [x][y].
	order      []Cell
	grown      int
}

// NewGrid creates an empty cols x rows grid.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{cols: cols, rows: rows}
	g.Reset()
	return g
}

// Reset empties the grid.
func (g *Grid) Reset() {
	g.units = make([][]*Unit, g.cols)
	for x := range g.units {
		g.units[x] = make([]*Unit, g.rows)
	}
	g.order = nil
	g.grown = 0
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// Len returns the number of occupied cells.
func (g *Grid) Len() int { return len(g.order) }

// Center returns the seed cell of the growth.
func (g *Grid) Center() Cell {
	return Cell{g.cols / 2, g.rows / 2}
}

// InBounds reports whether c is inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.cols && c.Y < g.rows
}

// OnEdge reports whether c is on (or beyond) the outer boundary of the grid.
func (g *Grid) OnEdge(c Cell) bool {
	return c.X <= 0 || c.Y <= 0 || c.X >= g.cols-1 || c.Y >= g.rows-1
}

// Occupied reports whether c holds a unit. Out of bounds cells are never occupied.
func (g *Grid) Occupied(c Cell) bool {
	return g.InBounds(c) && g.units[c.X][c.Y] != nil
}

// At returns the unit at c, or nil.
func (g *Grid) At(c Cell) *Unit {
	if !g.InBounds(c) {
		return nil
	}
	return g.units[c.X][c.Y]
}

// Occupy places a new unit of the given color at c.
func (g *Grid) Occupy(c Cell, color string) (*Unit, error) {
	if !g.InBounds(c) {
		return nil, fmt.Errorf("%w: cell %s outside of %dx%d grid", ErrInvariantViolation, c, g.cols, g.rows)
	}
	if g.units[c.X][c.Y] != nil {
		return nil, fmt.Errorf("%w: cell %s already occupied", ErrInvariantViolation, c)
	}
	u := &Unit{Color: color, Order: g.grown}
	g.grown++
	g.units[c.X][c.Y] = u
	g.order = append(g.order, c)
	return u, nil
}

// PopOldest removes the oldest unit still in the grid.
func (g *Grid) PopOldest() (Cell, bool) {
	if len(g.order) == 0 {
		return Cell{}, false
	}
	c := g.order[0]
	g.order = g.order[1:]
	g.units[c.X][c.Y] = nil
	return c, true
}

// Cells returns the occupied cells in creation order.
func (g *Grid) Cells() []Cell {
	return append([]Cell(nil), g.order...)
}
