package game

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// directions in the order used both for the neighbours and for the edges:
// left, up, right, down.
var directions = [4]Cell{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}

// NextCell returns the next cell the matrix grows into, coming from the last grown cell.
//
// It picks uniformly among the free orthogonal neighbours of from. When all of them are
// taken, it walks in a straight line towards the nearest edge, skipping occupied cells,
// and returns the first free one. The walk cannot get stuck while the grid has a free
// cell; on a full grid it returns an error wrapping ErrInvariantViolation.
func NextCell(g *Grid, from Cell, rng *rand.Rand) (Cell, error) {
	var free [4]Cell
	n := 0
	for _, d := range directions {
		c := from.Add(d)
		if g.InBounds(c) && !g.Occupied(c) {
			free[n] = c
			n++
		}
	}
	if n > 0 {
		return free[rng.IntN(n)], nil
	}

	// Boxed in: head for the nearest edge.
	distances := [4]int{from.X, from.Y, g.Cols() - 1 - from.X, g.Rows() - 1 - from.Y}
	order := []int{0, 1, 2, 3}
	sort.SliceStable(order, func(i, j int) bool { return distances[order[i]] < distances[order[j]] })
	for _, dir := range order {
		if c, ok := walkStraight(g, from, directions[dir]); ok {
			return c, nil
		}
	}

	// Only reachable for occupancy patterns the growth never produces: every straight
	// line is blocked up to the border. Take the closest free cell anywhere.
	if c, ok := closestFree(g, from); ok {
		return c, nil
	}
	return Cell{}, fmt.Errorf("%w: no free cell left in the %dx%d grid", ErrInvariantViolation, g.Cols(), g.Rows())
}

func walkStraight(g *Grid, from, dir Cell) (Cell, bool) {
	for c := from.Add(dir); g.InBounds(c); c = c.Add(dir) {
		if !g.Occupied(c) {
			return c, true
		}
	}
	return Cell{}, false
}

func closestFree(g *Grid, from Cell) (Cell, bool) {
	best, bestDist := Cell{}, -1
	for x := range g.Cols() {
		for y := range g.Rows() {
			c := Cell{x, y}
			if g.Occupied(c) {
				continue
			}
			dist := abs(x-from.X) + abs(y-from.Y)
			if bestDist < 0 || dist < bestDist {
				best, bestDist = c, dist
			}
		}
	}
	return best, bestDist >= 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
