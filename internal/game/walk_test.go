package game

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func isNeighbour(a, b Cell) bool {
	return abs(a.X-b.X)+abs(a.Y-b.Y) == 1
}

func TestNextCell(t *testing.T) {
	t.Run("neighbour", func(t *testing.T) {
		for seed := range uint64(50) {
			rng := rand.New(rand.NewPCG(seed, seed))
			g := NewGrid(11, 11)
			center := g.Center()
			if _, err := g.Occupy(center, "green"); err != nil {
				t.Fatal(err)
			}
			next, err := NextCell(g, center, rng)
			if err != nil {
				t.Fatalf("NextCell failed: %v", err)
			}
			if !isNeighbour(center, next) {
				t.Fatalf("Expected a neighbour of %s, got %s", center, next)
			}
		}
	})

	t.Run("boxed-in", func(t *testing.T) {
		g := NewGrid(10, 7)
		from := Cell{5, 3}
		for _, c := range []Cell{from, {4, 3}, {6, 3}, {5, 2}, {5, 4}} {
			if _, err := g.Occupy(c, "green"); err != nil {
				t.Fatal(err)
			}
		}
		// Distances: left 5, up 3, right 4, down 3: up wins the tie.
		next, err := NextCell(g, from, rand.New(rand.NewPCG(1, 1)))
		if err != nil {
			t.Fatalf("NextCell failed: %v", err)
		}
		if next != (Cell{5, 1}) {
			t.Errorf("Expected (5,1), got %s", next)
		}
	})

	t.Run("closest-free", func(t *testing.T) {
		g := NewGrid(5, 5)
		for i := range 5 {
			g.Occupy(Cell{i, 2}, "green")
			if i != 2 {
				g.Occupy(Cell{2, i}, "green")
			}
		}
		next, err := NextCell(g, Cell{2, 2}, rand.New(rand.NewPCG(1, 1)))
		if err != nil {
			t.Fatalf("NextCell failed: %v", err)
		}
		if next != (Cell{1, 1}) {
			t.Errorf("Expected (1,1), got %s", next)
		}
	})

	t.Run("fills-grid", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(7, 8))
		g := NewGrid(20, 15)
		last := g.Center()
		g.Occupy(last, "green")
		for g.Len() < 20*15 {
			next, err := NextCell(g, last, rng)
			if err != nil {
				t.Fatalf("NextCell failed with %d cells occupied: %v", g.Len(), err)
			}
			if !g.InBounds(next) || g.Occupied(next) {
				t.Fatalf("NextCell returned unavailable cell %s", next)
			}
			if _, err := g.Occupy(next, "green"); err != nil {
				t.Fatal(err)
			}
			last = next
		}
		if _, err := NextCell(g, last, rng); !errors.Is(err, ErrInvariantViolation) {
			t.Errorf("Expected ErrInvariantViolation on a full grid, got %v", err)
		}
	})
}

func TestGrid(t *testing.T) {
	g := NewGrid(4, 3)
	if g.Center() != (Cell{2, 1}) {
		t.Errorf("Expected center (2,1), got %s", g.Center())
	}
	for _, tc := range []struct {
		cell Cell
		edge bool
	}{
		{Cell{0, 1}, true}, {Cell{3, 1}, true}, {Cell{1, 0}, true}, {Cell{1, 2}, true},
		{Cell{1, 1}, false}, {Cell{2, 1}, false},
	} {
		if g.OnEdge(tc.cell) != tc.edge {
			t.Errorf("OnEdge(%s) = %v, expected %v", tc.cell, !tc.edge, tc.edge)
		}
	}
	g.Occupy(Cell{1, 1}, "green")
	g.Occupy(Cell{2, 1}, "black")
	if _, err := g.Occupy(Cell{1, 1}, "green"); !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("Expected ErrInvariantViolation occupying a cell twice, got %v", err)
	}
	if _, err := g.Occupy(Cell{4, 1}, "green"); !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("Expected ErrInvariantViolation out of bounds, got %v", err)
	}
	if c, _ := g.PopOldest(); c != (Cell{1, 1}) {
		t.Errorf("Expected oldest cell (1,1), got %s", c)
	}
	if u := g.At(Cell{2, 1}); u == nil || u.Order != 1 || u.Color != "black" {
		t.Errorf("Unexpected unit at (2,1): %+v", u)
	}
}
