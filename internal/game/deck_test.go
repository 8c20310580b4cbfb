package game

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func TestNewDeck(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewPCG(3, 4))
	for level := 1; level <= cfg.MaxLevel(); level++ {
		t.Run(fmt.Sprintf("level-%d", level), func(t *testing.T) {
			deck := NewDeck(cfg, level, rng)
			if len(deck) != cfg.DeckSize(level) || len(deck) != 2*(3+level) {
				t.Fatalf("Expected %d cards, got %d", 2*(3+level), len(deck))
			}
			counts := make(map[string]int)
			for i, card := range deck {
				if card.Index != i {
					t.Errorf("Card %d has index %d", i, card.Index)
				}
				if card.Flipped || card.Matched || card.Revealed {
					t.Errorf("Card %d dealt face up: %+v", i, card)
				}
				counts[card.Color]++
			}
			for i, color := range cfg.Deck.ColorBank[:3+level] {
				if counts[color] != 2 {
					t.Errorf("Color #%d %q appears %d times, expected 2", i, color, counts[color])
				}
			}
			if len(counts) != 3+level {
				t.Errorf("Expected %d colors, got %d: %v", 3+level, len(counts), counts)
			}
		})
	}
}

func TestShuffleUniform(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	const rounds = 60000
	counts := make(map[string]int)
	for range rounds {
		items := []int{0, 1, 2}
		Shuffle(items, rng)
		counts[fmt.Sprint(items)]++
	}
	// All 6 permutations, each ~1/6 of the time.
	if len(counts) != 6 {
		t.Fatalf("Expected all 6 permutations, got %d: %v", len(counts), counts)
	}
	expected := rounds / 6
	for perm, n := range counts {
		if n < expected*95/100 || n > expected*105/100 {
			t.Errorf("Permutation %s drawn %d times, expected about %d", perm, n, expected)
		}
	}
}
