package game

import "math/rand/v2"

// Card of the memory game.
type Card struct {
	Index   int    // Position in the deck.
	Color   string // Each color appears on exactly two cards.
	Flipped bool   // Face up.
	Matched bool
	// Revealed is set while a code leak shows the color of a face-down card.
	Revealed bool

	// Position on the board, in pixels, and falling speed once matched.
	X, Y      float64
	DropSpeed float64
}

// ShowsColor reports whether the card face should be drawn.
func (c *Card) ShowsColor() bool {
	return c.Flipped || c.Matched || c.Revealed
}

// Deck is the ordered list of cards of a level.
type Deck []*Card

// DeckSize returns the number of cards dealt on level.
func (c *Config) DeckSize(level int) int {
	return 2 * (c.Deck.BaseColorCount + level)
}

// NewDeck creates the shuffled deck for level: the first BaseColorCount+level colors of
// the bank, two cards each.
func NewDeck(cfg *Config, level int, rng *rand.Rand) Deck {
	colorCount := min(cfg.Deck.BaseColorCount+level, len(cfg.Deck.ColorBank))
	colors := make([]string, 0, 2*colorCount)
	for _, color := range cfg.Deck.ColorBank[:colorCount] {
		colors = append(colors, color, color)
	}
	Shuffle(colors, rng)

	deck := make(Deck, len(colors))
	for i, color := range colors {
		deck[i] = &Card{Index: i, Color: color}
	}
	return deck
}

// Shuffle permutes items uniformly at random (Fisher-Yates).
func Shuffle[T any](items []T, rng *rand.Rand) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
