package game

import (
	"testing"
	"time"
)

func TestMotion(t *testing.T) {
	s, sched, _ := newPlayingSession(t, nil)
	board := s.Config.Board
	m := NewMatch(s)
	m.Deal(5)
	motion := NewMotion(s, m)
	motion.Start()

	inside := func(card *Card) bool {
		return card.X >= 0 && card.Y >= 0 &&
			card.X <= float64(board.Width-board.CardSize) && card.Y <= float64(board.Height-board.CardSize)
	}
	seen := make(map[[2]float64]bool)
	for _, card := range m.Cards() {
		if !inside(card) {
			t.Fatalf("Card %d laid out outside the board at (%g, %g)", card.Index, card.X, card.Y)
		}
		pos := [2]float64{card.X, card.Y}
		if seen[pos] {
			t.Errorf("Two cards laid out at (%g, %g)", card.X, card.Y)
		}
		seen[pos] = true
	}

	pair := pairs(m.Cards())[0]
	m.Select(pair[0])
	m.Select(pair[1])
	sched.Advance(10 * time.Second)
	for _, card := range m.Cards() {
		if !inside(card) {
			t.Errorf("Card %d moved outside the board to (%g, %g)", card.Index, card.X, card.Y)
		}
		if card.Matched && card.Y != float64(board.Height-board.CardSize) {
			t.Errorf("Matched card %d did not drop to the bottom: y=%g", card.Index, card.Y)
		}
	}

	motion.Stop()
	motion.Stop()
	if motion.Running() || sched.Pending() != 0 {
		t.Errorf("Expected motion stopped, %d timers pending", sched.Pending())
	}
}
