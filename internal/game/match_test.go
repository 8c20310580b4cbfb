package game

import (
	"errors"
	"testing"
)

func newPlayingMatch(t *testing.T) (*Match, *Session, *ManualScheduler) {
	t.Helper()
	s, sched, _ := newPlayingSession(t, nil)
	m := NewMatch(s)
	m.Deal(1)
	return m, s, sched
}

func TestMatchLevelOne(t *testing.T) {
	m, _, _ := newPlayingMatch(t)
	if m.Size() != 8 {
		t.Fatalf("Expected 8 cards on level 1, got %d", m.Size())
	}
	flips, victories := 0, 0
	m.OnFlip = func(*Card) { flips++ }
	m.OnVictory = func() { victories++ }

	for i, pair := range pairs(m.Cards()) {
		for _, index := range pair {
			if err := m.Select(index); err != nil {
				t.Fatalf("Select(%d) failed: %v", index, err)
			}
		}
		a, b := m.Card(pair[0]), m.Card(pair[1])
		if !a.Matched || !b.Matched {
			t.Errorf("Expected cards %v to be matched", pair)
		}
		if m.Matched() != 2*(i+1) {
			t.Errorf("Expected %d matched, got %d", 2*(i+1), m.Matched())
		}
		if len(m.Up()) != 0 {
			t.Errorf("Expected no card up after a match, got %d", len(m.Up()))
		}
	}
	if m.Matched() != m.Size() {
		t.Errorf("Expected all %d cards matched, got %d", m.Size(), m.Matched())
	}
	if victories != 1 {
		t.Errorf("Expected victory exactly once, got %d", victories)
	}
	if flips != 8 {
		t.Errorf("Expected the flip hook called 8 times, got %d", flips)
	}
	if err := m.Select(0); !errors.Is(err, ErrInputRejected) {
		t.Errorf("Expected selecting a matched card to be rejected, got %v", err)
	}
	if victories != 1 {
		t.Errorf("Expected victory exactly once, got %d", victories)
	}
}

func TestMatchSelectSameCard(t *testing.T) {
	m, _, _ := newPlayingMatch(t)
	flips := 0
	m.OnFlip = func(*Card) { flips++ }
	if err := m.Select(3); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if err := m.Select(3); !errors.Is(err, ErrInputRejected) {
		t.Errorf("Expected ErrInputRejected selecting the same card twice, got %v", err)
	}
	if len(m.Up()) != 1 || flips != 1 || m.Matched() != 0 {
		t.Errorf("Expected the second select to change nothing: up=%d flips=%d matched=%d",
			len(m.Up()), flips, m.Matched())
	}
	for _, index := range []int{-1, m.Size()} {
		if err := m.Select(index); !errors.Is(err, ErrInputRejected) {
			t.Errorf("Expected out of range index %d rejected, got %v", index, err)
		}
	}
}

func TestMatchMiss(t *testing.T) {
	m, s, sched := newPlayingMatch(t)
	a, b := mismatch(m.Cards())
	m.Select(a)
	m.Select(b)
	if !m.Waiting() || !m.Card(a).Flipped || !m.Card(b).Flipped {
		t.Fatalf("Expected both cards up and input suppressed")
	}
	other := 0
	for other == a || other == b {
		other++
	}
	if err := m.Select(other); !errors.Is(err, ErrInputRejected) {
		t.Errorf("Expected input rejected while waiting, got %v", err)
	}

	sched.Advance(s.Config.Deck.FoundMatchWait - 1)
	if !m.Card(a).Flipped {
		t.Fatalf("Cards flipped back too early")
	}
	sched.Advance(1)
	if m.Card(a).Flipped || m.Card(b).Flipped || m.Waiting() || len(m.Up()) != 0 {
		t.Errorf("Expected both cards back down and input accepted")
	}
	if m.Matched() != 0 {
		t.Errorf("Expected no match, got %d", m.Matched())
	}
}

func TestMatchStaleMiss(t *testing.T) {
	m, s, sched := newPlayingMatch(t)
	a, b := mismatch(m.Cards())
	m.Select(a)
	m.Select(b)
	s.setState(Defeat)
	sched.Advance(s.Config.Deck.FoundMatchWait)
	if !m.Card(a).Flipped || !m.Card(b).Flipped {
		t.Errorf("Expected the miss timeout to be a no-op after a defeat")
	}

	m.Deal(1)
	s.setState(Playing)
	a, b = mismatch(m.Cards())
	m.Select(a)
	m.Select(b)
	s.epoch++
	sched.Advance(s.Config.Deck.FoundMatchWait)
	if !m.Card(a).Flipped {
		t.Errorf("Expected the miss timeout to be a no-op after a reset")
	}
}

func TestMatchRejectsOutsidePlaying(t *testing.T) {
	m, s, _ := newPlayingMatch(t)
	for _, state := range []State{StartScreen, Loading, Ready, Victory, Defeat, Complete} {
		s.setState(state)
		if err := m.Select(0); !errors.Is(err, ErrInputRejected) {
			t.Errorf("Expected select rejected in state %s, got %v", state, err)
		}
	}
	if m.Card(0).Flipped {
		t.Errorf("Card flipped outside of PLAYING")
	}
}

func TestMatchRevealConceal(t *testing.T) {
	m, _, _ := newPlayingMatch(t)
	pair := pairs(m.Cards())[0]
	m.Select(pair[0])
	m.Select(pair[1])
	m.Reveal()
	for _, card := range m.Cards() {
		if card.Matched == card.Revealed {
			t.Errorf("Card %d: matched=%v revealed=%v, only unmatched cards are revealed",
				card.Index, card.Matched, card.Revealed)
		}
		if !card.ShowsColor() {
			t.Errorf("Card %d color hidden after Reveal", card.Index)
		}
	}
	if m.Conceal(pair[0]) {
		t.Errorf("Matched card concealed")
	}
	flipped := -1
	for _, card := range m.Cards() {
		if !card.Matched {
			flipped = card.Index
			break
		}
	}
	m.Select(flipped)
	if m.Conceal(flipped) {
		t.Errorf("Card flipped by the player concealed")
	}
	for _, card := range m.Cards() {
		if !card.Matched && card.Index != flipped && !m.Conceal(card.Index) {
			t.Errorf("Card %d not concealed", card.Index)
		}
	}
	for _, card := range m.Cards() {
		if !card.Matched && card.Index != flipped && card.ShowsColor() {
			t.Errorf("Card %d still shows its color", card.Index)
		}
	}
}
