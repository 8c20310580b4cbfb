package game

import (
	"k8s.io/klog/v2"
)

// Match is the card-matching mini-game: it owns the deck and the cards currently
// face up.
type Match struct {
	s *Session

	// OnFlip is called after every accepted flip.
	OnFlip func(card *Card)
	// OnMatch is called when a pair is found.
	OnMatch func()
	// OnVictory is called once, when the last pair is found.
	OnVictory func()

	cards   Deck
	up      []*Card
	matched int
	waiting bool
	won     bool
}

// NewMatch creates an empty Match for the session.
func NewMatch(s *Session) *Match {
	return &Match{s: s}
}

// Cards returns the current deck.
func (m *Match) Cards() Deck { return m.cards }

// Card returns the card at index, or nil.
func (m *Match) Card(index int) *Card {
	if index < 0 || index >= len(m.cards) {
		return nil
	}
	return m.cards[index]
}

// Size returns the number of cards in the deck.
func (m *Match) Size() int { return len(m.cards) }

// Matched returns the number of matched cards.
func (m *Match) Matched() int { return m.matched }

// Up returns the cards currently face up and not yet resolved.
func (m *Match) Up() []*Card { return append([]*Card(nil), m.up...) }

// Waiting reports whether input is suppressed.
func (m *Match) Waiting() bool { return m.waiting }

// Deal creates the deck for level.
func (m *Match) Deal(level int) {
	m.cards = NewDeck(m.s.Config, level, m.s.Rand)
	m.up = nil
	m.matched = 0
	m.waiting = false
	m.won = false
	klog.V(1).Infof("Match: dealt %d cards for level %d", len(m.cards), level)
	m.s.emit(Event{Type: EventDealt})
}

// Reset drops the deck.
func (m *Match) Reset() {
	m.cards = nil
	m.up = nil
	m.matched = 0
	m.waiting = false
	m.won = false
}

// Suppress rejects any further selection until the next Deal or Resume.
func (m *Match) Suppress() { m.waiting = true }

// Resume accepts selections again.
func (m *Match) Resume() { m.waiting = false }

// Select handles the player picking the card at index.
// Stale or invalid selections return an error wrapping ErrInputRejected and change nothing.
func (m *Match) Select(index int) error {
	if m.s.state != Playing {
		return rejectf("card %d selected in state %s", index, m.s.state)
	}
	if m.waiting {
		return rejectf("card %d selected while input is suppressed", index)
	}
	card := m.Card(index)
	if card == nil {
		return rejectf("card %d out of range [0, %d)", index, len(m.cards))
	}
	if card.Matched {
		return rejectf("card %d already matched", index)
	}
	if len(m.up) == 1 && m.up[0] == card {
		return rejectf("card %d is already face up", index)
	}
	if len(m.up) >= 2 {
		return rejectf("card %d selected with two cards already up", index)
	}

	m.flip(card)
	m.up = append(m.up, card)
	if len(m.up) == 2 {
		if m.up[0].Color == m.up[1].Color {
			m.match()
		} else {
			m.miss()
		}
	}
	return nil
}

func (m *Match) flip(card *Card) {
	card.Flipped = true
	m.s.emit(Event{Type: EventCardFlipped, Card: card})
	if m.OnFlip != nil {
		m.OnFlip(card)
	}
}

func (m *Match) unflip(card *Card) {
	card.Flipped = false
	card.Revealed = false
	m.s.emit(Event{Type: EventCardUnflipped, Card: card})
}

func (m *Match) match() {
	a, b := m.up[0], m.up[1]
	a.Matched, b.Matched = true, true
	m.up = nil
	m.matched += 2
	klog.V(1).Infof("Match: %s pair found (%d/%d)", a.Color, m.matched, len(m.cards))
	m.s.emit(Event{Type: EventMatched, Card: a, Other: b})
	if m.OnMatch != nil {
		m.OnMatch()
	}
	if m.matched == len(m.cards) && !m.won {
		m.won = true
		if m.OnVictory != nil {
			m.OnVictory()
		}
	}
}

func (m *Match) miss() {
	m.waiting = true
	a, b := m.up[0], m.up[1]
	epoch := m.s.epoch
	m.s.Sched.AfterFunc(m.s.Config.Deck.FoundMatchWait, func() {
		if m.s.Stale(epoch) || m.s.state != Playing {
			klog.V(1).Infof("Match: dropping stale miss of cards %d and %d", a.Index, b.Index)
			return
		}
		m.unflip(a)
		m.unflip(b)
		m.up = nil
		m.waiting = false
	})
}

// Reveal shows the color of every unmatched card.
func (m *Match) Reveal() {
	for _, card := range m.cards {
		if !card.Matched {
			card.Revealed = true
			m.s.emit(Event{Type: EventCardRevealed, Card: card})
		}
	}
}

// Conceal hides the color of the card at index again, unless it is matched or was
// flipped up by the player in the meantime. It reports whether the card was concealed.
func (m *Match) Conceal(index int) bool {
	card := m.Card(index)
	if card == nil || card.Matched || card.Flipped {
		return false
	}
	card.Revealed = false
	m.s.emit(Event{Type: EventCardConcealed, Card: card})
	return true
}
