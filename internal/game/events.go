package game

import (
	"fmt"
	"strings"
)

// EventType of the notifications sent to the renderer.
type EventType string

const (
	EventStateChanged   EventType = "state_changed"        // Game state changed (State)
	EventPromptChanged  EventType = "prompt_changed"       // Button offered to the player changed (Prompt)
	EventDealt          EventType = "dealt"                // A new deck was dealt
	EventCardFlipped    EventType = "card_flipped"         // Card turned face up (Card)
	EventCardUnflipped  EventType = "card_unflipped"       // Card turned face down (Card)
	EventCardRevealed   EventType = "card_revealed"        // Card color shown by a code leak (Card)
	EventCardConcealed  EventType = "card_concealed"       // Card color hidden again (Card)
	EventMatched        EventType = "matched"              // Card and Other were matched
	EventCardsMoved     EventType = "cards_moved"          // Motion tick moved the cards
	EventCellGrown      EventType = "cell_grown"           // Matrix grew into Cell, with Color
	EventCellRemoved    EventType = "cell_removed"         // Matrix cell removed while unwinding (Cell)
	EventCellsCleared   EventType = "cells_cleared"        // Matrix is empty
	EventDefeat         EventType = "defeat"               // Matrix reached the edge
	EventVictory        EventType = "victory"              // All pairs found
	EventPowerUpChanged EventType = "powerup_availability" // Count of power-up Kind changed (Count)
)

// Event is a notification for the presentation layer. Only the fields relevant to Type
// are set.
type Event struct {
	Type   EventType
	State  State
	Prompt Prompt
	Card   *Card
	Other  *Card
	Cell   Cell
	Color  string
	Kind   Kind
	Count  int
}

// Listener receives the game events, on the game loop.
type Listener func(Event)

func (e Event) String() string {
	var sb strings.Builder
	sb.WriteString(string(e.Type))
	switch e.Type {
	case EventStateChanged:
		fmt.Fprintf(&sb, " state=%s", e.State)
	case EventPromptChanged:
		fmt.Fprintf(&sb, " prompt=%s", e.Prompt)
	case EventCardFlipped, EventCardUnflipped, EventCardRevealed, EventCardConcealed:
		fmt.Fprintf(&sb, " card=%d color=%s", e.Card.Index, e.Card.Color)
	case EventMatched:
		fmt.Fprintf(&sb, " cards=%d,%d color=%s", e.Card.Index, e.Other.Index, e.Card.Color)
	case EventCellGrown:
		fmt.Fprintf(&sb, " cell=%v color=%s", e.Cell, e.Color)
	case EventCellRemoved:
		fmt.Fprintf(&sb, " cell=%v", e.Cell)
	case EventPowerUpChanged:
		fmt.Fprintf(&sb, " kind=%s count=%d", e.Kind, e.Count)
	}
	return sb.String()
}
