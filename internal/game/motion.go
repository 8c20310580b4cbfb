package game

import (
	"math"

	"k8s.io/klog/v2"
)

// Motion makes the cards float around the board while a level is on, and makes the
// matched ones drop to the bottom.
type Motion struct {
	s      *Session
	match  *Match
	ticker Timer
}

// NewMotion creates a stopped Motion over the cards of match.
func NewMotion(s *Session, match *Match) *Motion {
	return &Motion{s: s, match: match}
}

// Running reports whether the motion ticker is active.
func (m *Motion) Running() bool { return m.ticker != nil }

// Start lays the cards out and starts moving them, replacing any previous ticker.
func (m *Motion) Start() {
	m.Stop()
	m.Layout()
	m.ticker = m.s.Sched.Every(m.s.Config.Motion.Tick, m.tick)
}

// Stop is idempotent.
func (m *Motion) Stop() {
	if m.ticker == nil {
		return
	}
	m.ticker.Stop()
	m.ticker = nil
	klog.V(1).Infof("Motion: stopped")
}

// Layout places the cards on a grid centered on the board.
func (m *Motion) Layout() {
	cards := m.match.Cards()
	if len(cards) == 0 {
		return
	}
	board := m.s.Config.Board
	size := float64(board.CardSize)
	pitch := size * 1.25
	fit := max(1, int(float64(board.Width)/pitch))
	perRow := min(fit, int(math.Ceil(math.Sqrt(float64(len(cards))))))
	rows := (len(cards) + perRow - 1) / perRow

	left := (float64(board.Width) - float64(perRow)*pitch + (pitch - size)) / 2
	top := (float64(board.Height) - float64(rows)*pitch + (pitch - size)) / 2
	for i, card := range cards {
		card.X, card.Y = m.confine(left+float64(i%perRow)*pitch, top+float64(i/perRow)*pitch)
		card.DropSpeed = 0
	}
	m.s.emit(Event{Type: EventCardsMoved})
}

func (m *Motion) tick() {
	cfg := m.s.Config.Motion
	for _, card := range m.match.Cards() {
		if card.Matched {
			card.DropSpeed += cfg.Gravity
			card.X, card.Y = m.confine(card.X, card.Y+card.DropSpeed)
			continue
		}
		if cfg.MoveSpeed > 0 {
			dx := (2*m.s.Rand.Float64() - 1) * cfg.MoveSpeed
			dy := (2*m.s.Rand.Float64() - 1) * cfg.MoveSpeed
			card.X, card.Y = m.confine(card.X+dx, card.Y+dy)
		}
	}
	m.s.emit(Event{Type: EventCardsMoved})
}

// confine keeps a card fully inside the board.
func (m *Motion) confine(x, y float64) (float64, float64) {
	board := m.s.Config.Board
	maxX := float64(board.Width - board.CardSize)
	maxY := float64(board.Height - board.CardSize)
	return min(max(x, 0), maxX), min(max(y, 0), maxY)
}
