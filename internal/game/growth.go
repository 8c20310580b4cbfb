package game

import (
	"time"

	"k8s.io/klog/v2"
)

// Growth is the spreading matrix: it owns the occupancy grid and grows it one cell at
// a time, on a fixed-tick scheduler, whenever the current interval has elapsed.
//
// Player activity speeds it up (Accelerate on every card flip); power-ups can pause,
// slow or reset it.
type Growth struct {
	s *Session

	// OnEdge is called when a grown cell lands on the border of the grid.
	OnEdge func()

	grid       *Grid
	interval   time.Duration
	multiplier float64
	paused     bool
	lastGrowth time.Time
	last       Cell
	ticker     Timer
}

// NewGrowth creates a stopped Growth for the session.
func NewGrowth(s *Session) *Growth {
	g := &Growth{s: s}
	g.ResetMultiplier()
	g.interval = s.Config.Growth.MaxInterval
	return g
}

// Grid returns the occupancy grid, nil before the first Start.
func (g *Growth) Grid() *Grid { return g.grid }

// Interval returns the current time between two growths.
func (g *Growth) Interval() time.Duration { return g.interval }

// Multiplier returns the factor applied to the interval on every card flip.
func (g *Growth) Multiplier() float64 { return g.multiplier }

// Paused reports whether growth is paused.
func (g *Growth) Paused() bool { return g.paused }

// Running reports whether the growth scheduler is active.
func (g *Growth) Running() bool { return g.ticker != nil }

// Last returns the last grown cell.
func (g *Growth) Last() Cell { return g.last }

// Start recreates the grid, seeds it at the center and starts the growth scheduler,
// replacing any previous one.
func (g *Growth) Start(initial time.Duration) {
	g.Stop()
	cols, rows := g.s.Config.GridSize()
	g.grid = NewGrid(cols, rows)
	g.s.emit(Event{Type: EventCellsCleared})
	g.interval = g.s.Config.ClampInterval(initial)
	g.paused = false
	g.seed()
	g.lastGrowth = g.s.Sched.Now()
	g.ticker = g.s.Sched.Every(g.s.Config.Growth.MinInterval, g.tick)
	klog.V(1).Infof("Growth: started on %dx%d grid, interval %s", cols, rows, g.interval)
}

// Stop cancels the growth scheduler. It is idempotent.
func (g *Growth) Stop() {
	if g.ticker == nil {
		return
	}
	g.ticker.Stop()
	g.ticker = nil
	klog.V(1).Infof("Growth: stopped")
}

// Pause suspends growth without touching the scheduler.
func (g *Growth) Pause() { g.paused = true }

// Resume undoes Pause.
func (g *Growth) Resume() { g.paused = false }

// Accelerate shortens the interval by the current multiplier.
func (g *Growth) Accelerate() {
	g.AccelerateBy(g.multiplier)
}

// AccelerateBy sets interval = max(MinInterval, interval * multiplier).
func (g *Growth) AccelerateBy(multiplier float64) {
	g.interval = g.s.Config.ClampInterval(time.Duration(float64(g.interval) * multiplier))
	klog.V(1).Infof("Growth: interval now %s", g.interval)
}

// SlowDown raises the multiplier (capped), so flips accelerate growth less, and resets
// the interval to half of its maximum.
func (g *Growth) SlowDown() {
	cfg := g.s.Config.Growth
	g.multiplier = min(cfg.MultiplierCap, g.multiplier+cfg.UnderclockStep)
	g.interval = g.s.Config.ClampInterval(cfg.MaxInterval / 2)
	klog.V(1).Infof("Growth: slowed down, multiplier %.2f, interval %s", g.multiplier, g.interval)
}

// ResetMultiplier restores the configured multiplier.
func (g *Growth) ResetMultiplier() {
	g.multiplier = g.s.Config.Growth.Multiplier
}

// Reset stops the growth, drops every cell and restores the default multiplier.
func (g *Growth) Reset() {
	g.Stop()
	g.ResetMultiplier()
	g.paused = false
	if g.grid != nil && g.grid.Len() > 0 {
		g.grid.Reset()
		g.s.emit(Event{Type: EventCellsCleared})
	}
}

// Clear removes every cell at once, emits cells_cleared and then reseeds the center, so
// the grid holds exactly the seed cell afterwards. The scheduler keeps running.
func (g *Growth) Clear() {
	if g.grid == nil {
		return
	}
	g.grid.Reset()
	g.s.emit(Event{Type: EventCellsCleared})
	g.seed()
}

// Unwind removes the cells one at a time, oldest first, then calls done.
// Growth must be stopped or paused for the grid to end up empty.
func (g *Growth) Unwind(done func()) {
	stagger := g.s.Config.Growth.UnwindStagger
	grid := g.grid
	var step func()
	step = func() {
		if grid != g.grid {
			// Start replaced the grid in the meantime.
			if done != nil {
				done()
			}
			return
		}
		c, ok := grid.PopOldest()
		if !ok {
			g.s.emit(Event{Type: EventCellsCleared})
			if done != nil {
				done()
			}
			return
		}
		g.s.emit(Event{Type: EventCellRemoved, Cell: c})
		g.s.Sched.AfterFunc(stagger, step)
	}
	if grid == nil {
		if done != nil {
			done()
		}
		return
	}
	step()
}

func (g *Growth) seed() {
	center := g.grid.Center()
	g.last = center
	g.occupy(center)
}

func (g *Growth) occupy(c Cell) {
	colors := g.s.Config.Growth.Colors
	color := colors[g.grid.grown%len(colors)]
	if _, err := g.grid.Occupy(c, color); err != nil {
		g.fail(err)
	}
	g.s.emit(Event{Type: EventCellGrown, Cell: c, Color: color})
}

func (g *Growth) tick() {
	if g.s.state != Playing || g.paused {
		return
	}
	now := g.s.Sched.Now()
	if now.Sub(g.lastGrowth) < g.interval {
		return
	}
	next, err := NextCell(g.grid, g.last, g.s.Rand)
	if err != nil {
		g.fail(err)
	}
	g.lastGrowth = now
	g.last = next
	g.occupy(next)
	if g.grid.OnEdge(next) {
		klog.Infof("Growth: matrix reached the edge at %s after %d cells", next, g.grid.Len())
		if g.OnEdge != nil {
			g.OnEdge()
		}
	}
}

// fail stops the growth and panics: the grid would otherwise be left inconsistent.
func (g *Growth) fail(err error) {
	g.Stop()
	klog.Errorf("Growth: %v", err)
	panic(err)
}
