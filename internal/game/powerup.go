package game

import (
	"time"
)

// Kind of power-up.
type Kind int

const (
	MemoryWipe Kind = iota
	Underclock
	CodeLeak
	NumKinds
)

var kindNames = [NumKinds]string{
	MemoryWipe: "memory_wipe",
	Underclock: "underclock",
	CodeLeak:   "code_leak",
}

func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return "unknown"
	}
	return kindNames[k]
}

// PowerUp is one variant of power-up.
type PowerUp interface {
	Kind() Kind
	Name() string
	Description() string

	// Award returns how many of this power-up are earned by completing level.
	Award(level int) int

	// Apply runs the effect and calls done exactly once when it is over.
	Apply(fx *Effects, done func())
}

// Effects is what a power-up effect can act upon. It is bound to the attempt the
// power-up was used in: once the level is reset or the play ends, Live returns false and
// the effect must leave growth and cards alone.
type Effects struct {
	Session *Session
	Growth  *Growth
	Match   *Match

	epoch uint64
}

// Live reports whether the attempt the effect was started in is still being played.
func (fx *Effects) Live() bool {
	return !fx.Session.Stale(fx.epoch) && fx.Session.state == Playing
}

// Announce is a Step showing a self-dismissing banner.
func (fx *Effects) Announce(text string, hold time.Duration) Step {
	return announce(fx.Session.Announcer, text, hold)
}

// Delay is a Step waiting d.
func (fx *Effects) Delay(d time.Duration) Step {
	return Delay(fx.Session.Sched, d)
}

// Registry returns the power-ups in Kind order.
func Registry() []PowerUp {
	return []PowerUp{memoryWipe{}, underclock{}, codeLeak{}}
}

// memoryWipe erases the matrix and restarts it a bit slower. The restart interval is
// taken when the clearing ends, so flips and underclocks during the wipe still count.
type memoryWipe struct{}

func (memoryWipe) Kind() Kind          { return MemoryWipe }
func (memoryWipe) Name() string        { return "MEMORY WIPE" }
func (memoryWipe) Description() string { return "ERASES ALL EXISTING MATRIX CELLS" }

func (memoryWipe) Award(level int) int {
	if level%2 == 0 || level >= 5 {
		return 1
	}
	return 0
}

func (memoryWipe) Apply(fx *Effects, done func()) {
	cfg := fx.Session.Config.PowerUps
	growth := fx.Growth
	growth.Pause()
	growth.Stop()
	restart := Join(2, func() {
		if fx.Live() {
			growth.Start(growth.Interval() + cfg.MemoryWipeBonus)
		}
		done()
	})
	fx.Announce("MEMORY WIPE IN PROGRESS...", cfg.MemoryWipeText)(restart)
	growth.Unwind(restart)
}

// underclock makes card flips accelerate the matrix less.
type underclock struct{}

func (underclock) Kind() Kind          { return Underclock }
func (underclock) Name() string        { return "UNDERCLOCK" }
func (underclock) Description() string { return "SLOWS MATRIX CELL SPREAD" }

func (underclock) Award(level int) int {
	if level == 10 || (level%2 == 0 && level >= 5) {
		return 1
	}
	return 0
}

func (underclock) Apply(fx *Effects, done func()) {
	if fx.Live() {
		fx.Growth.SlowDown()
	}
	fx.Announce("UNDERCLOCKING CPU...", fx.Session.Config.PowerUps.UnderclockText)(done)
}

// codeLeak shows the colors of all the cards for a while.
type codeLeak struct{}

func (codeLeak) Kind() Kind          { return CodeLeak }
func (codeLeak) Name() string        { return "CODE LEAK" }
func (codeLeak) Description() string { return "TEMPORARILY REVEAL ALL ENEMY BLOCKS" }

func (codeLeak) Award(level int) int {
	if level >= 8 {
		return 1
	}
	return 0
}

func (codeLeak) Apply(fx *Effects, done func()) {
	cfg := fx.Session.Config.PowerUps
	sched := fx.Session.Sched
	steps := []Step{
		fx.Announce("DECRYPTING MATRIX CODE...", cfg.CodeLeakText),
		func(next func()) {
			if fx.Live() {
				fx.Match.Reveal()
			}
			next()
		},
		fx.Delay(cfg.CodeLeakReveal),
	}
	// Cards are concealed one at a time; a card the player flipped up meanwhile stays up.
	for i := range fx.Match.Size() {
		steps = append(steps, func(next func()) {
			if !fx.Live() {
				next()
				return
			}
			fx.Match.Conceal(i)
			sched.AfterFunc(cfg.CodeLeakStagger, next)
		})
	}
	steps = append(steps, fx.Delay(cfg.CodeLeakStagger))
	Chain(steps...)(done)
}
