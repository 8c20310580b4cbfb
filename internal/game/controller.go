package game

import (
	"fmt"

	"k8s.io/klog/v2"
)

// Controller runs the level lifecycle: it owns the state machine and coordinates growth,
// card matching, motion and power-ups.
//
// All its methods, and all the callbacks it schedules, must run on the game loop (see
// Scheduler). Input handlers return an error wrapping ErrInputRejected for input that
// does not apply to the current state, e.g. a second click on a button being removed.
type Controller struct {
	s *Session

	Growth   *Growth
	Match    *Match
	Motion   *Motion
	PowerUps *PowerUps

	prompt Prompt
	banner Banner
}

// NewController creates the session and all the game components, wired together.
// Call Boot to show the start screen.
func NewController(opts Options) (*Controller, error) {
	s, err := NewSession(opts)
	if err != nil {
		return nil, err
	}
	c := &Controller{s: s}
	c.Growth = NewGrowth(s)
	c.Match = NewMatch(s)
	c.Motion = NewMotion(s, c.Match)
	c.PowerUps = NewPowerUps(s, c.Growth, c.Match)

	c.Match.OnFlip = func(*Card) { c.Growth.Accelerate() }
	c.Match.OnMatch = func() { cue("match", s.Audio.Match) }
	c.Match.OnVictory = c.victory
	c.Growth.OnEdge = c.defeat
	return c, nil
}

// Session returns the shared game state.
func (c *Controller) Session() *Session { return c.s }

// State returns the current game state.
func (c *Controller) State() State { return c.s.state }

// Level returns the current level.
func (c *Controller) Level() int { return c.s.level }

// Prompt returns the button the player should be offered.
func (c *Controller) Prompt() Prompt { return c.prompt }

// Boot shows the objective of the game and offers to continue.
func (c *Controller) Boot() {
	if c.s.state != StartScreen {
		klog.Warningf("Controller: Boot called in state %s", c.s.state)
		return
	}
	c.setPrompt(PromptNone)
	c.s.Announcer.Show("OBJECTIVE: FIND ALL THE PAIRS BEFORE THE MATRIX ESCAPES CONTAINMENT", 0,
		func(b Banner) {
			c.banner = b
			c.setPrompt(PromptContinue)
		})
}

// Continue handles the continue button: from the start screen, or after a level is won.
func (c *Controller) Continue() error {
	if c.prompt != PromptContinue {
		return c.reject(rejectf("continue without the continue prompt (prompt %s)", c.prompt))
	}
	switch c.s.state {
	case StartScreen:
		c.acceptPrompt()
		c.dismiss(c.prepare)
	case Victory:
		c.acceptPrompt()
		c.dismiss(c.advance)
	default:
		return c.reject(rejectf("continue in state %s", c.s.state))
	}
	return nil
}

// Start handles the start button of a prepared level.
func (c *Controller) Start() error {
	if c.prompt != PromptStart || c.s.state != Ready {
		return c.reject(rejectf("start in state %s with prompt %s", c.s.state, c.prompt))
	}
	c.acceptPrompt()
	c.dismiss(c.startLevel)
	return nil
}

// Retry handles the retry button after a defeat: the same level is played again.
func (c *Controller) Retry() error {
	if c.prompt != PromptRetry || c.s.state != Defeat {
		return c.reject(rejectf("retry in state %s with prompt %s", c.s.state, c.prompt))
	}
	c.acceptPrompt()
	c.dismiss(func() {
		c.reset(true)
		c.prepare()
	})
	return nil
}

// SelectCard handles a click on the card at index.
func (c *Controller) SelectCard(index int) error {
	if err := c.Match.Select(index); err != nil {
		return c.reject(err)
	}
	cue("click", c.s.Audio.Click)
	return nil
}

// UsePowerUp handles a click on a power-up button.
func (c *Controller) UsePowerUp(kind Kind) error {
	if err := c.PowerUps.Use(kind); err != nil {
		return c.reject(err)
	}
	cue("click", c.s.Audio.Click)
	return nil
}

// Shutdown stops every scheduler of the game. Pending one-shot callbacks become no-ops.
func (c *Controller) Shutdown() {
	c.s.epoch++
	c.PowerUps.Settle()
	c.Growth.Stop()
	c.Motion.Stop()
	c.Match.Suppress()
	c.setPrompt(PromptNone)
	klog.Infof("Controller: session %s shut down at level %d", c.s.ID, c.s.level)
}

// acceptPrompt takes the prompt off the screen and moves to Loading while the current
// banner goes away.
func (c *Controller) acceptPrompt() {
	cue("click", c.s.Audio.Click)
	c.setPrompt(PromptNone)
	c.s.setState(Loading)
}

// prepare deals the cards of the current level and waits for the player to start it.
func (c *Controller) prepare() {
	c.Match.Deal(c.s.level)
	c.Match.Suppress()
	c.Motion.Start()
	epoch := c.s.epoch
	c.s.Announcer.Show(fmt.Sprintf("LEVEL %d", c.s.level), 0, func(b Banner) {
		if c.s.Stale(epoch) {
			b.Dismiss(nil)
			return
		}
		c.banner = b
		c.s.setState(Ready)
		c.setPrompt(PromptStart)
	})
}

func (c *Controller) startLevel() {
	c.s.setState(Playing)
	c.Match.Resume()
	c.s.Announcer.Show("BEGIN!", c.s.Config.Pacing.BeginBanner, nil)
	c.PowerUps.RestoreLevelStart()
	c.Growth.Start(c.s.Config.Growth.MaxInterval)
	cue("music", c.s.Audio.Music)
}

// defeat is called when the matrix reaches the edge.
func (c *Controller) defeat() {
	if c.s.state != Playing {
		return
	}
	c.s.setState(Defeat)
	c.Match.Suppress()
	c.Growth.Stop()
	c.s.emit(Event{Type: EventDefeat})
	epoch := c.s.epoch
	c.s.Sched.AfterFunc(c.s.Config.Pacing.DefeatDelay, func() {
		if c.s.Stale(epoch) || c.s.state != Defeat {
			return
		}
		c.s.Announcer.Show("ERROR: ARRAY INDEX OUT OF BOUNDS [YOU HAVE BEEN DEFEATED]", 0, func(b Banner) {
			c.banner = b
			c.setPrompt(PromptRetry)
		})
	})
}

// victory is called when the last pair is found.
func (c *Controller) victory() {
	if c.s.state != Playing {
		return
	}
	c.s.setState(Victory)
	c.Match.Suppress()
	c.Growth.Stop()
	c.s.emit(Event{Type: EventVictory})
	epoch := c.s.epoch
	level := c.s.level
	Chain(
		Delay(c.s.Sched, c.s.Config.Pacing.VictoryDelay),
		func(next func()) {
			cue("level_complete", c.s.Audio.LevelComplete)
			c.s.Announcer.Show(fmt.Sprintf("LEVEL %d COMPLETE!", level), 0, func(b Banner) {
				c.banner = b
				next()
			})
		},
		func(next func()) { c.Growth.Unwind(next) },
	)(func() {
		if c.s.Stale(epoch) || c.s.state != Victory {
			return
		}
		c.setPrompt(PromptContinue)
	})
}

// advance moves on after a won level: to the next level, or to the end of the game.
func (c *Controller) advance() {
	if c.s.level >= c.s.Config.MaxLevel() {
		c.complete()
		return
	}
	c.reset(false)
	completed := c.s.level
	c.PowerUps.AwardFor(completed, func() {
		c.s.level = completed + 1
		klog.Infof("Controller: advancing to level %d", c.s.level)
		c.prepare()
	})
}

func (c *Controller) complete() {
	c.Growth.Stop()
	c.Motion.Stop()
	c.PowerUps.Settle()
	c.s.setState(Complete)
	c.s.Announcer.Show("CONGRATULATIONS, YOU BEAT THE GAME!", 0, func(b Banner) {
		c.banner = b
	})
}

// reset cleans up after an attempt. Deferred callbacks of the attempt become no-ops.
// The grid is left alone when clearGrid is false: it was already unwound by the victory.
func (c *Controller) reset(clearGrid bool) {
	c.s.epoch++
	c.PowerUps.Settle()
	if clearGrid {
		c.Growth.Reset()
	} else {
		c.Growth.Stop()
		c.Growth.ResetMultiplier()
	}
	c.Motion.Stop()
	c.Match.Reset()
	klog.V(1).Infof("Controller: reset, epoch %d", c.s.epoch)
}

// dismiss takes the current banner off the screen, then calls done.
func (c *Controller) dismiss(done func()) {
	b := c.banner
	c.banner = nil
	if b == nil {
		done()
		return
	}
	b.Dismiss(done)
}

func (c *Controller) setPrompt(p Prompt) {
	if c.prompt == p {
		return
	}
	c.prompt = p
	c.s.emit(Event{Type: EventPromptChanged, Prompt: p})
}

func (c *Controller) reject(err error) error {
	klog.V(1).Infof("Controller: %v", err)
	return err
}
