package game

import (
	"fmt"

	"k8s.io/klog/v2"
)

// PowerUps keeps the power-up inventory of the player and runs their effects.
//
// While an effect runs its count is held at 0, so it cannot be used again, and it is
// given back exactly once: when the effect completes, or when the attempt it was used in
// ends (see Settle), whichever comes first.
type PowerUps struct {
	s      *Session
	growth *Growth
	match  *Match

	registry     []PowerUp
	available    [NumKinds]int
	atLevelStart [NumKinds]int
	active       [NumKinds]bool
	held         [NumKinds]int
}

// NewPowerUps creates an empty inventory.
func NewPowerUps(s *Session, growth *Growth, match *Match) *PowerUps {
	return &PowerUps{s: s, growth: growth, match: match, registry: Registry()}
}

// Registry returns the power-ups in Kind order.
func (p *PowerUps) Registry() []PowerUp { return p.registry }

// Available returns the count of kind the player can use now.
func (p *PowerUps) Available(kind Kind) int {
	if kind < 0 || kind >= NumKinds {
		return 0
	}
	return p.available[kind]
}

// AtLevelStart returns the count of kind at the start of the current level.
func (p *PowerUps) AtLevelStart(kind Kind) int {
	if kind < 0 || kind >= NumKinds {
		return 0
	}
	return p.atLevelStart[kind]
}

// Active reports whether an effect of kind is in progress.
func (p *PowerUps) Active(kind Kind) bool {
	return kind >= 0 && kind < NumKinds && p.active[kind]
}

// Use starts the effect of kind.
func (p *PowerUps) Use(kind Kind) error {
	if kind < 0 || kind >= NumKinds {
		return rejectf("unknown power-up kind %d", kind)
	}
	if p.s.state != Playing {
		return rejectf("power-up %s used in state %s", kind, p.s.state)
	}
	if p.active[kind] {
		return rejectf("power-up %s already in progress", kind)
	}
	if p.available[kind] < 1 {
		return rejectf("no power-up %s available", kind)
	}

	held := p.available[kind]
	if p.s.Config.PowerUps.ConsumeOnUse {
		held--
	}
	p.held[kind] = held
	p.active[kind] = true
	p.set(kind, 0)

	pu := p.registry[kind]
	klog.Infof("PowerUps: using %s (level %d)", pu.Name(), p.s.level)
	epoch := p.s.epoch
	fx := &Effects{Session: p.s, Growth: p.growth, Match: p.match, epoch: epoch}
	finished := false
	pu.Apply(fx, func() {
		if finished {
			klog.Warningf("PowerUps: %s effect completed twice", pu.Name())
			return
		}
		finished = true
		if p.s.Stale(epoch) {
			// Settle already gave the count back.
			return
		}
		p.release(kind)
		klog.V(1).Infof("PowerUps: %s effect completed", pu.Name())
	})
	return nil
}

// release gives back the count held by the effect of kind.
func (p *PowerUps) release(kind Kind) {
	if !p.active[kind] {
		return
	}
	p.active[kind] = false
	held := p.held[kind]
	p.held[kind] = 0
	p.set(kind, p.available[kind]+held)
}

// Settle gives back the counts held by the effects still in progress. It is called when
// the attempt they were used in ends: their completion is then ignored.
func (p *PowerUps) Settle() {
	for kind := range NumKinds {
		p.release(kind)
	}
}

// AwardFor adds the power-ups earned by completing level, announces them and snapshots
// the counts as the ones of the next level. done is called once the announcements are
// over.
func (p *PowerUps) AwardFor(level int, done func()) {
	var steps []Step
	for _, pu := range p.registry {
		n := pu.Award(level)
		if n < 1 {
			continue
		}
		kind := pu.Kind()
		p.set(kind, p.available[kind]+n)
		klog.Infof("PowerUps: awarded %d x %s for level %d", n, pu.Name(), level)
		details := fmt.Sprintf("%s: %s", pu.Name(), pu.Description())
		steps = append(steps, func(next func()) {
			p.s.Announcer.Show("YOU EARNED A POWERUP!", p.s.Config.Pacing.AwardBanner, nil)
			announce(p.s.Announcer, details, p.s.Config.Pacing.AwardDetails)(next)
		})
	}
	p.atLevelStart = p.available
	Chain(steps...)(done)
}

// RestoreLevelStart resets the counts to the ones at the start of the level, giving back
// whatever was spent in a lost attempt.
func (p *PowerUps) RestoreLevelStart() {
	for kind := range NumKinds {
		p.set(kind, p.atLevelStart[kind])
	}
}

func (p *PowerUps) set(kind Kind, count int) {
	if count < 0 {
		panic(fmt.Errorf("%w: power-up %s count would be %d", ErrInvariantViolation, kind, count))
	}
	if p.available[kind] == count {
		return
	}
	p.available[kind] = count
	p.s.emit(Event{Type: EventPowerUpChanged, Kind: kind, Count: count})
}
