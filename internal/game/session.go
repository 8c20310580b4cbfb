package game

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// Options to create a Session.
type Options struct {
	// Config defaults to DefaultConfig().
	Config *Config

	// Scheduler is required: it is the game loop.
	Scheduler Scheduler

	// Announcer is required.
	Announcer Announcer

	// Audio defaults to NopAudio.
	Audio AudioCues

	// Listener receives the events for the renderer. Optional.
	Listener Listener

	// Rand defaults to a randomly seeded generator.
	Rand *rand.Rand

	// StartLevel defaults to 1.
	StartLevel int
}

// Session holds the state shared by all the components of one game: configuration,
// collaborators, the current state, level and epoch.
//
// The epoch is incremented on every level reset: deferred callbacks capture it and turn
// into no-ops once it changed.
type Session struct {
	ID        string
	Config    *Config
	Sched     Scheduler
	Announcer Announcer
	Audio     AudioCues
	Rand      *rand.Rand

	listener Listener
	state    State
	level    int
	epoch    uint64
}

// NewSession validates the options and creates a Session in the StartScreen state.
func NewSession(opts Options) (*Session, error) {
	if opts.Scheduler == nil {
		return nil, configErrorf("a Scheduler is required")
	}
	if opts.Announcer == nil {
		return nil, configErrorf("an Announcer is required")
	}
	s := &Session{
		ID:        uuid.NewString(),
		Config:    opts.Config,
		Sched:     opts.Scheduler,
		Announcer: opts.Announcer,
		Audio:     opts.Audio,
		Rand:      opts.Rand,
		listener:  opts.Listener,
		state:     StartScreen,
		level:     opts.StartLevel,
	}
	if s.Config == nil {
		s.Config = DefaultConfig()
	}
	if err := validateConfig(s.Config); err != nil {
		return nil, err
	}
	if s.Audio == nil {
		s.Audio = NopAudio{}
	}
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.level == 0 {
		s.level = 1
	}
	if s.level < 1 || s.level > s.Config.MaxLevel() {
		return nil, configErrorf("start level %d out of range [1, %d]", s.level, s.Config.MaxLevel())
	}
	klog.V(1).Infof("Session %s: created, level %d of %d", s.ID, s.level, s.Config.MaxLevel())
	return s, nil
}

// State returns the current game state.
func (s *Session) State() State { return s.state }

// Level returns the current level, starting at 1.
func (s *Session) Level() int { return s.level }

// Epoch returns the current generation, incremented on every level reset.
func (s *Session) Epoch() uint64 { return s.epoch }

// Stale reports whether a callback scheduled during epoch must be dropped.
func (s *Session) Stale(epoch uint64) bool { return s.epoch != epoch }

func (s *Session) setState(state State) {
	if s.state == state {
		return
	}
	klog.Infof("Session %s: %s -> %s (level %d)", s.ID, s.state, state, s.level)
	s.state = state
	s.emit(Event{Type: EventStateChanged, State: state})
}

func (s *Session) emit(e Event) {
	if s.listener == nil {
		return
	}
	s.listener(e)
}
