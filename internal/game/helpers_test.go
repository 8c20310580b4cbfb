package game

import (
	"math/rand/v2"
	"testing"
	"time"
)

// testAnnouncer records the banners and completes them on the scheduler.
type testAnnouncer struct {
	sched  Scheduler
	shown  []string
	active map[*testBanner]bool
}

type testBanner struct {
	a    *testAnnouncer
	text string
}

func (b *testBanner) Dismiss(done func()) {
	delete(b.a.active, b)
	if done != nil {
		b.a.sched.AfterFunc(0, done)
	}
}

func newTestAnnouncer(sched Scheduler) *testAnnouncer {
	return &testAnnouncer{sched: sched, active: make(map[*testBanner]bool)}
}

func (a *testAnnouncer) Show(text string, hold time.Duration, done func(Banner)) {
	a.shown = append(a.shown, text)
	b := &testBanner{a: a, text: text}
	a.active[b] = true
	if hold > 0 {
		a.sched.AfterFunc(hold, func() {
			delete(a.active, b)
			if done != nil {
				done(nil)
			}
		})
		return
	}
	a.sched.AfterFunc(0, func() {
		if done != nil {
			done(b)
		}
	})
}

// Showing reports whether a banner with text is on screen.
func (a *testAnnouncer) Showing(text string) bool {
	for b := range a.active {
		if b.text == text {
			return true
		}
	}
	return false
}

// Last returns the last banner text shown.
func (a *testAnnouncer) Last() string {
	if len(a.shown) == 0 {
		return ""
	}
	return a.shown[len(a.shown)-1]
}

type countingAudio struct {
	clicks, matches, levels, music int
}

func (a *countingAudio) Click()         { a.clicks++ }
func (a *countingAudio) Match()         { a.matches++ }
func (a *countingAudio) LevelComplete() { a.levels++ }
func (a *countingAudio) Music()         { a.music++ }

// testGame bundles a Controller with its test collaborators.
type testGame struct {
	*Controller
	sched  *ManualScheduler
	ann    *testAnnouncer
	audio  *countingAudio
	events []Event
}

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T, cfg *Config, startLevel int) *testGame {
	t.Helper()
	sched := NewManualScheduler(testEpoch)
	tg := &testGame{sched: sched, ann: newTestAnnouncer(sched), audio: &countingAudio{}}
	c, err := NewController(Options{
		Config:     cfg,
		Scheduler:  sched,
		Announcer:  tg.ann,
		Audio:      tg.audio,
		Listener:   func(e Event) { tg.events = append(tg.events, e) },
		Rand:       rand.New(rand.NewPCG(1, 2)),
		StartLevel: startLevel,
	})
	if err != nil {
		t.Fatalf("Failed to create controller: %v", err)
	}
	tg.Controller = c
	return tg
}

// play boots the game and starts the first level.
func (tg *testGame) play(t *testing.T) {
	t.Helper()
	tg.Boot()
	tg.sched.Advance(0)
	if err := tg.Continue(); err != nil {
		t.Fatalf("Continue failed: %v", err)
	}
	tg.sched.Advance(0)
	tg.startReady(t)
}

// startReady starts a prepared level.
func (tg *testGame) startReady(t *testing.T) {
	t.Helper()
	if tg.State() != Ready || tg.Prompt() != PromptStart {
		t.Fatalf("Expected state READY with start prompt, got %s / %s", tg.State(), tg.Prompt())
	}
	if err := tg.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	tg.sched.Advance(0)
	if tg.State() != Playing {
		t.Fatalf("Expected state PLAYING, got %s", tg.State())
	}
}

// count returns the number of events of type typ received.
func (tg *testGame) count(typ EventType) int {
	n := 0
	for _, e := range tg.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

// pairs returns the card indices grouped by color.
func pairs(deck Deck) [][2]int {
	first := make(map[string]int)
	var result [][2]int
	for _, card := range deck {
		if i, found := first[card.Color]; found {
			result = append(result, [2]int{i, card.Index})
			continue
		}
		first[card.Color] = card.Index
	}
	return result
}

// mismatch returns two cards of different colors.
func mismatch(deck Deck) (int, int) {
	for _, card := range deck[1:] {
		if card.Color != deck[0].Color {
			return 0, card.Index
		}
	}
	panic("deck with a single color")
}

// smallConfig is a 3x3 cells board: the first growth always reaches the edge.
func smallConfig() *Config {
	cfg := DefaultConfig()
	cfg.Board = BoardConfig{Width: 30, Height: 30, CardSize: 10}
	cfg.Growth.MaxInterval = 100 * time.Millisecond
	return cfg
}
