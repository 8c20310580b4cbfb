package game

import (
	"errors"
	"testing"
	"time"
)

func TestControllerLevelOne(t *testing.T) {
	tg := newTestGame(t, nil, 1)
	tg.Boot()
	tg.sched.Advance(0)
	if tg.Prompt() != PromptContinue || tg.State() != StartScreen {
		t.Fatalf("Expected the start screen with continue prompt, got %s / %s", tg.State(), tg.Prompt())
	}
	if err := tg.Start(); !errors.Is(err, ErrInputRejected) {
		t.Errorf("Expected Start rejected on the start screen, got %v", err)
	}
	if err := tg.Continue(); err != nil {
		t.Fatalf("Continue failed: %v", err)
	}
	if tg.State() != Loading || tg.Prompt() != PromptNone {
		t.Errorf("Expected LOADING without prompt, got %s / %s", tg.State(), tg.Prompt())
	}
	if err := tg.Continue(); !errors.Is(err, ErrInputRejected) {
		t.Errorf("Expected a second Continue rejected, got %v", err)
	}
	tg.sched.Advance(0)
	if tg.ann.Last() != "LEVEL 1" || !tg.ann.Showing("LEVEL 1") {
		t.Errorf("Expected the level banner, got %q", tg.ann.Last())
	}
	if err := tg.SelectCard(0); !errors.Is(err, ErrInputRejected) {
		t.Errorf("Expected cards rejected before the level starts, got %v", err)
	}
	tg.startReady(t)
	if !tg.Growth.Running() || !tg.Motion.Running() {
		t.Errorf("Expected growth and motion running")
	}
	if tg.audio.music != 1 {
		t.Errorf("Expected the music cue once, got %d", tg.audio.music)
	}

	for _, pair := range pairs(tg.Match.Cards()) {
		for _, index := range pair {
			if err := tg.SelectCard(index); err != nil {
				t.Fatalf("SelectCard(%d) failed: %v", index, err)
			}
		}
	}
	if tg.State() != Victory {
		t.Fatalf("Expected VICTORY, got %s", tg.State())
	}
	if tg.Growth.Running() {
		t.Errorf("Expected growth stopped on victory")
	}
	if tg.count(EventVictory) != 1 || tg.audio.matches != 4 {
		t.Errorf("Expected 1 victory event and 4 match cues, got %d and %d",
			tg.count(EventVictory), tg.audio.matches)
	}

	tg.sched.Advance(tg.s.Config.Pacing.VictoryDelay)
	if tg.audio.levels != 1 || tg.ann.Last() != "LEVEL 1 COMPLETE!" {
		t.Errorf("Expected the level complete cue and banner, got %d / %q", tg.audio.levels, tg.ann.Last())
	}
	tg.sched.Advance(time.Second)
	if tg.Prompt() != PromptContinue {
		t.Fatalf("Expected the continue prompt after the unwind, got %s", tg.Prompt())
	}
	if tg.Growth.Grid().Len() != 0 {
		t.Errorf("Expected the matrix unwound, got %d cells", tg.Growth.Grid().Len())
	}

	if err := tg.Continue(); err != nil {
		t.Fatalf("Continue failed: %v", err)
	}
	tg.sched.Advance(0)
	if tg.Level() != 2 || tg.State() != Ready {
		t.Errorf("Expected level 2 READY, got level %d %s", tg.Level(), tg.State())
	}
	if tg.Match.Size() != 10 {
		t.Errorf("Expected 10 cards on level 2, got %d", tg.Match.Size())
	}
	for kind := range NumKinds {
		if tg.PowerUps.Available(kind) != 0 {
			t.Errorf("Expected no power-up for level 1, got %d %s", tg.PowerUps.Available(kind), kind)
		}
	}
}

func TestControllerDefeatAndRetry(t *testing.T) {
	tg := newTestGame(t, smallConfig(), 1)
	tg.PowerUps.atLevelStart[Underclock] = 1
	tg.play(t)
	if err := tg.UsePowerUp(Underclock); err != nil {
		t.Fatalf("UsePowerUp failed: %v", err)
	}

	// On a 3x3 grid the first growth is on the edge.
	tg.sched.Advance(tg.Growth.Interval() + tg.s.Config.Growth.MinInterval)
	if tg.State() != Defeat {
		t.Fatalf("Expected DEFEAT, got %s", tg.State())
	}
	if tg.Growth.Running() || tg.count(EventDefeat) != 1 {
		t.Errorf("Expected growth stopped and one defeat event")
	}
	if err := tg.SelectCard(0); !errors.Is(err, ErrInputRejected) {
		t.Errorf("Expected cards rejected after defeat, got %v", err)
	}
	if err := tg.Retry(); !errors.Is(err, ErrInputRejected) {
		t.Errorf("Expected Retry rejected before the prompt, got %v", err)
	}
	tg.sched.Advance(tg.s.Config.Pacing.DefeatDelay)
	if tg.Prompt() != PromptRetry || tg.ann.Last() != "ERROR: ARRAY INDEX OUT OF BOUNDS [YOU HAVE BEEN DEFEATED]" {
		t.Fatalf("Expected the defeat banner and retry prompt, got %q / %s", tg.ann.Last(), tg.Prompt())
	}

	epoch := tg.s.Epoch()
	if err := tg.Retry(); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	tg.sched.Advance(0)
	if tg.s.Epoch() != epoch+1 {
		t.Errorf("Expected the epoch to move on")
	}
	if tg.Level() != 1 {
		t.Errorf("Expected to retry level 1, got level %d", tg.Level())
	}
	if tg.Growth.Grid().Len() != 0 {
		t.Errorf("Expected the grid cleared, got %d cells", tg.Growth.Grid().Len())
	}
	if tg.Growth.Multiplier() != tg.s.Config.Growth.Multiplier {
		t.Errorf("Expected the multiplier reset, got %g", tg.Growth.Multiplier())
	}
	tg.startReady(t)
	if tg.PowerUps.Available(Underclock) != 1 {
		t.Errorf("Expected the underclock spent in the lost attempt back, got %d", tg.PowerUps.Available(Underclock))
	}
	// The completion of the underclock used in the lost attempt is ignored.
	tg.sched.Advance(tg.s.Config.PowerUps.UnderclockText)
	if tg.PowerUps.Available(Underclock) != 1 {
		t.Errorf("Expected 1 underclock, got %d", tg.PowerUps.Available(Underclock))
	}
}

func TestControllerComplete(t *testing.T) {
	cfg := DefaultConfig()
	tg := newTestGame(t, cfg, cfg.MaxLevel())
	tg.play(t)
	if tg.Match.Size() != 2*(cfg.Deck.BaseColorCount+cfg.MaxLevel()) {
		t.Fatalf("Unexpected deck size %d", tg.Match.Size())
	}
	for _, pair := range pairs(tg.Match.Cards()) {
		tg.SelectCard(pair[0])
		tg.SelectCard(pair[1])
	}
	tg.sched.Advance(10 * time.Second)
	if err := tg.Continue(); err != nil {
		t.Fatalf("Continue failed: %v", err)
	}
	tg.sched.Advance(time.Second)
	if tg.State() != Complete {
		t.Fatalf("Expected COMPLETE, got %s", tg.State())
	}
	if tg.ann.Last() != "CONGRATULATIONS, YOU BEAT THE GAME!" {
		t.Errorf("Expected the congratulations banner, got %q", tg.ann.Last())
	}
	if tg.Growth.Running() || tg.Motion.Running() {
		t.Errorf("Expected every scheduler stopped")
	}
	if tg.sched.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", tg.sched.Pending())
	}
	if tg.Level() != cfg.MaxLevel() {
		t.Errorf("Expected to stay on level %d, got %d", cfg.MaxLevel(), tg.Level())
	}
	for _, input := range []func() error{tg.Continue, tg.Start, tg.Retry, func() error { return tg.SelectCard(0) }} {
		if err := input(); !errors.Is(err, ErrInputRejected) {
			t.Errorf("Expected input rejected in COMPLETE, got %v", err)
		}
	}
}

func TestControllerShutdown(t *testing.T) {
	tg := newTestGame(t, nil, 1)
	tg.play(t)
	a, b := mismatch(tg.Match.Cards())
	tg.SelectCard(a)
	tg.SelectCard(b)
	tg.Shutdown()
	tg.sched.Advance(time.Minute)
	if tg.Growth.Running() || tg.Motion.Running() {
		t.Errorf("Expected every scheduler stopped")
	}
	if !tg.Match.Card(a).Flipped {
		t.Errorf("Expected the pending miss dropped")
	}
	if tg.sched.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", tg.sched.Pending())
	}
}

func TestNewControllerErrors(t *testing.T) {
	sched := NewManualScheduler(testEpoch)
	if _, err := NewController(Options{Announcer: newTestAnnouncer(sched)}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration without a scheduler, got %v", err)
	}
	if _, err := NewController(Options{Scheduler: sched}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration without an announcer, got %v", err)
	}
	opts := Options{Scheduler: sched, Announcer: newTestAnnouncer(sched), StartLevel: 11}
	if _, err := NewController(opts); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration for level 11, got %v", err)
	}
}
