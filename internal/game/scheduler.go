package game

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from firing again. It returns false if the timer was
	// already stopped (or a one-shot timer already fired). Stop is idempotent.
	Stop() bool
}

// Scheduler is the only source of time and of deferred execution for the game.
//
// Implementations must run callbacks one at a time, never concurrently with each other
// nor with the input handlers of the Controller: the game state is not locked.
type Scheduler interface {
	Now() time.Time

	// AfterFunc calls f once, after d.
	AfterFunc(d time.Duration, f func()) Timer

	// Every calls f every d, until stopped. d must be positive.
	Every(d time.Duration, f func()) Timer
}

// TimerScheduler is a wall-clock Scheduler built on time.AfterFunc and time.Ticker.
// Callbacks are handed over to dispatch, which must serialize them with the rest of the
// game (e.g. go-app's Context.Dispatch, or a mutex).
type TimerScheduler struct {
	dispatch func(func())
}

// NewTimerScheduler creates a wall-clock scheduler that runs callbacks through dispatch.
func NewTimerScheduler(dispatch func(func())) *TimerScheduler {
	return &TimerScheduler{dispatch: dispatch}
}

// Now implements Scheduler.
func (s *TimerScheduler) Now() time.Time { return time.Now() }

type wallTimer struct {
	stopped atomic.Bool
	timer   *time.Timer
}

func (t *wallTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.timer.Stop()
	return true
}

// AfterFunc implements Scheduler.
func (s *TimerScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &wallTimer{}
	t.timer = time.AfterFunc(d, func() {
		s.dispatch(func() {
			// Stop may have been called after the timer fired but before dispatch ran.
			if t.stopped.Swap(true) {
				return
			}
			f()
		})
	})
	return t
}

type wallTicker struct {
	stopped  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
}

func (t *wallTicker) Stop() bool {
	first := false
	t.stopOnce.Do(func() {
		first = true
		t.stopped.Store(true)
		close(t.stop)
	})
	return first
}

// Every implements Scheduler.
func (s *TimerScheduler) Every(d time.Duration, f func()) Timer {
	if d <= 0 {
		panic("game: Every requires a positive period")
	}
	t := &wallTicker{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				s.dispatch(func() {
					if t.stopped.Load() {
						return
					}
					f()
				})
			}
		}
	}()
	return t
}

// ManualScheduler is a Scheduler on a virtual clock that only moves with Advance.
// Due callbacks run synchronously, in time order, on the goroutine calling Advance.
//
// It is used by tests and by front ends that own a fixed-rate loop (ebiten's Update).
// It is not safe for concurrent use.
type ManualScheduler struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	when    time.Time
	period  time.Duration
	seq     uint64
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewManualScheduler creates a ManualScheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now implements Scheduler.
func (m *ManualScheduler) Now() time.Time { return m.now }

// AfterFunc implements Scheduler.
func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return m.add(d, 0, f)
}

// Every implements Scheduler.
func (m *ManualScheduler) Every(d time.Duration, f func()) Timer {
	if d <= 0 {
		panic("game: Every requires a positive period")
	}
	return m.add(d, d, f)
}

func (m *ManualScheduler) add(d, period time.Duration, f func()) *manualTimer {
	m.seq++
	t := &manualTimer{when: m.now.Add(max(d, 0)), period: period, seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *ManualScheduler) Pending() int {
	count := 0
	for _, t := range m.timers {
		if !t.stopped {
			count++
		}
	}
	return count
}

// Advance moves the clock forward by d, running every callback that becomes due, including
// the ones scheduled by callbacks during the advance.
func (m *ManualScheduler) Advance(d time.Duration) {
	end := m.now.Add(d)
	for {
		t := m.next(end)
		if t == nil {
			break
		}
		m.now = t.when
		if t.period > 0 {
			m.seq++
			t.when = t.when.Add(t.period)
			t.seq = m.seq
		} else {
			t.stopped = true
		}
		t.f()
	}
	m.now = end
}

// next returns the earliest live timer due by end, dropping stopped ones.
func (m *ManualScheduler) next(end time.Time) *manualTimer {
	var best *manualTimer
	live := m.timers[:0]
	for _, t := range m.timers {
		if t.stopped {
			continue
		}
		live = append(live, t)
		if t.when.After(end) {
			continue
		}
		if best == nil || t.when.Before(best.when) || (t.when.Equal(best.when) && t.seq < best.seq) {
			best = t
		}
	}
	clear(m.timers[len(live):])
	m.timers = live
	return best
}
