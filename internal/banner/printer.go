// Package banner implements game.Announcer for the front ends: banners are typed in
// letter by letter and flicker out letter by letter, all driven by the game Scheduler.
package banner

import (
	"strings"
	"time"

	"github.com/janpfeifer/GoMemory/internal/game"
	"k8s.io/klog/v2"
)

const (
	// LetterDelay between two letters typed in.
	LetterDelay = 40 * time.Millisecond

	// FlickerDelay between two letters flickering out.
	FlickerDelay = 20 * time.Millisecond
)

// Printer displays banners. The front end renders Active() after every change.
type Printer struct {
	sched game.Scheduler

	// OnChange, if set, is called whenever a banner changes.
	OnChange func()

	banners []*Banner
	nextID  int
}

// NewPrinter creates a Printer driven by sched.
func NewPrinter(sched game.Scheduler) *Printer {
	return &Printer{sched: sched}
}

// Banner is a text being displayed.
type Banner struct {
	p     *Printer
	ID    int
	Text  string
	runes []rune

	shown, hidden int
	dismissing    bool
	gone          bool
	onGone        []func()
}

// Active returns the banners on screen, oldest first.
func (p *Printer) Active() []*Banner {
	return p.banners
}

// Show implements game.Announcer.
func (p *Printer) Show(text string, hold time.Duration, done func(game.Banner)) {
	p.nextID++
	b := &Banner{p: p, ID: p.nextID, Text: text, runes: []rune(text)}
	p.banners = append(p.banners, b)
	klog.V(1).Infof("Banner #%d: %q", b.ID, text)
	p.changed()
	b.typeIn(func() {
		if hold > 0 {
			p.sched.AfterFunc(hold, func() {
				b.Dismiss(func() {
					if done != nil {
						done(nil)
					}
				})
			})
			return
		}
		if done != nil {
			done(b)
		}
	})
}

// Visible returns the text as currently displayed: letters not typed in yet, or
// already flickered out, are blanks.
func (b *Banner) Visible() string {
	var sb strings.Builder
	for i, r := range b.runes {
		if i < b.hidden || i >= b.shown {
			if r == '\n' {
				sb.WriteRune(r)
			} else {
				sb.WriteRune(' ')
			}
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Complete reports whether every letter is displayed.
func (b *Banner) Complete() bool {
	return b.shown == len(b.runes) && b.hidden == 0
}

// Gone reports whether the banner was removed.
func (b *Banner) Gone() bool { return b.gone }

func (b *Banner) typeIn(done func()) {
	if b.dismissing || b.shown >= len(b.runes) {
		done()
		return
	}
	b.p.sched.AfterFunc(LetterDelay, func() {
		if !b.dismissing {
			b.shown++
			b.p.changed()
		}
		b.typeIn(done)
	})
}

// Dismiss implements game.Banner: the letters flicker out, then the banner is removed.
func (b *Banner) Dismiss(done func()) {
	if b.gone {
		if done != nil {
			done()
		}
		return
	}
	if done != nil {
		b.onGone = append(b.onGone, done)
	}
	if b.dismissing {
		return
	}
	b.dismissing = true
	b.shown = len(b.runes)
	b.flickerOut()
}

func (b *Banner) flickerOut() {
	b.p.sched.AfterFunc(FlickerDelay, func() {
		if b.hidden < len(b.runes) {
			b.hidden++
			b.p.changed()
			b.flickerOut()
			return
		}
		b.remove()
	})
}

func (b *Banner) remove() {
	b.gone = true
	for i, other := range b.p.banners {
		if other == b {
			b.p.banners = append(b.p.banners[:i], b.p.banners[i+1:]...)
			break
		}
	}
	b.p.changed()
	onGone := b.onGone
	b.onGone = nil
	for _, done := range onGone {
		done()
	}
}

func (p *Printer) changed() {
	if p.OnChange != nil {
		p.OnChange()
	}
}
