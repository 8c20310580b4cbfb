package game

import (
	"time"

	"k8s.io/klog/v2"
)

// Banner is a message being displayed by an Announcer.
type Banner interface {
	// Dismiss hides the banner and calls done (if not nil) once it is gone.
	// Dismissing a banner that is already gone calls done right away.
	Dismiss(done func())
}

// Announcer displays the text of the game: level banners, power-up descriptions, defeat
// messages, etc.
type Announcer interface {
	// Show displays text. With hold > 0 the banner goes away by itself after hold, and
	// done(nil) is called once it is gone. With hold == 0 the banner stays, and done
	// receives the Banner to dismiss later. done may be nil.
	Show(text string, hold time.Duration, done func(Banner))
}

// AudioCues are fire-and-forget sound hooks.
type AudioCues interface {
	Click()
	Match()
	LevelComplete()
	Music()
}

// NopAudio is an AudioCues that plays nothing.
type NopAudio struct{}

func (NopAudio) Click()         {}
func (NopAudio) Match()         {}
func (NopAudio) LevelComplete() {}
func (NopAudio) Music()         {}

// announce is a Step showing a self-dismissing banner.
func announce(a Announcer, text string, hold time.Duration) Step {
	return func(next func()) {
		a.Show(text, hold, func(Banner) { next() })
	}
}

// cue plays an audio cue, making sure a failing audio back end never breaks the game.
func cue(name string, play func()) {
	defer func() {
		if r := recover(); r != nil {
			klog.Warningf("audio cue %q failed: %v", name, r)
		}
	}()
	play()
}
