package frontend

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/janpfeifer/GoMemory/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Sound files, under web/sounds.
const (
	MusicURL         = "/web/sounds/BOCrew_-_MORPHODER_GROOVE.mp3"
	ClickSoundURL    = "/web/sounds/interface-quick.mp3"
	MatchSoundURL    = "/web/sounds/breaking-glass-quick.mp3"
	LevelCompleteURL = "/web/sounds/success-quick.mp3"
)

// GlobalClientState holds the state shared by the components of the page: tuning,
// audio and dialogs. The game itself lives in the Board.
type GlobalClientState struct {
	Config      *game.Config
	ConfigError string

	ShowCredits bool

	// Music state
	SoundEnabled bool
	MusicCued    bool // The game asked for the music: it starts with the first level.
	musicStop    chan struct{}
	musicSrc     string

	// Listeners for state updates
	Listeners map[string]func()
}

var State *GlobalClientState

func (s *GlobalClientState) ToggleSound() {
	s.SoundEnabled = !s.SoundEnabled
	klog.Infof("ToggleSound: SoundEnabled is now %v", s.SoundEnabled)
	s.SyncMusic()
	s.Notify()
}

func (s *GlobalClientState) ToggleCredits() {
	s.ShowCredits = !s.ShowCredits
	s.Notify()
}

// CueMusic starts the background music, if sound is enabled.
func (s *GlobalClientState) CueMusic() {
	s.MusicCued = true
	s.SyncMusic()
}

func (s *GlobalClientState) PlaySound(url string) {
	if app.IsServer || !s.SoundEnabled {
		return
	}

	// Create a new Audio element for the sound effect
	audio := app.Window().Get("document").Call("createElement", "audio")
	audio.Set("src", url)

	// Play the sound (fire and forget)
	promise := audio.Call("play")
	if promise.Truthy() {
		promise.Call("catch", app.FuncOf(func(this app.Value, args []app.Value) any {
			klog.Errorf("PlaySound: Failed to play %s: %v", url, args[0])
			return nil
		}))
	}
}

func (s *GlobalClientState) stopMusic() {
	if s.musicStop == nil {
		return
	}
	close(s.musicStop)
	s.musicStop = nil
}

func (s *GlobalClientState) SyncMusic() {
	if app.IsServer {
		return
	}
	if !s.SoundEnabled || !s.MusicCued {
		if s.musicStop != nil {
			klog.Infof("SyncMusic: Stopping music loop (SoundEnabled=%v)", s.SoundEnabled)
			s.stopMusic()
		}
		return
	}
	if s.musicStop == nil || s.musicSrc != MusicURL {
		s.stopMusic()
		s.musicSrc = MusicURL
		s.musicStop = make(chan struct{})
		go s.musicLoop(s.musicStop, MusicURL)
	}
}

// musicLoop plays src in a loop until stop is closed. Browsers block audio until the
// user interacted with the page, so a failed start is retried.
func (s *GlobalClientState) musicLoop(stop chan struct{}, src string) {
	klog.Infof("musicLoop: Started")
	music := app.Window().Get("document").Call("createElement", "audio")
	music.Get("style").Set("display", "none")
	music.Set("src", src)
	music.Set("loop", true)
	app.Window().Get("document").Get("body").Call("appendChild", music)
	defer func() {
		music.Call("pause")
		music.Call("remove")
	}()

	for {
		started := make(chan bool, 1)
		var onSuccess, onFailure app.Func
		release := func() {
			onSuccess.Release()
			onFailure.Release()
		}
		onSuccess = app.FuncOf(func(this app.Value, args []app.Value) any {
			music.Set("volume", 0.3)
			started <- true
			release()
			return nil
		})
		onFailure = app.FuncOf(func(this app.Value, args []app.Value) any {
			klog.Warningf("musicLoop: Play failed (likely autoplay block): %v", args[0])
			started <- false
			release()
			return nil
		})
		promise := music.Call("play")
		if !promise.Truthy() {
			release()
			klog.Warning("musicLoop: Play did not return a promise")
			return
		}
		promise.Call("then", onSuccess).Call("catch", onFailure)

		select {
		case <-stop:
			return
		case ok := <-started:
			if ok {
				klog.Infof("musicLoop: Playing %s", src)
				<-stop
				return
			}
		}
		select {
		case <-stop:
			return
		case <-time.After(5 * time.Second):
			klog.V(1).Infof("musicLoop: Retrying")
		}
	}
}

func (s *GlobalClientState) Notify() {
	klog.V(1).Infof("GlobalClientState: Notifying %d listeners", len(s.Listeners))
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}

func InitState() {
	if State == nil {
		klog.V(1).Infof("InitState: creating new state (was nil)")
		State = &GlobalClientState{
			Listeners:    make(map[string]func()),
			SoundEnabled: true,
		}
	} else {
		klog.V(1).Infof("InitState: state already exists")
	}
}

// FetchConfig downloads the game tuning served at /config.yaml. It blocks, call it
// from ctx.Async.
func FetchConfig() (*game.Config, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	url := app.Window().URL()
	url.Path = "/config.yaml"
	resp, err := client.Get(url.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch config: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch config: %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return game.ParseConfig(data)
}

// webAudio plays the game cues in the browser.
type webAudio struct{}

func (webAudio) Click()         { State.PlaySound(ClickSoundURL) }
func (webAudio) Match()         { State.PlaySound(MatchSoundURL) }
func (webAudio) LevelComplete() { State.PlaySound(LevelCompleteURL) }
func (webAudio) Music()         { State.CueMusic() }
