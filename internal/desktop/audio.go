package desktop

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"k8s.io/klog/v2"
)

// Sound files, under the sounds directory: the same ones the browser plays from web/sounds.
const (
	MusicFile         = "BOCrew_-_MORPHODER_GROOVE.mp3"
	ClickSoundFile    = "interface-quick.mp3"
	MatchSoundFile    = "breaking-glass-quick.mp3"
	LevelCompleteFile = "success-quick.mp3"
)

const sampleRate = beep.SampleRate(44100)

// Audio plays the game cues on the speaker. It implements game.AudioCues.
//
// Missing or broken sound files are logged and skipped: the game runs silently without them.
type Audio struct {
	mu          sync.Mutex
	dir         string
	initialized bool
	enabled     bool
	mixer       *beep.Mixer
	clips       map[string]*beep.Buffer
	music       *beep.Ctrl
	musicFile   beep.StreamSeekCloser
}

// NewAudio creates an Audio reading its sounds from dir. Nothing plays before Initialize.
func NewAudio(dir string) *Audio {
	return &Audio{
		dir:     dir,
		enabled: true,
		mixer:   &beep.Mixer{},
		clips:   make(map[string]*beep.Buffer),
	}
}

// Initialize opens the speaker and loads the short sounds.
func (a *Audio) Initialize() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to open the speaker: %w", err)
	}
	for _, name := range []string{ClickSoundFile, MatchSoundFile, LevelCompleteFile} {
		clip, err := a.loadClip(name)
		if err != nil {
			klog.Warningf("Audio: %v", err)
			continue
		}
		a.clips[name] = clip
	}
	speaker.Play(a.mixer)
	a.initialized = true
	return nil
}

// decode opens and decodes the mp3 file name.
func (a *Audio) decode(name string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(filepath.Join(a.dir, name))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open sound: %w", err)
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return streamer, format, nil
}

// loadClip decodes name fully into memory, so it can be played any number of times.
func (a *Audio) loadClip(name string) (*beep.Buffer, error) {
	streamer, format, err := a.decode(name)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()
	buffer := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: format.NumChannels, Precision: format.Precision})
	buffer.Append(beep.Resample(4, format.SampleRate, sampleRate, streamer))
	return buffer, nil
}

func (a *Audio) play(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	clip := a.clips[name]
	if !a.initialized || !a.enabled || clip == nil {
		return
	}
	speaker.Lock()
	a.mixer.Add(clip.Streamer(0, clip.Len()))
	speaker.Unlock()
}

func (a *Audio) Click()         { a.play(ClickSoundFile) }
func (a *Audio) Match()         { a.play(MatchSoundFile) }
func (a *Audio) LevelComplete() { a.play(LevelCompleteFile) }

// Music starts the background music loop, once.
func (a *Audio) Music() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized || a.music != nil {
		return
	}
	streamer, format, err := a.decode(MusicFile)
	if err != nil {
		klog.Warningf("Audio: %v", err)
		return
	}
	a.musicFile = streamer
	loop := beep.Resample(4, format.SampleRate, sampleRate, beep.Loop(-1, streamer))
	a.music = &beep.Ctrl{
		Streamer: &effects.Volume{Streamer: loop, Base: 2, Volume: -1.5},
		Paused:   !a.enabled,
	}
	speaker.Lock()
	a.mixer.Add(a.music)
	speaker.Unlock()
	klog.Infof("Audio: playing %s", MusicFile)
}

// Toggle turns all sounds on or off, and reports whether they are now on.
func (a *Audio) Toggle() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = !a.enabled
	if a.music != nil {
		speaker.Lock()
		a.music.Paused = !a.enabled
		speaker.Unlock()
	}
	klog.Infof("Audio: enabled=%v", a.enabled)
	return a.enabled
}

// Enabled reports whether sounds are on.
func (a *Audio) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// Close silences everything.
func (a *Audio) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return
	}
	speaker.Lock()
	a.mixer.Clear()
	speaker.Unlock()
	if a.musicFile != nil {
		a.musicFile.Close()
		a.music, a.musicFile = nil, nil
	}
	a.initialized = false
}
