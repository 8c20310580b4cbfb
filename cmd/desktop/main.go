package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/janpfeifer/GoMemory/internal/desktop"
	"github.com/janpfeifer/GoMemory/internal/game"
	"k8s.io/klog/v2"
)

var (
	flagConfig = flag.String("config", "", "YAML file with the game tuning (default: built-in tuning)")
	flagSounds = flag.String("sounds", "web/sounds", "Directory with the game sounds")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	cfg := game.DefaultConfig()
	if *flagConfig != "" {
		var err error
		cfg, err = game.LoadConfig(*flagConfig)
		if err != nil {
			klog.Fatalf("%+v", err)
		}
	}

	audio := desktop.NewAudio(*flagSounds)
	if err := audio.Initialize(); err != nil {
		// Non-fatal, the game runs without sound.
		klog.Warningf("Audio initialization failed: %v", err)
	}
	defer audio.Close()

	g, err := desktop.New(cfg, audio)
	if err != nil {
		klog.Fatalf("%+v", err)
	}
	defer g.Shutdown()

	ebiten.SetWindowTitle("GoMemory")
	ebiten.SetWindowSize(cfg.Board.Width, cfg.Board.Height)
	if err := ebiten.RunGame(g); err != nil {
		klog.Fatal(err)
	}
}
