package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/janpfeifer/GoMemory/internal/game"
	"github.com/janpfeifer/GoMemory/internal/server"
	"k8s.io/klog/v2"
)

var (
	flagAddr   = flag.String("addr", "", "Address to listen on (default: auto-port on localhost)")
	flagConfig = flag.String("config", "", "YAML file with the game tuning (default: built-in tuning)")
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

	started := make(chan *server.ServerState, 1)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		state := <-started
		fmt.Printf("GoMemory server listening on http://%s\n", state.Address)
	}()

	if err := server.Run(ctx, *flagAddr, cfg, started); err != nil {
		klog.Fatal(err)
	}
}
