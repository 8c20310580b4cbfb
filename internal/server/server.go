// Package server serves the web version of the game: the go-app handler, the static
// assets under web/ and the game tuning at /config.yaml.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/janpfeifer/GoMemory/internal/frontend"
	"github.com/janpfeifer/GoMemory/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// ServerState describes a running server.
type ServerState struct {
	// Address the server is listening on, host:port.
	Address string
}

// Run starts the server and blocks until the context is canceled.
//
// An empty addr listens on an automatically chosen port of localhost. If started is not
// nil, the state of the server is sent to it once it is listening.
func Run(ctx context.Context, addr string, cfg *game.Config, started chan<- *ServerState) error {
	if cfg == nil {
		cfg = game.DefaultConfig()
	}
	configYAML, err := cfg.Marshal()
	if err != nil {
		return err
	}

	// Global client state, so the components can be prerendered without panic.
	frontend.InitState()
	app.Route("/", func() app.Composer { return &frontend.Board{} })

	h := &app.Handler{
		Name:        "GoMemory",
		ShortName:   "GoMemory",
		Description: "Find all the pairs before the matrix escapes containment",
		Version:     game.Version,
		Styles: []string{
			"/web/css/main.css",
		},
	}

	mux := http.NewServeMux()
	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir("web/"))))
	mux.HandleFunc("/config.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		if _, err := w.Write(configYAML); err != nil {
			klog.Warningf("Failed to send config to %s: %v", r.RemoteAddr, err)
		}
	})
	mux.Handle("/", h)

	if addr == "" {
		addr = "127.0.0.1:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %q: %w", addr, err)
	}
	srv := &http.Server{Handler: mux}
	state := &ServerState{Address: listener.Addr().String()}
	klog.Infof("Server started on %s", state.Address)
	if started != nil {
		started <- state
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	klog.Infof("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}
