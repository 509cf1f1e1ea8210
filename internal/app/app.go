// Package app wires the simulation server: logging router, world, level
// seeding, tick loop, and the HTTP surface.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"drift-and-blast/internal/hub"
	"drift-and-blast/internal/net/ws"
	"drift-and-blast/internal/telemetry"
	"drift-and-blast/internal/world"
	"drift-and-blast/level"
	"drift-and-blast/logging"
	loggingSinks "drift-and-blast/logging/sinks"
)

type Config struct {
	Addr      string
	LevelPath string
	Logger    telemetry.Logger
}

func Run(ctx context.Context, cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.WrapLogger(log.Default())
	}

	router := logging.NewRouter(logging.DefaultConfig(), logging.SystemClock{}, []logging.NamedSink{
		{Name: "console", Sink: loggingSinks.NewConsoleSink(os.Stdout)},
	})
	defer func() {
		if cerr := router.Close(ctx); cerr != nil {
			logger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	counters := telemetry.NewCounters()

	worldCfg := world.DefaultConfig()
	if raw := os.Getenv("MAX_ENEMIES"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			worldCfg.MaxEnemies = value
		} else {
			logger.Printf("invalid MAX_ENEMIES=%q: %v", raw, err)
		}
	}

	w, err := world.New(worldCfg, world.Deps{
		Publisher: router,
		Metrics:   counters,
	})
	if err != nil {
		return fmt.Errorf("construct world: %w", err)
	}
	defer w.Destroy()

	definition := level.Default()
	levelPath := cfg.LevelPath
	if levelPath == "" {
		levelPath = os.Getenv("LEVEL_PATH")
	}
	if levelPath != "" {
		definition, err = level.Load(levelPath)
		if err != nil {
			return fmt.Errorf("load level: %w", err)
		}
	}
	if err := definition.Apply(w); err != nil {
		return fmt.Errorf("seed level %q: %w", definition.Name, err)
	}
	logger.Printf("seeded level %q: %d enemies, %d asteroids", definition.Name, w.EnemyCount(), w.AsteroidCount())

	h := hub.NewHub(w, hub.Config{
		TickRate: world.TickRate,
		Logger:   logger,
		Metrics:  counters,
	})
	stop := make(chan struct{})
	go h.Run(stop)
	defer func() {
		// Join the tick loop before the deferred world teardown runs; a
		// tick may still be mid-update when the stop signal lands.
		close(stop)
		<-h.Done()
	}()

	wsHandler := ws.NewHandler(h, ws.HandlerConfig{Logger: logger})

	mux := http.NewServeMux()
	if clientDir, cerr := resolveClientDir(); cerr == nil {
		mux.Handle("/", http.FileServer(http.Dir(clientDir)))
		logger.Printf("serving client assets from %s", clientDir)
	}
	mux.HandleFunc("/ws", wsHandler.Handle)
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/telemetry", func(rw http.ResponseWriter, _ *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(rw).Encode(counters.Snapshot()); err != nil {
			logger.Printf("failed to write telemetry: %v", err)
		}
	})

	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{Addr: addr, Handler: mux}
	logger.Printf("server listening on %s", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			return fmt.Errorf("shutdown: %w", serr)
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}
