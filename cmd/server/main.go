package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pictocode/internal/config"
	"pictocode/internal/corpus"
	"pictocode/internal/game"
	"pictocode/internal/service"
	"pictocode/internal/transport/rest"
	"pictocode/internal/transport/ws"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log.Info().
		Str("similarity", cfg.SimilarityURL).
		Str("model", cfg.SimilarityModel).
		Dur("revealBuffer", cfg.RevealBuffer).
		Dur("revealInterval", cfg.RevealInterval).
		Msg("starting")

	provider, err := corpus.NewProvider("playtest")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build image corpus")
	}

	// Default descriptions are shared across every room using this
	// corpus; they back guesses on images nobody ever tagged.
	ledger := game.NewDescriptionLedger()
	for _, d := range provider.All() {
		ledger.SetDefault(d.URL, d.DefaultDescription)
	}

	registry := game.NewRegistry(provider, cfg.RoomTTL)
	stop := make(chan struct{})
	go registry.Janitor(time.Hour, stop)

	oracle := service.NewSimilarityClient(cfg)
	warmCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if oracle.Healthy(warmCtx) {
		log.Info().Msg("similarity service ready")
	} else {
		log.Warn().Msg("similarity service not reachable yet")
	}
	cancel()

	wsHub := ws.NewHub()

	sessions := service.NewSessionService(registry, ledger)
	guesses := service.NewGuessService(ledger, oracle, cfg.RevealBuffer, cfg.RevealInterval)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	sessions.SetBroadcaster(wsHub)
	guesses.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		Sessions:    sessions,
		Guesses:     guesses,
		Oracle:      oracle,
		Registry:    registry,
		WSHub:       wsHub,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	close(stop)
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
