package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/gateway"
	"github.com/mcdev12/waypoint/internal/timerstate"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	config, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	database, err := setupDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	if err := migrate(context.Background(), database); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Realtime fan-out. The API stays usable without NATS; timer board
	// writes still persist, clients just fall back to polling.
	natsCfg := timerstate.DefaultNatsConfig()
	if config.Nats.URL != "" {
		natsCfg.URL = config.Nats.URL
	}

	var publisher timerstate.SnapshotPublisher
	natsPublisher, err := timerstate.NewNatsPublisher(natsCfg)
	if err != nil {
		log.Warn().Err(err).Msg("NATS unavailable, running without realtime broadcast")
	} else {
		publisher = natsPublisher
		defer natsPublisher.Close()
	}

	connectionManager := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	go connectionManager.Start(ctx)

	if natsPublisher != nil {
		consumer, err := gateway.NewSnapshotConsumer(connectionManager, natsCfg)
		if err != nil {
			log.Warn().Err(err).Msg("failed to start snapshot consumer")
		} else {
			defer consumer.Stop()
			go func() {
				if err := consumer.Start(ctx); err != nil {
					log.Error().Err(err).Msg("snapshot consumer stopped")
				}
			}()
		}
	}

	services := setupServices(database, config, publisher)
	server := setupServer(config, services, connectionManager)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
