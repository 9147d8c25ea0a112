// Package bootstrap is the composition root. Keep construction and wiring
// here so module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"time"

	launchpadservice "launchpad/contexts/listing-launchpad/launchpad-service"
	postgresadapter "launchpad/contexts/listing-launchpad/launchpad-service/adapters/postgres"
	"launchpad/contexts/listing-launchpad/launchpad-service/ports"
	streamservice "launchpad/contexts/listing-launchpad/stream-service"
	"launchpad/contexts/listing-launchpad/stream-service/application/hub"
	"launchpad/internal/platform/config"
	"launchpad/internal/platform/db"
	"launchpad/internal/platform/httpserver"
	"launchpad/internal/platform/notify"
	"launchpad/internal/shared/events"
)

type APIApp struct {
	server    *httpserver.Server
	postgres  *db.Postgres
	relay     *notify.RedisRelay
	launchpad launchpadservice.Module
	logger    *slog.Logger
}

// hubBroadcaster adapts the stream hub to the launchpad's broadcaster port.
type hubBroadcaster struct {
	hub *hub.Hub
}

func (b hubBroadcaster) Broadcast(topic string, entityID string, event events.Envelope) {
	b.hub.Publish(topic, entityID, event)
}

func (b hubBroadcaster) SendToUser(userID string, event events.Envelope) {
	b.hub.SendToUser(userID, event)
}

var _ ports.EventBroadcaster = hubBroadcaster{}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	streamModule := streamservice.NewModule(streamservice.Dependencies{
		SendBuffer: cfg.WSSendBuffer,
		Logger:     logger,
	})
	broadcaster := hubBroadcaster{hub: streamModule.Hub}

	var relay ports.NotificationRelay = notify.NopRelay{}
	var redisRelay *notify.RedisRelay
	if cfg.EnableNotificationRelay && strings.TrimSpace(cfg.RedisURL) != "" {
		redisRelay, err = notify.NewRedisRelay(cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		relay = redisRelay
	}

	var pg *db.Postgres
	var launchpadModule launchpadservice.Module
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := pg.DB.AutoMigrate(postgresadapter.Models()...); err != nil {
			_ = pg.Close()
			return nil, err
		}
		launchpadModule = launchpadservice.NewModule(launchpadservice.Dependencies{
			Repo:         postgresadapter.NewRepository(pg.DB, logger),
			Clock:        postgresadapter.SystemClock{},
			IDGen:        postgresadapter.UUIDGenerator{},
			Broadcaster:  broadcaster,
			Relay:        relay,
			TickInterval: cfg.TickInterval,
			Logger:       logger,
		})
	} else {
		launchpadModule = launchpadservice.NewInMemoryModule(nil, broadcaster, relay, logger)
	}
	if !cfg.EnablePriceTicker {
		launchpadModule.Proposals.Tickers = nil
	}

	server := httpserver.New(launchpadModule, streamModule, cfg.JWTSecret, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:    server,
		postgres:  pg,
		relay:     redisRelay,
		launchpad: launchpadModule,
		logger:    logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Shutdown(ctx context.Context) error {
	if a.launchpad.Tickers != nil {
		a.launchpad.Tickers.Shutdown()
	}
	return a.server.Shutdown(ctx)
}

func (a *APIApp) Close() error {
	var firstErr error
	if a.relay != nil {
		firstErr = a.relay.Close()
	}
	if a.postgres != nil {
		if err := a.postgres.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

// ShutdownGrace bounds how long an in-flight request may run during
// shutdown.
const ShutdownGrace = 10 * time.Second
