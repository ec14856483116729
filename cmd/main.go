package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/akylbek/payment-system/payment-broker/internal/api"
	"github.com/akylbek/payment-system/payment-broker/internal/config"
	"github.com/akylbek/payment-system/payment-broker/internal/events"
	"github.com/akylbek/payment-system/payment-broker/internal/interfaces"
	"github.com/akylbek/payment-system/payment-broker/internal/orchestrator"
	"github.com/akylbek/payment-system/payment-broker/internal/provider"
	"github.com/akylbek/payment-system/payment-broker/internal/service"
	"github.com/akylbek/payment-system/payment-broker/internal/store"
	"github.com/akylbek/payment-system/payment-broker/internal/telemetry"
)

func main() {
	// Initialize telemetry
	if err := telemetry.InitTelemetry("payment-broker"); err != nil {
		panic(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	}
	defer telemetry.Shutdown(context.Background())

	telemetry.Logger.Info("Starting Payment Broker")

	cfg := config.Load()

	sessionStore, cleanup, err := buildStore(cfg)
	if err != nil {
		telemetry.Logger.Fatal("Failed to initialize session store", zap.Error(err))
	}
	defer cleanup()

	providers, nc, err := buildProviders(cfg)
	if err != nil {
		telemetry.Logger.Fatal("Failed to initialize providers", zap.Error(err))
	}
	if nc != nil {
		defer nc.Close()
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers, telemetry.Logger)
	defer publisher.Close()

	orch := orchestrator.New(providers, cfg.ProviderTimeout, telemetry.Logger)
	svc := service.NewSessionService(orch, sessionStore, publisher, telemetry.Logger)

	r := api.NewRouter(svc, cfg.PaymentPageURL, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		telemetry.Logger.Info("Payment Broker starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			telemetry.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	telemetry.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		telemetry.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	telemetry.Logger.Info("Server exited")
}

func buildStore(cfg *config.Config) (interfaces.SessionStore, func(), error) {
	switch cfg.SessionStore {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return store.NewRedisStore(client, cfg.SessionTTL), func() { client.Close() }, nil

	case "postgres":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		pg := store.NewPostgresStore(db, cfg.SessionTTL)
		if err := pg.InitDB(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return pg, func() { db.Close() }, nil

	case "memory":
		return store.NewMemoryStore(cfg.SessionTTL), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}

// buildProviders assembles the gateway per provider: HTTP when a URL is
// configured for it, NATS request/reply when a NATS connection is available,
// simulated otherwise.
func buildProviders(cfg *config.Config) ([]interfaces.ProviderGateway, *nats.Conn, error) {
	var nc *nats.Conn
	if cfg.NATSURL != "" {
		conn, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		nc = conn
	}

	providers := make([]interfaces.ProviderGateway, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		switch {
		case cfg.ProviderURLs[name] != "":
			providers = append(providers, provider.NewHTTPGateway(name, cfg.ProviderURLs[name]))
		case nc != nil:
			providers = append(providers, provider.NewNATSGateway(name, nc))
		default:
			providers = append(providers, provider.NewSimulated(name))
		}
	}

	return providers, nc, nil
}
