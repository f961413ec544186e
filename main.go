package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/insightdelivered/client-registry/internal/api"
	"github.com/insightdelivered/client-registry/internal/bank"
	"github.com/insightdelivered/client-registry/internal/config"
	"github.com/insightdelivered/client-registry/internal/export"
	"github.com/insightdelivered/client-registry/internal/logging"
	"github.com/insightdelivered/client-registry/internal/notify"
	"github.com/insightdelivered/client-registry/internal/store"
)

func main() {
	// .env is optional; real deployments use plain environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logging.New(cfg.Logging)

	table := bank.NewRoutingTable()
	clients := store.New()
	notifier := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, log)

	log.Info("routing table loaded",
		"prefixes", table.Size(),
		"regional_branches", table.RegionalSize())
	if !notifier.Enabled() {
		log.Warn("telegram notifications disabled: no token configured")
	}

	h := &api.Handler{
		Store:      clients,
		Table:      table,
		Exports:    &export.Generator{Store: clients, Table: table},
		Notifier:   notifier,
		Log:        log,
		LineNumber: cfg.Telegram.LineNumber,
	}

	app := fiber.New(fiber.Config{
		AppName:   "client-registry",
		BodyLimit: cfg.HTTP.BodyLimit,
	})
	h.RegisterRoutes(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.KeepAlive.Enabled {
		go keepAlive(ctx, log, cfg.KeepAlive.Interval, clients)
	}

	go func() {
		log.Info("listening", "addr", cfg.HTTP.Addr())
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown", "error", err)
	}
}

// keepAlive logs a liveness line on an interval so hosting platforms
// that idle quiet processes keep this one warm.
func keepAlive(ctx context.Context, log *slog.Logger, interval time.Duration, clients *store.ClientStore) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Info("keep-alive ping", "clients", clients.Stats().TotalClients)
		}
	}
}
