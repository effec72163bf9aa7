package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/seat_hold/internal/adapter/cache"
	"github.com/srgjo27/seat_hold/internal/adapter/handler"
	"github.com/srgjo27/seat_hold/internal/adapter/inventory"
	"github.com/srgjo27/seat_hold/internal/adapter/publisher"
	"github.com/srgjo27/seat_hold/internal/adapter/render/console"
	"github.com/srgjo27/seat_hold/internal/adapter/repository/postgres"
	"github.com/srgjo27/seat_hold/internal/core/ports"
	"github.com/srgjo27/seat_hold/internal/core/services"
	"github.com/srgjo27/seat_hold/internal/platform/clock"
	"github.com/srgjo27/seat_hold/internal/platform/config"
	"github.com/srgjo27/seat_hold/internal/platform/database"
	"github.com/srgjo27/seat_hold/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	found, err := config.LoadDotEnv()
	if err != nil {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if found {
		log.Debug("loaded .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var inv ports.InventoryService = inventory.NewClient(cfg.InventoryURL,
		inventory.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		inventory.WithToken(cfg.AccessToken),
		inventory.WithLogger(log),
	)

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, seat map cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			log.Info("redis connected", "addr", cfg.Redis.Addr)
			inv = cache.NewCachedInventory(inv, rdb, cfg.Redis.TTL, log)
		}
	}

	opts := []services.Option{services.WithLogger(log)}

	if cfg.LedgerDSN != "" {
		db, err := database.NewPostgresDB(ctx, database.Config{DSN: cfg.LedgerDSN}, log)
		if err != nil {
			return err
		}
		defer db.Close()

		ledger := postgres.NewTicketLedger(db)
		if err := ledger.EnsureSchema(ctx); err != nil {
			return err
		}
		opts = append(opts, services.WithLedger(ledger))
	}

	if cfg.AMQP.URL != "" {
		pub, err := publisher.Dial(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			log.Warn("outcome publishing disabled", "error", err)
		} else {
			defer pub.Close()
			opts = append(opts, services.WithPublisher(pub))
		}
	}

	session := services.SessionConfig{
		EventID:            cfg.EventID,
		UserID:             cfg.UserID,
		MaxSeatsPerUser:    cfg.MaxSeatsPerUser,
		SeatPrice:          cfg.SeatPrice,
		Rows:               cfg.Rows,
		Cols:               cfg.Cols,
		TickInterval:       cfg.TickInterval,
		GraceDelay:         cfg.GraceDelay,
		ReleaseReloadDelay: cfg.ReleaseReloadDelay,
	}

	ctrl := services.NewSyncController(session, inv, console.NewRenderer(os.Stdout), clock.Real(), opts...)
	defer ctrl.Close()

	log.Info("session started", "event_id", cfg.EventID, "user_id", string(cfg.UserID), "session_id", ctrl.SessionID().String())

	cmds := handler.NewCommandHandler(ctrl, os.Stdout)

	if err := ctrl.LoadCatalog(ctx); err != nil {
		log.Warn("initial seat map load failed, type load to retry", "error", err)
	}
	cmds.Handle(ctx, "help")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil
		case line, ok := <-lines:
			if !ok || !cmds.Handle(ctx, line) {
				log.Info("session closed")
				return nil
			}
		}
	}
}
