// Command eventbot runs the Avlod Adventures event registration bot.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/avlodventures/eventbot/internal/bot"
	"github.com/avlodventures/eventbot/internal/config"
	"github.com/avlodventures/eventbot/internal/database"
	"github.com/avlodventures/eventbot/internal/logger"
	"github.com/avlodventures/eventbot/internal/repository"
	"github.com/avlodventures/eventbot/internal/service"
	"github.com/avlodventures/eventbot/internal/session"
	"github.com/avlodventures/eventbot/internal/sheets"
	"github.com/avlodventures/eventbot/internal/telegram"
	"github.com/avlodventures/eventbot/internal/telegram/middleware"
	tgsender "github.com/avlodventures/eventbot/internal/telegram/sender"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("eventbot: %v", err)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Dir:     cfg.Logging.Dir,
		File:    cfg.Logging.BotFile,
		Profile: cfg.Logging.Profile,
	}); err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	exporter, err := sheets.New(ctx, cfg.Sheets)
	if err != nil {
		// The bot is useful without the spreadsheet; keep going.
		logger.Warn(ctx, "app", "sheets.init_failed", slog.String("err", err.Error()))
	}

	users := service.NewUsers(repository.NewUsers(db))
	catalog := service.NewCatalog(repository.NewCategories(db), repository.NewEvents(db))
	resv := service.NewReservations(repository.NewRegistrations(db), repository.NewEvents(db), exporter)

	dispatcher := tgsender.NewDispatcher(tgsender.Options{})
	sessions := session.NewMemory()
	notifier := service.NewNotifier(repository.NewUsers(db), dispatcher)

	app := bot.New(cfg, users, catalog, resv, notifier, sessions)
	reg, routes := app.Wiring()

	startedAt := time.Now()

	return telegram.Run(ctx, telegram.RunOptions{
		Config:     cfg,
		Registry:   reg,
		Dispatcher: dispatcher,
		Routes:     routes,
		Middlewares: []telegram.Middleware{
			{Name: "recover", Use: middleware.Recover},
			{Name: "logging", Use: middleware.Logger},
			{Name: "rate_limit", Use: middleware.RateLimit(middleware.RateLimitOptions{
				Interval: time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
				Exclude:  map[string]struct{}{"callback": {}},
			})},
		},
		OnStart: func(ctx context.Context, rt telegram.Runtime) error {
			notifier.SetSender(rt.Bot)
			logger.Info(ctx, "app", "ready",
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
		OnStop: func(ctx context.Context, rt telegram.Runtime) error {
			logger.Info(ctx, "app", "shutdown")
			return nil
		},
	})
}
