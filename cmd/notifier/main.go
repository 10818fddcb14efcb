package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/xumalabs/notifier/api"
	"github.com/xumalabs/notifier/notification"
	"github.com/xumalabs/notifier/notification/mongodb"
	"github.com/xumalabs/notifier/notification/postgres"
	"github.com/xumalabs/notifier/pkg/config"
	"github.com/xumalabs/notifier/pkg/email"
	"github.com/xumalabs/notifier/pkg/httpserver"
	"github.com/xumalabs/notifier/pkg/logger"
	"github.com/xumalabs/notifier/pkg/mongo"
	"github.com/xumalabs/notifier/pkg/pg"
	"github.com/xumalabs/notifier/pkg/push"
	"github.com/xumalabs/notifier/pkg/templates"
)

type appConfig struct {
	Environment   string `env:"ENVIRONMENT" envDefault:"development"`
	ServiceName   string `env:"SERVICE_NAME" envDefault:"notifier"`
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8080"`
	StorageDriver string `env:"NOTIFIER_STORAGE_DRIVER" envDefault:"postgres"` // postgres, mongodb, or memory
	TemplatesDir  string `env:"EMAIL_TEMPLATES_DIR"`                           // empty uses the embedded defaults
}

func main() {
	ctx := context.Background()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(logger.WithEnvironment(cfg.Environment, cfg.ServiceName))
	logger.SetAsDefault(log)

	if err := run(ctx, cfg, log); err != nil {
		log.ErrorContext(ctx, "Service terminated", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	repo, readiness, cleanup, err := newRepository(ctx, cfg.StorageDriver, log)
	if err != nil {
		return fmt.Errorf("storage setup: %w", err)
	}
	defer cleanup()

	emailSender, err := newEmailSender(log)
	if err != nil {
		return fmt.Errorf("email transport setup: %w", err)
	}

	pushSender, err := newPushSender(ctx, log)
	if err != nil {
		return fmt.Errorf("push transport setup: %w", err)
	}

	renderer := newRenderer(cfg.TemplatesDir)

	svc := notification.NewService(repo, emailSender, pushSender, renderer,
		notification.WithLogger(log),
	)

	var apiCfg api.Config
	config.MustLoad(&apiCfg)
	if apiCfg.ServiceKey == "" {
		log.WarnContext(ctx, "API service key is not set; authentication is disabled")
	}

	router := api.NewRouter(svc, apiCfg, log, readiness...)

	srv := httpserver.New(
		httpserver.WithAddr(cfg.HTTPAddr),
		httpserver.WithLogger(log),
	)
	return srv.Run(ctx, router)
}

func newRepository(ctx context.Context, driver string, log *slog.Logger) (notification.Repository, []func(context.Context) error, func(), error) {
	noop := func() {}

	switch driver {
	case "postgres":
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, nil, noop, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, noop, err
		}
		if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
			pool.Close()
			return nil, nil, noop, err
		}
		checks := []func(context.Context) error{pg.Healthcheck(pool)}
		return postgres.NewRepository(pool), checks, pool.Close, nil

	case "mongodb":
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return nil, nil, noop, err
		}
		db, err := mongo.NewWithDatabase(ctx, mongoCfg)
		if err != nil {
			return nil, nil, noop, err
		}
		repo := mongodb.NewRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, nil, noop, err
		}
		checks := []func(context.Context) error{mongo.Healthcheck(db.Client())}
		cleanup := func() { _ = db.Client().Disconnect(context.Background()) }
		return repo, checks, cleanup, nil

	case "memory":
		log.WarnContext(ctx, "Using in-memory storage; history will not survive a restart")
		return notification.NewMemoryRepository(), nil, noop, nil

	default:
		return nil, nil, noop, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func newEmailSender(log *slog.Logger) (email.Sender, error) {
	var cfg email.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case "postmark":
		return email.NewPostmarkSender(cfg)
	case "dev":
		log.Warn("Using dev email sender", slog.String("dir", cfg.DevOutputDir))
		return email.NewDevSender(cfg.DevOutputDir), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

func newPushSender(ctx context.Context, log *slog.Logger) (push.Sender, error) {
	var cfg push.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case "fcm":
		return push.NewFCMSender(ctx, cfg)
	case "dev":
		log.Warn("Using dev push sender", slog.String("dir", cfg.DevOutputDir))
		return push.NewDevSender(cfg.DevOutputDir), nil
	default:
		return nil, fmt.Errorf("unknown push provider %q", cfg.Provider)
	}
}

func newRenderer(dir string) templates.Renderer {
	if dir != "" {
		return templates.NewDirRenderer(dir)
	}
	return templates.NewDefaultRenderer()
}
