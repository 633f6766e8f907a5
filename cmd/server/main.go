package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fazoacademy/learn/modules/enquiry"
	"github.com/fazoacademy/learn/modules/site"
	"github.com/fazoacademy/learn/pkg/config"
	"github.com/fazoacademy/learn/pkg/email"
	"github.com/fazoacademy/learn/pkg/environment"
	"github.com/fazoacademy/learn/pkg/httpserver"
	"github.com/fazoacademy/learn/pkg/logger"
	"github.com/fazoacademy/learn/pkg/requestid"
	"github.com/fazoacademy/learn/pkg/static"
)

type appConfig struct {
	App    environment.Config
	Mail   email.Config
	HTTP   httpserver.Config
	Static static.Config
	Site   site.Config
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	err := errors.Join(
		config.Load(&cfg.App),
		config.Load(&cfg.Mail),
		config.Load(&cfg.HTTP),
		config.Load(&cfg.Static),
		config.Load(&cfg.Site),
	)
	return cfg, err
}

func main() {
	cfg, err := loadConfig()

	log := logger.New(
		logger.WithEnvironment(cfg.App.Environment(), cfg.App.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	if err != nil {
		log.Error("invalid configuration", logger.Error(err))
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	sender, err := email.NewSender(cfg.Mail)
	if err != nil {
		return fmt.Errorf("mail sender: %w", err)
	}

	mailer, err := email.NewDispatcher(sender, log)
	if err != nil {
		return fmt.Errorf("mail dispatcher: %w", err)
	}

	forms, err := enquiry.NewService(
		cfg.Mail.Recipient,
		mailer,
		enquiry.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("enquiry service: %w", err)
	}

	assets, err := static.NewFromConfig(cfg.Static)
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}

	router, err := site.Router(site.RouterOptions{
		Config: cfg.Site,
		Assets: assets,
		Forms:  forms,
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}

	log.Info("starting",
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("mail_driver", string(cfg.Mail.Driver)),
		slog.String("static_dir", cfg.Static.Dir),
	)

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}
