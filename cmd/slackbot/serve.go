package main

import (
	"context"
	"errors"
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/hauxir/claude-code-slack-bot/internal/attachment"
	"github.com/hauxir/claude-code-slack-bot/internal/claude"
	"github.com/hauxir/claude-code-slack-bot/internal/config"
	"github.com/hauxir/claude-code-slack-bot/internal/content"
	"github.com/hauxir/claude-code-slack-bot/internal/logger"
	"github.com/hauxir/claude-code-slack-bot/internal/session"
	"github.com/hauxir/claude-code-slack-bot/internal/slackbot"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideDownloader,
			provideBuilder,
			provideClaude,
			provideSessions,
			provideBot,
		),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),
		fx.Invoke(startBot),
	).Run()
}

func provideConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideDownloader(log *slog.Logger, cfg config.Config) *attachment.Downloader {
	return attachment.NewDownloader(log, attachment.DownloaderConfig{
		Token:    cfg.Slack.BotToken,
		MaxBytes: cfg.Files.MaxSizeBytes,
		TempDir:  cfg.Files.TempDir,
	})
}

func provideBuilder(log *slog.Logger) *content.Builder {
	return content.NewBuilder(log)
}

func provideClaude(log *slog.Logger, cfg config.Config) *claude.Client {
	return claude.NewClient(log, cfg.Claude)
}

func provideSessions(log *slog.Logger, cfg config.Config) *session.Manager {
	return session.NewManager(log, cfg.Files.WorkingDir)
}

func provideBot(
	log *slog.Logger,
	cfg config.Config,
	downloader *attachment.Downloader,
	builder *content.Builder,
	client *claude.Client,
	sessions *session.Manager,
) *slackbot.Bot {
	return slackbot.New(log, cfg.Slack, downloader, builder, client, sessions)
}

func startBot(lc fx.Lifecycle, shutdowner fx.Shutdowner, bot *slackbot.Bot, log *slog.Logger) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer close(done)
				if err := bot.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("slack bot stopped", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
}
