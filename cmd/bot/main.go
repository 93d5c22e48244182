package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yourname/cardpay-bot/internal/bot"
	"github.com/yourname/cardpay-bot/internal/catalog"
	"github.com/yourname/cardpay-bot/internal/config"
	"github.com/yourname/cardpay-bot/internal/logging"
	"github.com/yourname/cardpay-bot/internal/repo"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile, logLevel string

	cmd := &cobra.Command{
		Use:          "cardbot",
		Short:        "Telegram bot that tells you which credit card to pay next",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), envFile, logLevel)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file merged into the environment if present")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "overrides LOG_LEVEL")
	return cmd
}

func run(ctx context.Context, envFile, logLevel string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("bot init: %w", err)
	}
	api.Debug = cfg.TelegramDebug
	if cfg.BotUsername == "" {
		cfg.BotUsername = api.Self.UserName
	}

	sender := bot.NewTelegramSender(api, cfg.DeliveryWorkers, cfg.DeliveryQueueSize, logger)
	defer sender.Close()

	h := bot.NewHandler(sender, cfg, repo.NewCards(), repo.NewPending(), cat, logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	logger.Info("bot started",
		zap.String("username", api.Self.UserName),
		zap.String("tz", cfg.Timezone),
		zap.Int("catalog_size", len(cat.Names())),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		return bot.NewDispatcher(h.HandleUpdate, cfg.DispatchWorkers, logger).Run(gctx, updates)
	})
	g.Go(func() error {
		<-gctx.Done()
		api.StopReceivingUpdates()
		return nil
	})

	err = g.Wait()
	logger.Info("shutdown")
	return err
}
