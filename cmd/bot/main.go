// cmd/bot/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"finly/internal/app"
	"finly/internal/bot"
	"finly/internal/config"
	"finly/internal/logging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg := config.MustLoad()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.TelegramToken == "" {
		slog.Error("TELEGRAM_BOT_TOKEN not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close(context.Background())

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		slog.Error("Failed to initialise Telegram bot", "error", err)
		os.Exit(1)
	}
	slog.Info("Bot started", "bot", api.Self.UserName)

	bot.Poll(ctx, api, bot.NewHandler(a.Services.Expenses, a.Services.Advice))
	slog.Info("Bot stopped")
}
