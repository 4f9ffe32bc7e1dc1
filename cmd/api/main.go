// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"finly/internal/app"
	"finly/internal/bot"
	"finly/internal/config"
	"finly/internal/handler"
	"finly/internal/logging"
	"finly/internal/middleware"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to start", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			slog.Error("Failed to close resources", "error", err)
		}
	}()

	router := handler.NewRouter(handler.New(a.Services), handler.RouterConfig{
		Auth:       middleware.NewAuthMiddleware(a.Tokens),
		Metrics:    a.Metrics,
		CORSOrigin: cfg.CORSOrigin,
	})

	if cfg.TelegramToken != "" {
		if err := mountTelegram(router, cfg, bot.NewHandler(a.Services.Expenses, a.Services.Advice)); err != nil {
			slog.Error("Failed to set up Telegram webhook", "error", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server started", "addr", srv.Addr, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped with error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func mountTelegram(router *gin.Engine, cfg config.Config, h *bot.Handler) error {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return err
	}
	router.POST("/telegram", bot.Webhook(h, api))

	if cfg.TelegramWebhookURL == "" {
		slog.Warn("TELEGRAM_WEBHOOK_URL not set; webhook route mounted but not registered")
		return nil
	}
	url := strings.TrimSuffix(cfg.TelegramWebhookURL, "/") + "/telegram"
	if err := bot.SetWebhook(api, url); err != nil {
		return err
	}
	slog.Info("Telegram webhook set", "url", url, "bot", api.Self.UserName)
	return nil
}
