// cmd/migrate/main.go
package main

import (
	"context"
	"log/slog"
	"os"

	"finly/internal/config"
	"finly/internal/logging"
	"finly/internal/storage/postgres"

	"github.com/joho/godotenv"
)

// Usage: migrate [up|down|status|reset]
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	slog.Info("Running migrations", "command", command)
	if err := postgres.Migrate(context.Background(), cfg.DBConn, command); err != nil {
		slog.Error("Migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Migrations done", "command", command)
}
