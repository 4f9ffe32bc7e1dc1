// Package app builds the object graph shared by the API and the bot.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"finly/internal/advice"
	"finly/internal/auth"
	"finly/internal/config"
	"finly/internal/events"
	"finly/internal/handler"
	"finly/internal/metrics"
	"finly/internal/service"
	"finly/internal/storage"
	"finly/internal/storage/memory"
	"finly/internal/storage/mongo"
	"finly/internal/storage/postgres"

	"go.uber.org/multierr"
)

type App struct {
	Store    storage.Store
	Events   events.Publisher
	Metrics  *metrics.Metrics
	Tokens   *auth.TokenService
	Services handler.Services
}

// New connects the configured backends. Close releases them.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pub, err := OpenPublisher(ctx, cfg)
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}

	m := metrics.New()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn, cfg.JWTIssuer)
	expenses := service.NewExpenseService(store, pub, m, cfg.StoreTimeout)
	profiles := service.NewProfileService(store, cfg.StoreTimeout)

	return &App{
		Store:   store,
		Events:  pub,
		Metrics: m,
		Tokens:  tokens,
		Services: handler.Services{
			Expenses: expenses,
			Profiles: profiles,
			Reviews:  service.NewReviewService(store, cfg.StoreTimeout),
			Advice:   service.NewAdviceService(profiles, expenses, NewGenerator(cfg), m),
			Users:    service.NewUserService(store, profiles, tokens, cfg.StoreTimeout),
		},
	}, nil
}

func (a *App) Close(ctx context.Context) error {
	return multierr.Combine(a.Events.Close(), a.Store.Close(ctx))
}

// OpenStore returns the backend named by cfg.DataBackend.
func OpenStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.DataBackend {
	case "memory":
		slog.Warn("Using the in-memory backend; data is lost on restart")
		return memory.NewStorage(), nil
	case "mongo":
		s, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := postgres.Connect(ctx, cfg.DBConn)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}

// OpenPublisher dials AMQP when it is configured.
func OpenPublisher(ctx context.Context, cfg config.Config) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		return events.Nop{}, nil
	}
	pub, err := events.DialAMQP(ctx, cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, fmt.Errorf("connect to AMQP: %w", err)
	}
	return pub, nil
}

// NewGenerator returns the LLM client, or a generator that always fails
// when no API key is set so that advice falls back to its defaults.
func NewGenerator(cfg config.Config) advice.Generator {
	if cfg.LLMAPIKey == "" {
		slog.Info("LLM_API_KEY not set; advice endpoints return defaults")
		return advice.Disabled{}
	}
	return advice.NewOpenAIClient(advice.ClientConfig{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	})
}
