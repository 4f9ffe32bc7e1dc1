package config

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func validConfig() Config {
	return Config{
		ServerPort:   "8080",
		DataBackend:  "memory",
		JWTSecret:    "secret",
		JWTExpiresIn: time.Hour,
		StoreTimeout: 5 * time.Second,
		LLMTimeout:   20 * time.Second,
		LLMBaseURL:   "https://api.openai.com/v1",
		AMQPExchange: "finly.events",
		LogFormat:    "text",
		GinMode:      "test",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{name: "valid memory backend", mutate: func(*Config) {}},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.ServerPort = "abc" },
			wantErr:     true,
			errorString: `invalid port "abc": must be a number`,
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.ServerPort = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "unknown backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: `invalid data backend "sheets"`,
		},
		{
			name: "mongo backend needs database",
			mutate: func(c *Config) {
				c.DataBackend = "mongo"
				c.MongoURI = "mongodb://localhost:27017"
			},
			wantErr:     true,
			errorString: "MONGO_DATABASE is required",
		},
		{
			name:        "empty jwt secret",
			mutate:      func(c *Config) { c.JWTSecret = "" },
			wantErr:     true,
			errorString: "JWT_SECRET cannot be empty",
		},
		{
			name:        "bad amqp scheme",
			mutate:      func(c *Config) { c.AMQPURL = "http://localhost:5672" },
			wantErr:     true,
			errorString: `invalid AMQP URL scheme "http"`,
		},
		{
			name:        "webhook without token",
			mutate:      func(c *Config) { c.TelegramWebhookURL = "https://example.com" },
			wantErr:     true,
			errorString: "TELEGRAM_WEBHOOK_URL requires TELEGRAM_BOT_TOKEN",
		},
		{
			name:        "store timeout too small",
			mutate:      func(c *Config) { c.StoreTimeout = time.Millisecond },
			wantErr:     true,
			errorString: "invalid STORE_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
			} else if err != nil {
				t.Errorf("expected no error but got: %v", err)
			}
		})
	}
}

func TestConfig_ValidateAggregates(t *testing.T) {
	cfg := validConfig()
	cfg.ServerPort = "abc"
	cfg.JWTSecret = ""
	cfg.LogFormat = "xml"

	errs := multierr.Errors(cfg.Validate())
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "Mongo")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("LLM_TIMEOUT", "not-a-duration")

	cfg := FromEnv()
	if cfg.Addr() != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.DataBackend != "mongo" {
		t.Errorf("DataBackend = %q, want mongo", cfg.DataBackend)
	}
	if cfg.StoreTimeout != 2*time.Second {
		t.Errorf("StoreTimeout = %v", cfg.StoreTimeout)
	}
	if cfg.LLMTimeout != 20*time.Second {
		t.Errorf("LLMTimeout = %v, want default", cfg.LLMTimeout)
	}
}
