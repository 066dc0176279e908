package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "JWT_SECRET", "JWT_EXPIRES_IN", "DEV_LOGIN", "AMQP_EXCHANGE", "CACHE_MAX_COST", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerPort != ":8080" {
		t.Errorf("ServerPort = %q, want :8080", cfg.ServerPort)
	}
	if cfg.DBConn != defaultDBConn {
		t.Errorf("DBConn = %q, want default", cfg.DBConn)
	}
	if cfg.JWTExpiresIn != 24*time.Hour {
		t.Errorf("JWTExpiresIn = %v, want 24h", cfg.JWTExpiresIn)
	}
	if cfg.DevLogin {
		t.Error("DevLogin should default to false")
	}
	if cfg.AMQPExchange != "finance.events" {
		t.Errorf("AMQPExchange = %q", cfg.AMQPExchange)
	}
	if cfg.CacheMaxCost != 10000 {
		t.Errorf("CacheMaxCost = %d", cfg.CacheMaxCost)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "memory://")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("DEV_LOGIN", "true")
	t.Setenv("CACHE_MAX_COST", "500")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerPort != ":9090" {
		t.Errorf("ServerPort = %q, want :9090", cfg.ServerPort)
	}
	if cfg.DBConn != "memory://" {
		t.Errorf("DBConn = %q", cfg.DBConn)
	}
	if cfg.JWTExpiresIn != 2*time.Hour {
		t.Errorf("JWTExpiresIn = %v, want 2h", cfg.JWTExpiresIn)
	}
	if !cfg.DevLogin {
		t.Error("DevLogin should be true")
	}
	if cfg.CacheMaxCost != 500 {
		t.Errorf("CacheMaxCost = %d, want 500", cfg.CacheMaxCost)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
}
