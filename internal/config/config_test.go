package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PAYMENT_GATEWAY_TIMEOUT", "")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")

	cfg := Load()
	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.StoreDriver != StoreDynamoDB {
		t.Fatalf("expected dynamodb driver, got %q", cfg.StoreDriver)
	}
	if cfg.Payments.Timeout != 10*time.Second {
		t.Fatalf("expected 10s gateway timeout, got %s", cfg.Payments.Timeout)
	}
	if cfg.Payments.Mock {
		t.Fatalf("mock mode must be off by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("PAYMENT_GATEWAY_TIMEOUT", "3")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("MERCADOPAGO_MOCK", "yes")

	cfg := Load()
	if cfg.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("expected memory driver, got %q", cfg.StoreDriver)
	}
	if cfg.Payments.Timeout != 3*time.Second {
		t.Fatalf("expected 3s, got %s", cfg.Payments.Timeout)
	}
	if cfg.SessionTTL != 90*time.Minute {
		t.Fatalf("expected 90m, got %s", cfg.SessionTTL)
	}
	if !cfg.Payments.Mock {
		t.Fatalf("expected mock mode on")
	}
}

func TestLoad_JWTSecret(t *testing.T) {
	t.Run("missing outside development", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "")
		if cfg := Load(); cfg.JWTSecret != "" {
			t.Fatalf("expected empty secret, got %q", cfg.JWTSecret)
		}
	})

	t.Run("development fallback", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("JWT_SECRET", "")
		if cfg := Load(); cfg.JWTSecret != devJWTSecret {
			t.Fatalf("expected dev secret, got %q", cfg.JWTSecret)
		}
	})

	t.Run("explicit secret wins", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("JWT_SECRET", "s3cret")
		if cfg := Load(); cfg.JWTSecret != "s3cret" {
			t.Fatalf("expected configured secret, got %q", cfg.JWTSecret)
		}
	})
}
