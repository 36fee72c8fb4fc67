package auth

import (
	"errors"
	"testing"
	"time"

	"topspot/internal/domain/entities"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *CredentialService {
	t.Helper()
	s, err := NewCredentialService("secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.cost = bcrypt.MinCost
	return s
}

func TestNewCredentialService_RequiresSecret(t *testing.T) {
	if _, err := NewCredentialService("", time.Hour); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestCredentialService_Passwords(t *testing.T) {
	s := newTestService(t)
	hash, err := s.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "hunter2" {
		t.Fatalf("password stored in clear")
	}
	if err := s.ComparePassword(hash, "hunter2"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := s.ComparePassword(hash, "hunter3"); err == nil {
		t.Fatalf("expected mismatch")
	}
}

func TestCredentialService_Sessions(t *testing.T) {
	s := newTestService(t)
	u := entities.User{ID: "u-1", Role: entities.RoleOwner, SessionVersion: 3}

	token, expiresAt, err := s.IssueSession(u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("round trip", func(t *testing.T) {
		c, err := s.ParseSession(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.UserID != "u-1" || c.Role != entities.RoleOwner || c.Version != 3 || !c.ExpiresAt.Equal(expiresAt.Truncate(time.Second)) {
			t.Fatalf("unexpected claims: %+v", c)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, _ := NewCredentialService("other", time.Hour)
		if _, err := other.ParseSession(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		later := newTestService(t)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		if _, err := later.ParseSession(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("unsigned algorithm rejected", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "u-1", "iss": issuer})
		raw, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		if _, err := s.ParseSession(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := s.ParseSession("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}
