package interfaces

import (
	"context"
	"time"
	"topspot/internal/domain/entities"
)

// Notification is a best-effort email.
type Notification struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

// INotifier delivers notifications. Callers log failures and carry on.
type INotifier interface {
	Notify(ctx context.Context, n Notification) error
}

// IMediaStore uploads a file and returns a stable public URL.
type IMediaStore interface {
	Upload(ctx context.Context, folder string, data []byte) (string, error)
}

// SessionClaims is what a session token asserts about its holder.
type SessionClaims struct {
	UserID    string
	Role      entities.Role
	Version   int64
	ExpiresAt time.Time
}

// ICredentialService hashes passwords and issues/parses session tokens.
type ICredentialService interface {
	HashPassword(password string) (string, error)
	ComparePassword(hash, password string) error
	IssueSession(u entities.User) (token string, expiresAt time.Time, err error)
	ParseSession(token string) (SessionClaims, error)
}

// ILocker serializes work on one key across processes. The returned func
// releases the lock.
type ILocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}
