package auth

import (
	"errors"
	"fmt"
	"time"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "topspot"

var (
	ErrMissingSecret = errors.New("missing JWT_SECRET")
	ErrInvalidToken  = errors.New("invalid session token")
)

type sessionClaims struct {
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
	Version int64  `json:"ver"`
	jwt.RegisteredClaims
}

// CredentialService hashes passwords with bcrypt and signs HS256 sessions.
type CredentialService struct {
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

var _ interfaces.ICredentialService = (*CredentialService)(nil)

func NewCredentialService(secret string, ttl time.Duration) (*CredentialService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CredentialService{
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}, nil
}

func (s *CredentialService) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *CredentialService) ComparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *CredentialService) IssueSession(u entities.User) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	claims := sessionClaims{
		UserID:  u.ID,
		Role:    string(u.Role),
		Version: u.SessionVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *CredentialService) ParseSession(token string) (interfaces.SessionClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return interfaces.SessionClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return interfaces.SessionClaims{}, ErrInvalidToken
	}
	return interfaces.SessionClaims{
		UserID:    claims.UserID,
		Role:      entities.Role(claims.Role),
		Version:   claims.Version,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
