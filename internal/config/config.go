// Package config loads runtime settings from the environment.
//
// main imports github.com/joho/godotenv/autoload, so a local .env file is
// applied before Load runs.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

type Config struct {
	Port     int
	AppEnv   string
	LogLevel string

	FrontendURL string
	APIBaseURL  string

	StoreDriver string
	DynamoDB    DynamoDBConfig

	JWTSecret   string
	SessionTTL  time.Duration
	VerifyTTL   time.Duration
	ResetTTL    time.Duration
	MinPassword int

	// AdminEmail and AdminPassword seed the first admin account at startup.
	AdminEmail    string
	AdminPassword string

	Payments PaymentsConfig

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LockTTL       time.Duration
	LockWait      time.Duration

	Mailtrap MailtrapConfig
	S3       S3Config
}

type DynamoDBConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsersTable      string
	ServicesTable   string
	QuotesTable     string
	PaymentsTable   string
}

type PaymentsConfig struct {
	AccessToken     string
	Mock            bool
	Currency        string
	Timeout         time.Duration
	SuccessURL      string
	FailureURL      string
	PendingURL      string
	NotificationURL string
}

type MailtrapConfig struct {
	Token     string
	APIURL    string
	FromEmail string
	FromName  string
}

type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

// devJWTSecret only applies in development; elsewhere a missing JWT_SECRET
// leaves the secret empty so startup fails.
const devJWTSecret = "topspot-dev-secret"

func Load() Config {
	cfg := Config{
		Port:     getenvInt("PORT", 8080),
		AppEnv:   getenvDefault("APP_ENV", "production"),
		LogLevel: getenvDefault("LOG_LEVEL", "info"),

		FrontendURL: strings.TrimRight(getenvDefault("FRONTEND_URL", "http://localhost:3000"), "/"),
		APIBaseURL:  strings.TrimRight(getenvDefault("API_BASE_URL", "http://localhost:8080"), "/"),

		StoreDriver: strings.ToLower(getenvDefault("STORE_DRIVER", StoreDynamoDB)),
		DynamoDB: DynamoDBConfig{
			Region:          getenvDefault("AWS_REGION", "us-east-1"),
			Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
			AccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			UsersTable:      getenvDefault("USERS_TABLE", "users"),
			ServicesTable:   getenvDefault("SERVICES_TABLE", "services"),
			QuotesTable:     getenvDefault("QUOTES_TABLE", "quotes"),
			PaymentsTable:   getenvDefault("PAYMENTS_TABLE", "payments"),
		},

		JWTSecret:   os.Getenv("JWT_SECRET"),
		SessionTTL:  getenvDuration("SESSION_TTL", 24*time.Hour),
		VerifyTTL:   getenvDuration("VERIFICATION_TOKEN_TTL", 24*time.Hour),
		ResetTTL:    getenvDuration("PASSWORD_RESET_TTL", 30*time.Minute),
		MinPassword: getenvInt("PASSWORD_MIN_LENGTH", 5),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		Payments: PaymentsConfig{
			AccessToken:     os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
			Mock:            isTruthy(os.Getenv("PAYMENT_GATEWAY_MOCK")) || isTruthy(os.Getenv("MERCADOPAGO_MOCK")),
			Currency:        strings.ToUpper(getenvDefault("PAYMENT_CURRENCY", "PHP")),
			Timeout:         getenvDuration("PAYMENT_GATEWAY_TIMEOUT", 10*time.Second),
			SuccessURL:      os.Getenv("PAYMENT_SUCCESS_URL"),
			FailureURL:      os.Getenv("PAYMENT_FAILURE_URL"),
			PendingURL:      os.Getenv("PAYMENT_PENDING_URL"),
			NotificationURL: os.Getenv("PAYMENT_NOTIFICATION_URL"),
		},

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getenvInt("REDIS_DB", 0),
		LockTTL:       getenvDuration("SERVICE_LOCK_TTL", 15*time.Second),
		LockWait:      getenvDuration("SERVICE_LOCK_WAIT", 5*time.Second),

		Mailtrap: MailtrapConfig{
			Token:     os.Getenv("MAILTRAP_TOKEN"),
			APIURL:    getenvDefault("MAILTRAP_API_URL", "https://send.api.mailtrap.io/api/send"),
			FromEmail: getenvDefault("MAIL_FROM_EMAIL", "no-reply@topspot.local"),
			FromName:  getenvDefault("MAIL_FROM_NAME", "TopSpot"),
		},
		S3: S3Config{
			Bucket:        os.Getenv("S3_BUCKET"),
			Region:        getenvDefault("S3_REGION", getenvDefault("AWS_REGION", "us-east-1")),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			PublicBaseURL: strings.TrimRight(os.Getenv("S3_PUBLIC_BASE_URL"), "/"),
		},
	}
	if cfg.JWTSecret == "" && cfg.IsDevelopment() {
		cfg.JWTSecret = devJWTSecret
	}
	return cfg
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "local"
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

// getenvDuration accepts Go durations ("10s") or plain seconds ("10").
func getenvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
