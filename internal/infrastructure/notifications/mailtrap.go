package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"topspot/internal/config"
	"topspot/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var ErrMailtrapNotConfigured = errors.New("mailtrap not configured: set MAILTRAP_TOKEN")

type mailtrapAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailtrapSendBody struct {
	From     mailtrapAddress   `json:"from"`
	To       []mailtrapAddress `json:"to"`
	Subject  string            `json:"subject"`
	Text     string            `json:"text"`
	Category string            `json:"category,omitempty"`
}

// MailtrapSender delivers a notification through the Mailtrap send API.
type MailtrapSender struct {
	cfg    config.MailtrapConfig
	client *http.Client
	logger *zap.Logger
}

var _ interfaces.INotifier = (*MailtrapSender)(nil)

func NewMailtrapSender(cfg config.MailtrapConfig, logger *zap.Logger) (*MailtrapSender, error) {
	if cfg.Token == "" {
		return nil, ErrMailtrapNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MailtrapSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger.Named("notify.mailtrap"),
	}, nil
}

func (s *MailtrapSender) Notify(ctx context.Context, n interfaces.Notification) error {
	if len(n.To) == 0 {
		return nil
	}
	body := mailtrapSendBody{
		From:     mailtrapAddress{Email: s.cfg.FromEmail, Name: s.cfg.FromName},
		Subject:  n.Subject,
		Text:     n.Body,
		Category: "topspot",
	}
	for _, to := range n.To {
		body.To = append(body.To, mailtrapAddress{Email: to})
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailtrap send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("mailtrap send: status %d: %s", resp.StatusCode, string(raw))
	}
	s.logger.Info("email sent", zap.Strings("to", n.To), zap.String("subject", n.Subject))
	return nil
}

// LogNotifier only logs. It stands in when no mail provider is configured.
type LogNotifier struct {
	logger *zap.Logger
}

var _ interfaces.INotifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("notify.log")}
}

func (l *LogNotifier) Notify(_ context.Context, n interfaces.Notification) error {
	l.logger.Info("email suppressed", zap.Strings("to", n.To), zap.String("subject", n.Subject))
	return nil
}
