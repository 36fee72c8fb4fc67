package payments

import (
	"context"
	"testing"

	"topspot/internal/config"
	"topspot/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

func TestNewMercadoPagoGateway_MissingToken(t *testing.T) {
	if _, err := NewMercadoPagoGateway(config.PaymentsConfig{}, nil); err != ErrMissingMercadoPagoAccessToken {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
}

func TestMercadoPagoGateway_MockMode(t *testing.T) {
	g, err := NewMercadoPagoGateway(config.PaymentsConfig{Mock: true}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := g.CreateCheckout(context.Background(), interfaces.CheckoutRequest{
		PaymentID: "pay-1",
		Amount:    decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ExternalID != "pay-1" || s.CheckoutURL != mockCheckoutBaseURL+"pay-1" {
		t.Fatalf("unexpected session: %+v", s)
	}
	status, err := g.GetStatus(context.Background(), "pay-1")
	if err != nil || status != interfaces.GatewayStatusApproved {
		t.Fatalf("expected approved, got %q %v", status, err)
	}
}

func TestMercadoPagoGateway_NilNotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	if _, err := g.CreateCheckout(context.Background(), interfaces.CheckoutRequest{}); err != ErrMercadoPagoGatewayNotConfigured {
		t.Fatalf("expected not configured, got %v", err)
	}
	if _, err := g.GetStatus(context.Background(), "x"); err != ErrMercadoPagoGatewayNotConfigured {
		t.Fatalf("expected not configured, got %v", err)
	}
}

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     interfaces.GatewayStatus
	}{
		{"no payments yet", nil, interfaces.GatewayStatusPending},
		{"one approved among failures", []string{"rejected", "approved"}, interfaces.GatewayStatusApproved},
		{"all failed", []string{"rejected", "cancelled"}, interfaces.GatewayStatusRejected},
		{"in process", []string{"rejected", "in_process"}, interfaces.GatewayStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := aggregateStatus(tt.statuses); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNotificationURL(t *testing.T) {
	if got := notificationURL("", "p1"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	got := notificationURL("https://api.example.com/v1/payments/webhook?source=mp", "p 1")
	want := "https://api.example.com/v1/payments/webhook?external_reference=p+1&source=mp"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
