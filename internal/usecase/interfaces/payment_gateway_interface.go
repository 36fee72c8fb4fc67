package interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

// CheckoutRequest describes a hosted checkout to open with the provider.
type CheckoutRequest struct {
	PaymentID  string
	ServiceID  string
	Title      string
	Amount     decimal.Decimal
	Currency   string
	PayerEmail string
	Metadata   map[string]string
}

// CheckoutSession is the provider's answer. Both fields are untrusted.
type CheckoutSession struct {
	CheckoutURL string
	ExternalID  string
}

type GatewayStatus string

const (
	GatewayStatusPending  GatewayStatus = "pending"
	GatewayStatusApproved GatewayStatus = "approved"
	GatewayStatusRejected GatewayStatus = "rejected"
)

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
type IPaymentGateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
	GetStatus(ctx context.Context, externalID string) (GatewayStatus, error)
}
