package payments

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"topspot/internal/config"
	"topspot/internal/usecase/interfaces"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

const mockCheckoutBaseURL = "https://sandbox.mercadopago.local/checkout/"

// MercadoPagoGateway opens hosted checkouts (preferences) and reads payment
// status back by external_reference, which is always our payment id.
type MercadoPagoGateway struct {
	preferences preference.Client
	payments    payment.Client
	settings    config.PaymentsConfig
	mockMode    bool
	logger      *zap.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(settings config.PaymentsConfig, logger *zap.Logger) (*MercadoPagoGateway, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("payment.gateway")

	if settings.Mock {
		logger.Info("mock mode enabled")
		return &MercadoPagoGateway{settings: settings, mockMode: true, logger: logger}, nil
	}

	if settings.AccessToken == "" {
		logger.Error("missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := mpconfig.New(settings.AccessToken)
	if err != nil {
		logger.Error("failed creating sdk config", zap.Error(err))
		return nil, err
	}
	logger.Info("Mercado Pago client initialized")

	return &MercadoPagoGateway{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		settings:    settings,
		logger:      logger,
	}, nil
}

func (g *MercadoPagoGateway) CreateCheckout(ctx context.Context, req interfaces.CheckoutRequest) (interfaces.CheckoutSession, error) {
	if g != nil && g.mockMode {
		g.logger.Info("mock checkout create", zap.String("payment_id", req.PaymentID))
		return interfaces.CheckoutSession{
			CheckoutURL: mockCheckoutBaseURL + url.PathEscape(req.PaymentID),
			ExternalID:  req.PaymentID,
		}, nil
	}
	if g == nil || g.preferences == nil {
		return interfaces.CheckoutSession{}, ErrMercadoPagoGatewayNotConfigured
	}

	log := g.logger.With(zap.String("payment_id", req.PaymentID), zap.String("service_id", req.ServiceID))
	log.Info("checkout create start", zap.String("amount", req.Amount.String()))

	metadata := make(map[string]any, len(req.Metadata))
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	body := preference.Request{
		ExternalReference: req.PaymentID,
		NotificationURL:   notificationURL(g.settings.NotificationURL, req.PaymentID),
		Metadata:          metadata,
		Items: []preference.ItemRequest{{
			ID:         req.ServiceID,
			Title:      req.Title,
			Quantity:   1,
			UnitPrice:  req.Amount.InexactFloat64(),
			CurrencyID: req.Currency,
		}},
	}
	if req.PayerEmail != "" {
		body.Payer = &preference.PayerRequest{Email: req.PayerEmail}
	}
	if g.settings.SuccessURL != "" || g.settings.FailureURL != "" || g.settings.PendingURL != "" {
		body.BackURLs = &preference.BackURLsRequest{
			Success: g.settings.SuccessURL,
			Failure: g.settings.FailureURL,
			Pending: g.settings.PendingURL,
		}
		if g.settings.SuccessURL != "" {
			body.AutoReturn = "approved"
		}
	}

	resp, err := g.preferences.Create(ctx, body)
	if err != nil {
		log.Error("sdk preference create failed", zap.Error(err))
		return interfaces.CheckoutSession{}, err
	}
	log.Info("checkout create success", zap.String("preference_id", resp.ID))

	return interfaces.CheckoutSession{
		CheckoutURL: resp.InitPoint,
		ExternalID:  req.PaymentID,
	}, nil
}

// GetStatus reports approved when any payment carrying the reference was
// approved, rejected when every attempt failed, and pending otherwise.
func (g *MercadoPagoGateway) GetStatus(ctx context.Context, externalID string) (interfaces.GatewayStatus, error) {
	if g != nil && g.mockMode {
		g.logger.Info("mock status lookup", zap.String("external_id", externalID))
		return interfaces.GatewayStatusApproved, nil
	}
	if g == nil || g.payments == nil {
		return "", ErrMercadoPagoGatewayNotConfigured
	}

	resp, err := g.payments.Search(ctx, payment.SearchRequest{
		Filters: map[string]string{"external_reference": externalID},
	})
	if err != nil {
		g.logger.Error("sdk payment search failed", zap.String("external_id", externalID), zap.Error(err))
		return "", err
	}

	statuses := make([]string, 0, len(resp.Results))
	for _, p := range resp.Results {
		statuses = append(statuses, p.Status)
	}
	status := aggregateStatus(statuses)
	g.logger.Info("status lookup", zap.String("external_id", externalID), zap.String("status", string(status)))
	return status, nil
}

func aggregateStatus(statuses []string) interfaces.GatewayStatus {
	if len(statuses) == 0 {
		return interfaces.GatewayStatusPending
	}
	rejected := 0
	for _, s := range statuses {
		switch strings.ToLower(s) {
		case "approved":
			return interfaces.GatewayStatusApproved
		case "rejected", "cancelled", "refunded", "charged_back":
			rejected++
		}
	}
	if rejected == len(statuses) {
		return interfaces.GatewayStatusRejected
	}
	return interfaces.GatewayStatusPending
}

// notificationURL tags the webhook with the payment reference so the callback
// can be matched without trusting its body.
func notificationURL(base, paymentID string) string {
	if base == "" {
		return ""
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("external_reference", paymentID)
	u.RawQuery = q.Encode()
	return u.String()
}
