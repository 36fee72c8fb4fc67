package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"topspot/internal/domain"
	"topspot/internal/domain/entities"
	"topspot/internal/domain/policy"
	"topspot/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ChargeRequest asks the gate to make sure Service is paid for Amount.
// ResumeApproval records that a quote approval by ApproverID waits on it.
type ChargeRequest struct {
	Service        entities.Service
	Amount         decimal.Decimal
	Title          string
	ResumeApproval bool
	ApproverID     string
}

// GateResult is either Paid or carries the checkout the payer must complete.
type GateResult struct {
	Paid     bool                     `json:"paid"`
	Checkout *entities.CheckoutHandle `json:"checkout,omitempty"`
}

type PaymentSettings struct {
	Currency string
	Timeout  time.Duration
}

// IPaymentGate is the slice of the payment use case the negotiation engine needs.
type IPaymentGate interface {
	EnsurePaid(ctx context.Context, actor entities.User, req ChargeRequest) (GateResult, error)
}

// IPaymentUseCase exposes checkout operations.
//
//   - EnsurePaid => payment gate consulted by quote approval
//   - InitiateCheckout => owner "make payment" for the service amount
//   - CancelCheckout => owner abandons the open checkout
type IPaymentUseCase interface {
	IPaymentGate
	InitiateCheckout(ctx context.Context, actor entities.User, serviceID string) (GateResult, error)
	CancelCheckout(ctx context.Context, actor entities.User, serviceID string) (entities.Payment, error)
	ListServicePayments(ctx context.Context, actor entities.User, serviceID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo     interfaces.IPaymentRepository
	services interfaces.IServiceRepository
	users    interfaces.IUserRepository
	gateway  interfaces.IPaymentGateway
	locker   interfaces.ILocker
	notify   notifier
	settings PaymentSettings
	logger   *zap.Logger
	now      func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	repo interfaces.IPaymentRepository,
	services interfaces.IServiceRepository,
	users interfaces.IUserRepository,
	gateway interfaces.IPaymentGateway,
	n interfaces.INotifier,
	locker interfaces.ILocker,
	settings PaymentSettings,
	logger *zap.Logger,
) *PaymentUseCase {
	logger = orNop(logger)
	if settings.Currency == "" {
		settings.Currency = entities.DefaultCurrency
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 10 * time.Second
	}
	return &PaymentUseCase{
		repo:     repo,
		services: services,
		users:    users,
		gateway:  gateway,
		locker:   locker,
		notify:   notifier{target: n, users: users, logger: logger},
		settings: settings,
		logger:   logger,
		now:      utcNow,
	}
}

// EnsurePaid returns Paid for a paid service. Otherwise it reuses the open
// checkout when it still matches the charge, or opens a new one and
// supersedes the old. The gateway is called before anything is persisted.
func (u *PaymentUseCase) EnsurePaid(ctx context.Context, actor entities.User, req ChargeRequest) (GateResult, error) {
	svc := req.Service
	log := u.logger.With(zap.String("service_id", svc.ID), zap.String("actor_id", actor.ID))

	if svc.Paid {
		return GateResult{Paid: true}, nil
	}
	if !req.Amount.IsPositive() {
		return GateResult{}, domain.Invalid("charge amount must be greater than zero")
	}
	currency := svc.Currency
	if currency == "" {
		currency = u.settings.Currency
	}

	payments, err := u.repo.ListByServiceID(ctx, svc.ID)
	if err != nil {
		return GateResult{}, err
	}
	sortPaymentsNewestFirst(payments)

	var open entities.Payment
	for _, p := range payments {
		if p.Status == entities.PaymentStatusPaid {
			// Settled but the service write has not been observed yet.
			return GateResult{Paid: true}, nil
		}
		if p.Status == entities.PaymentStatusPending && open.ID == "" {
			open = p
		}
	}

	if open.ID != "" && open.CheckoutURL != "" && open.Currency == currency && open.Amount.Equal(req.Amount) {
		if req.ResumeApproval && (!open.ResumeApproval || open.ApproverID != req.ApproverID) {
			updated := open
			updated.ResumeApproval = true
			updated.ApproverID = req.ApproverID
			updated.UpdatedAt = u.now()
			if open, err = u.repo.Update(ctx, updated, entities.PaymentStatusPending); err != nil {
				return GateResult{}, err
			}
		}
		log.Info("checkout reused", zap.String("payment_id", open.ID))
		h := open.Handle()
		return GateResult{Checkout: &h}, nil
	}

	if u.gateway == nil {
		log.Error("payment gateway not configured")
		return GateResult{}, ErrGatewayNotConfigured
	}

	paymentID := uuid.NewString()
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = fmt.Sprintf("Service %s", svc.ID)
	}
	payerEmail := ""
	if owner, err := u.users.GetByID(ctx, svc.OwnerID); err == nil {
		payerEmail = owner.Email
	}

	log.Info("checkout create start", zap.String("payment_id", paymentID), zap.String("amount", req.Amount.String()))
	gctx, cancel := context.WithTimeout(ctx, u.settings.Timeout)
	session, err := u.gateway.CreateCheckout(gctx, interfaces.CheckoutRequest{
		PaymentID:  paymentID,
		ServiceID:  svc.ID,
		Title:      title,
		Amount:     req.Amount,
		Currency:   currency,
		PayerEmail: payerEmail,
		Metadata: map[string]string{
			"service_id": svc.ID,
			"payment_id": paymentID,
		},
	})
	cancel()
	if err != nil {
		log.Error("checkout create failed", zap.Error(err))
		return GateResult{}, gatewayError(err)
	}
	if err := validateSession(session); err != nil {
		log.Error("checkout response rejected", zap.Error(err))
		return GateResult{}, err
	}

	now := u.now()
	p := entities.Payment{
		ID:                paymentID,
		UserID:            svc.OwnerID,
		ServiceID:         svc.ID,
		Amount:            req.Amount,
		Currency:          currency,
		PaymentMethod:     entities.PaymentMethodCheckout,
		ExternalPaymentID: session.ExternalID,
		CheckoutURL:       session.CheckoutURL,
		Status:            entities.PaymentStatusPending,
		ResumeApproval:    req.ResumeApproval || open.ResumeApproval,
		ApproverID:        open.ApproverID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if req.ResumeApproval {
		p.ApproverID = req.ApproverID
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Error("payment create failed", zap.String("payment_id", p.ID), zap.Error(err))
		return GateResult{}, err
	}

	if open.ID != "" {
		superseded := open
		superseded.Status = entities.PaymentStatusSuperseded
		superseded.ResumeApproval = false
		superseded.UpdatedAt = now
		if _, err := u.repo.Update(ctx, superseded, entities.PaymentStatusPending); err != nil {
			log.Warn("supersede previous checkout failed", zap.String("payment_id", open.ID), zap.Error(err))
		}
	}

	log.Info("checkout create success", zap.String("payment_id", created.ID), zap.String("external_id", created.ExternalPaymentID))
	u.notify.send(ctx, "Payment required",
		fmt.Sprintf("Please complete the payment of %s %s for \"%s\": %s", created.Amount.StringFixed(2), created.Currency, title, created.CheckoutURL),
		svc.OwnerID)

	h := created.Handle()
	return GateResult{Checkout: &h}, nil
}

func (u *PaymentUseCase) InitiateCheckout(ctx context.Context, actor entities.User, serviceID string) (GateResult, error) {
	svc, err := loadService(ctx, u.services, serviceID)
	if err != nil {
		return GateResult{}, err
	}
	if err := policy.Authorize(actor, policy.ActionInitiateCheckout, policy.Target{Service: &svc}); err != nil {
		return GateResult{}, err
	}

	unlock, err := lockService(ctx, u.locker, svc.ID)
	if err != nil {
		return GateResult{}, err
	}
	defer unlock()

	if svc, err = loadService(ctx, u.services, svc.ID); err != nil {
		return GateResult{}, err
	}
	if svc.Status.IsTerminal() {
		return GateResult{}, ErrServiceClosed
	}
	return u.EnsurePaid(ctx, actor, ChargeRequest{Service: svc, Amount: svc.Amount, Title: svc.Name})
}

func (u *PaymentUseCase) CancelCheckout(ctx context.Context, actor entities.User, serviceID string) (entities.Payment, error) {
	svc, err := loadService(ctx, u.services, serviceID)
	if err != nil {
		return entities.Payment{}, err
	}
	if err := policy.Authorize(actor, policy.ActionCancelCheckout, policy.Target{Service: &svc}); err != nil {
		return entities.Payment{}, err
	}

	payments, err := u.repo.ListByServiceID(ctx, svc.ID)
	if err != nil {
		return entities.Payment{}, err
	}
	sortPaymentsNewestFirst(payments)
	for _, p := range payments {
		if p.Status != entities.PaymentStatusPending {
			continue
		}
		p.Status = entities.PaymentStatusSuperseded
		p.ResumeApproval = false
		p.UpdatedAt = u.now()
		updated, err := u.repo.Update(ctx, p, entities.PaymentStatusPending)
		if err != nil {
			return entities.Payment{}, err
		}
		u.logger.Info("checkout cancelled", zap.String("service_id", svc.ID), zap.String("payment_id", p.ID))
		return updated, nil
	}
	return entities.Payment{}, ErrCheckoutMissing
}

func (u *PaymentUseCase) ListServicePayments(ctx context.Context, actor entities.User, serviceID string) ([]entities.Payment, error) {
	svc, err := loadService(ctx, u.services, serviceID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionViewServicePayments, policy.Target{Service: &svc}); err != nil {
		return nil, err
	}
	payments, err := u.repo.ListByServiceID(ctx, svc.ID)
	if err != nil {
		return nil, err
	}
	sortPaymentsNewestFirst(payments)
	return payments, nil
}

// validateSession treats the provider answer as untrusted input.
func validateSession(s interfaces.CheckoutSession) error {
	invalid := func(msg string) error {
		return domain.New(domain.KindPaymentGateway, "PAYMENT_GATEWAY_INVALID_RESPONSE", msg)
	}
	id := strings.TrimSpace(s.ExternalID)
	if id == "" || len(id) > 256 || strings.ContainsAny(id, " \t\r\n") {
		return invalid("payment gateway returned an invalid reference")
	}
	u, err := url.Parse(strings.TrimSpace(s.CheckoutURL))
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return invalid("payment gateway returned an invalid checkout url")
	}
	return nil
}
