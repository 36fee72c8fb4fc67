package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// SettlementResult reports what a gateway confirmation changed. Resumed is
// set only for the single call that settled a payment with a deferred
// approval.
type SettlementResult struct {
	Payment        entities.Payment `json:"payment"`
	Settled        bool             `json:"settled"`
	AlreadySettled bool             `json:"already_settled"`
	Resumed        *ApprovalResult  `json:"resumed,omitempty"`
}

// ISettlementUseCase handles gateway confirmation callbacks.
type ISettlementUseCase interface {
	ConfirmPayment(ctx context.Context, externalID string) (SettlementResult, error)
}

type SettlementUseCase struct {
	repo     interfaces.IPaymentRepository
	services interfaces.IServiceRepository
	gateway  interfaces.IPaymentGateway
	resumer  IApprovalResumer
	notify   notifier
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

var _ ISettlementUseCase = (*SettlementUseCase)(nil)

func NewSettlementUseCase(
	repo interfaces.IPaymentRepository,
	services interfaces.IServiceRepository,
	users interfaces.IUserRepository,
	gateway interfaces.IPaymentGateway,
	resumer IApprovalResumer,
	n interfaces.INotifier,
	timeout time.Duration,
	logger *zap.Logger,
) *SettlementUseCase {
	logger = orNop(logger)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SettlementUseCase{
		repo:     repo,
		services: services,
		gateway:  gateway,
		resumer:  resumer,
		notify:   notifier{target: n, users: users, logger: logger},
		timeout:  timeout,
		logger:   logger,
		now:      utcNow,
	}
}

// ConfirmPayment settles the payment identified by the gateway reference.
// The callback body is never trusted: the gateway is asked for the status.
// Repeated confirmations are no-ops and resume the approval at most once.
func (u *SettlementUseCase) ConfirmPayment(ctx context.Context, externalID string) (SettlementResult, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return SettlementResult{}, ErrPaymentNotFound
	}
	log := u.logger.With(zap.String("external_id", externalID))

	p, err := u.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return SettlementResult{}, err
	}
	if p.ID == "" {
		log.Warn("confirmation for unknown payment")
		return SettlementResult{}, ErrPaymentNotFound
	}
	if p.Paid() {
		log.Info("payment already settled", zap.String("payment_id", p.ID))
		return SettlementResult{Payment: p, AlreadySettled: true}, nil
	}

	if u.gateway == nil {
		return SettlementResult{}, ErrGatewayNotConfigured
	}
	gctx, cancel := context.WithTimeout(ctx, u.timeout)
	status, err := u.gateway.GetStatus(gctx, externalID)
	cancel()
	if err != nil {
		log.Error("gateway status lookup failed", zap.Error(err))
		return SettlementResult{}, gatewayError(err)
	}
	if status != interfaces.GatewayStatusApproved {
		log.Info("payment not settled at gateway", zap.String("status", string(status)))
		return SettlementResult{}, ErrPaymentNotSettled
	}

	// A superseded checkout still settles, but only the live one resumes.
	resume := p.ResumeApproval && p.Status == entities.PaymentStatusPending
	paid := p.Amount

	settled, err := u.repo.Settle(ctx, p.ID, p.ServiceID, u.now())
	if err != nil {
		log.Error("settle failed", zap.String("payment_id", p.ID), zap.Error(err))
		return SettlementResult{}, err
	}
	if current, err := u.repo.GetByID(ctx, p.ID); err == nil && current.ID != "" {
		p = current
	}
	if !settled {
		log.Info("payment settled by a concurrent confirmation", zap.String("payment_id", p.ID))
		return SettlementResult{Payment: p, AlreadySettled: true}, nil
	}

	log.Info("payment settled", zap.String("payment_id", p.ID), zap.String("service_id", p.ServiceID))
	u.notify.send(ctx, "Payment received",
		fmt.Sprintf("We received your payment of %s %s.", p.Amount.StringFixed(2), p.Currency),
		p.UserID)

	res := SettlementResult{Payment: p, Settled: true}
	if resume && u.resumer != nil {
		resumed, err := u.resumer.ResumeApproval(ctx, p.ServiceID, p.ApproverID, paid)
		if err != nil {
			// The payment stays settled; the approval can be repeated by hand.
			log.Warn("approval resume failed", zap.String("service_id", p.ServiceID), zap.Error(err))
			return res, nil
		}
		res.Resumed = &resumed
	}
	return res, nil
}
