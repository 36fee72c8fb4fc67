package usecase

import (
	"context"
	"errors"

	"topspot/internal/domain"
)

var (
	ErrUserNotFound    = domain.New(domain.KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrServiceNotFound = domain.New(domain.KindNotFound, "SERVICE_NOT_FOUND", "service not found")
	ErrQuoteNotFound   = domain.New(domain.KindNotFound, "QUOTE_NOT_FOUND", "quote not found")
	ErrPaymentNotFound = domain.New(domain.KindNotFound, "PAYMENT_NOT_FOUND", "payment not found")
	ErrCheckoutMissing = domain.New(domain.KindNotFound, "CHECKOUT_NOT_FOUND", "no open checkout for this service")

	ErrQuoteNotPending      = domain.New(domain.KindInvalidTransition, "QUOTE_NOT_PENDING", "quote is no longer pending")
	ErrServiceClosed        = domain.New(domain.KindInvalidTransition, "SERVICE_CLOSED", "service is completed or cancelled")
	ErrServiceNotOngoing    = domain.New(domain.KindInvalidTransition, "SERVICE_NOT_ONGOING", "only ongoing services can be completed")
	ErrServiceNotEditable   = domain.New(domain.KindInvalidTransition, "SERVICE_NOT_EDITABLE", "service can only be edited while pending and unassigned")
	ErrNoContractorAssigned = domain.New(domain.KindInvalidTransition, "NO_CONTRACTOR_ASSIGNED", "service has no contractor to disapprove")

	ErrQuoteAlreadyDecided = domain.New(domain.KindConflict, "QUOTE_ALREADY_DECIDED", "quote already reached this state")
	ErrContractorMismatch  = domain.New(domain.KindConflict, "CONTRACTOR_MISMATCH", "service is bound to a different contractor")
	ErrEmailTaken          = domain.New(domain.KindConflict, "EMAIL_ALREADY_REGISTERED", "email already registered")

	ErrContractorNotActive = domain.New(domain.KindInvalidInput, "CONTRACTOR_NOT_ACTIVE", "contractor account is not active")
	ErrPaymentNotSettled   = domain.New(domain.KindInvalidInput, "PAYMENT_NOT_SETTLED", "payment gateway has not settled this payment")
	ErrInvalidToken        = domain.New(domain.KindInvalidInput, "INVALID_TOKEN", "token is invalid or expired")

	ErrInvalidCredentials     = domain.New(domain.KindNotAuthorized, "INVALID_CREDENTIALS", "invalid email or password")
	ErrAccountNotVerified     = domain.New(domain.KindNotAuthorized, "ACCOUNT_NOT_VERIFIED", "account email is not verified; a new verification email was sent")
	ErrAccountNotActive       = domain.New(domain.KindNotAuthorized, "ACCOUNT_NOT_ACTIVE", "contractor account is not active")
	ErrAccountPendingApproval = domain.New(domain.KindNotAuthorized, "ACCOUNT_PENDING_APPROVAL", "account is awaiting admin verification")
	ErrSessionInvalid         = domain.New(domain.KindUnauthenticated, "SESSION_INVALID", "session is invalid or expired")

	ErrGatewayNotConfigured    = domain.New(domain.KindPaymentGateway, "PAYMENT_GATEWAY_NOT_CONFIGURED", "payment gateway not configured")
	ErrMediaStoreNotConfigured = domain.New(domain.KindInternal, "MEDIA_STORE_NOT_CONFIGURED", "media store not configured")
)

// gatewayError classifies a payment provider failure. Timeouts are retryable.
func gatewayError(err error) error {
	if _, ok := domain.As(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.Error{
			Kind:      domain.KindPaymentGateway,
			Code:      "PAYMENT_GATEWAY_TIMEOUT",
			Message:   "payment gateway timed out; retry later",
			Retryable: true,
			Err:       err,
		}
	}
	return domain.Wrap(domain.KindPaymentGateway, "PAYMENT_GATEWAY_ERROR", "payment gateway request failed", err)
}
