package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"topspot/internal/adapter/http/dto/request"
	"topspot/internal/domain"
	"topspot/internal/usecase"
)

func TestMapDomainError(t *testing.T) {
	timeout := &domain.Error{Kind: domain.KindPaymentGateway, Code: "PAYMENT_GATEWAY_TIMEOUT", Message: "timed out", Retryable: true, Err: context.DeadlineExceeded}

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", usecase.ErrQuoteNotFound, http.StatusNotFound, "QUOTE_NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("load: %w", usecase.ErrServiceNotFound), http.StatusNotFound, "SERVICE_NOT_FOUND"},
		{"not authorized", domain.ErrNotAuthorized, http.StatusForbidden, "NOT_AUTHORIZED"},
		{"bad credentials", usecase.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"self approval", domain.ErrSelfApproval, http.StatusForbidden, "SELF_APPROVAL_FORBIDDEN"},
		{"invalid input", domain.Invalid("description is required"), http.StatusBadRequest, "INVALID_INPUT"},
		{"invalid date", request.ErrInvalidDate, http.StatusBadRequest, "INVALID_DATE"},
		{"invalid transition", usecase.ErrQuoteNotPending, http.StatusConflict, "QUOTE_NOT_PENDING"},
		{"conflict", usecase.ErrContractorMismatch, http.StatusConflict, "CONTRACTOR_MISMATCH"},
		{"payment required", domain.ErrPaymentRequired, http.StatusPaymentRequired, "PAYMENT_REQUIRED"},
		{"gateway error", usecase.ErrGatewayNotConfigured, http.StatusBadGateway, "PAYMENT_GATEWAY_NOT_CONFIGURED"},
		{"gateway timeout", timeout, http.StatusGatewayTimeout, "PAYMENT_GATEWAY_TIMEOUT"},
		{"unauthenticated", usecase.ErrSessionInvalid, http.StatusUnauthorized, "SESSION_INVALID"},
		{"internal domain", usecase.ErrMediaStoreNotConfigured, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := mapDomainError(tc.err)
			if appErr.HTTPStatus != tc.status || appErr.Code != tc.code {
				t.Fatalf("expected %d %s, got %d %s", tc.status, tc.code, appErr.HTTPStatus, appErr.Code)
			}
		})
	}

	t.Run("timeout is marked retryable", func(t *testing.T) {
		body := mapDomainError(timeout).ToHTTPError()
		if body.Details["retryable"] != true {
			t.Fatalf("expected retryable detail, got %+v", body.Details)
		}
	})
}
