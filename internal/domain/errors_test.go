package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestError_IsMatchesKindSentinel(t *testing.T) {
	errQuoteNotFound := New(KindNotFound, "QUOTE_NOT_FOUND", "quote not found")

	if !errors.Is(errQuoteNotFound, ErrNotFound) {
		t.Fatalf("coded error must match its kind sentinel")
	}
	if errors.Is(errQuoteNotFound, ErrConflict) {
		t.Fatalf("coded error must not match another kind")
	}

	wrapped := fmt.Errorf("load: %w", errQuoteNotFound)
	if !errors.Is(wrapped, errQuoteNotFound) || !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("wrapped error must match identity and kind")
	}

	other := New(KindNotFound, "SERVICE_NOT_FOUND", "service not found")
	if errors.Is(other, errQuoteNotFound) {
		t.Fatalf("distinct coded errors must not match each other")
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	err := Wrap(KindPaymentGateway, "PAYMENT_GATEWAY_TIMEOUT", "gateway timed out", context.DeadlineExceeded)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected cause in chain")
	}
	if KindOf(err) != KindPaymentGateway {
		t.Fatalf("unexpected kind %s", KindOf(err))
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatalf("unclassified errors must be internal")
	}
	de, ok := As(fmt.Errorf("x: %w", err))
	if !ok || de.Code != "PAYMENT_GATEWAY_TIMEOUT" {
		t.Fatalf("expected As to find the domain error, got %v", de)
	}
}
