package response

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromUser_OmitsSecrets(t *testing.T) {
	u := entities.User{ID: "u-1", Email: "a@example.com", PasswordHash: "hash", ResetToken: "reset", VerificationToken: "verify", Role: entities.RoleOwner}
	b, err := json.Marshal(FromUser(u))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, secret := range []string{"hash", "reset", "verify"} {
		if strings.Contains(string(b), secret) {
			t.Fatalf("response leaks %q: %s", secret, b)
		}
	}
}

func TestFromService(t *testing.T) {
	from, _ := entities.ParseDate("2026-11-02")
	s := entities.Service{ID: "s-1", Amount: decimal.RequireFromString("1500.50"), Availability: entities.Availability{FromDate: from, FromTime: "09:00", ToTime: "10:00"}}
	res := FromService(s)
	if res.Media == nil || res.Availability.FromDate != "2026-11-02" || res.Availability.ToDate != "" {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestFromPayment(t *testing.T) {
	now := time.Now().UTC()
	pending := entities.Payment{ID: "p-1", Status: entities.PaymentStatusPending, CheckoutURL: "https://pay.example.com/1"}
	if res := FromPayment(pending); res.CheckoutURL == "" || res.SettledAt != nil {
		t.Fatalf("unexpected pending response: %+v", res)
	}
	paid := entities.Payment{ID: "p-1", Status: entities.PaymentStatusPaid, CheckoutURL: "https://pay.example.com/1", SettledAt: now}
	res := FromPayment(paid)
	if res.CheckoutURL != "" || res.SettledAt == nil || !res.SettledAt.Equal(now) {
		t.Fatalf("unexpected paid response: %+v", res)
	}
}

func TestFromGateResult(t *testing.T) {
	if res := FromGateResult(usecase.GateResult{Paid: true}); res.Code != "PAID" || !res.Paid {
		t.Fatalf("unexpected paid result: %+v", res)
	}
	h := &entities.CheckoutHandle{PaymentID: "p-1", URL: "https://pay.example.com/1", Amount: decimal.NewFromInt(10), Currency: "PHP"}
	res := FromGateResult(usecase.GateResult{Checkout: h})
	if res.Code != "CHECKOUT_OPEN" || res.CheckoutURL != h.URL || res.PaymentID != "p-1" {
		t.Fatalf("unexpected checkout result: %+v", res)
	}
}

func TestFromSettlement(t *testing.T) {
	resumed := &usecase.ApprovalResult{Status: usecase.ApprovalApplied, Quote: entities.Quote{ID: "q-1"}}
	res := FromSettlement(usecase.SettlementResult{Payment: entities.Payment{ID: "p-1"}, Settled: true, Resumed: resumed})
	if !res.Settled || res.Resumed == nil || res.Resumed.Quote.ID != "q-1" || res.Resumed.Status != "applied" {
		t.Fatalf("unexpected settlement: %+v", res)
	}
}
