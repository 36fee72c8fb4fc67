package response

import (
	"time"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase"

	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	PaymentID         string          `json:"payment_id"`
	ServiceID         string          `json:"service_id"`
	UserID            string          `json:"user_id"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	PaymentMethod     string          `json:"payment_method"`
	ExternalPaymentID string          `json:"external_payment_id"`
	CheckoutURL       string          `json:"checkout_url,omitempty"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	SettledAt         *time.Time      `json:"settled_at,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	res := PaymentResponse{
		PaymentID:         p.ID,
		ServiceID:         p.ServiceID,
		UserID:            p.UserID,
		Amount:            p.Amount,
		Currency:          p.Currency,
		PaymentMethod:     p.PaymentMethod,
		ExternalPaymentID: p.ExternalPaymentID,
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt,
	}
	if p.Status == entities.PaymentStatusPending {
		res.CheckoutURL = p.CheckoutURL
	}
	if !p.SettledAt.IsZero() {
		at := p.SettledAt
		res.SettledAt = &at
	}
	return res
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}

// CheckoutResponse tells the payer where to complete a payment.
type CheckoutResponse struct {
	Code        string          `json:"code"`
	Message     string          `json:"message"`
	Paid        bool            `json:"paid"`
	PaymentID   string          `json:"payment_id,omitempty"`
	ExternalID  string          `json:"external_id,omitempty"`
	CheckoutURL string          `json:"checkout_url,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
}

func FromCheckout(h entities.CheckoutHandle) CheckoutResponse {
	return CheckoutResponse{
		Code:        "PAYMENT_REQUIRED",
		Message:     "Payment is required before this action can be applied",
		PaymentID:   h.PaymentID,
		ExternalID:  h.ExternalID,
		CheckoutURL: h.URL,
		Amount:      h.Amount,
		Currency:    h.Currency,
	}
}

func FromGateResult(r usecase.GateResult) CheckoutResponse {
	if r.Checkout == nil {
		return CheckoutResponse{Code: "PAID", Message: "Service is already paid", Paid: r.Paid}
	}
	res := FromCheckout(*r.Checkout)
	res.Code = "CHECKOUT_OPEN"
	res.Message = "Complete the payment at checkout_url"
	return res
}

type SettlementResponse struct {
	Payment        PaymentResponse   `json:"payment"`
	Settled        bool              `json:"settled"`
	AlreadySettled bool              `json:"already_settled"`
	Resumed        *ApprovalResponse `json:"resumed_approval,omitempty"`
}

func FromSettlement(r usecase.SettlementResult) SettlementResponse {
	res := SettlementResponse{
		Payment:        FromPayment(r.Payment),
		Settled:        r.Settled,
		AlreadySettled: r.AlreadySettled,
	}
	if r.Resumed != nil {
		a := FromApproval(*r.Resumed)
		res.Resumed = &a
	}
	return res
}
