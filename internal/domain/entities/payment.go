package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus tracks a checkout attempt.
//
// A pending payment whose checkout was replaced becomes superseded; settlement
// is still accepted for it because the gateway may capture funds regardless.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusSuperseded PaymentStatus = "superseded"
)

const PaymentMethodCheckout = "checkout"

// Payment is a checkout attempt tied to a service and its paying owner.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (service_id-index): service_id
//   - GSI (external_id-index): external_id
//
// ResumeApproval marks a payment started by a deferred quote approval;
// ApproverID is who asked for that approval.
type Payment struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	ServiceID         string          `json:"service_id"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	PaymentMethod     string          `json:"payment_method"`
	ExternalPaymentID string          `json:"external_payment_id"`
	CheckoutURL       string          `json:"checkout_url"`
	Status            PaymentStatus   `json:"status"`
	ResumeApproval    bool            `json:"resume_approval"`
	ApproverID        string          `json:"approver_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	SettledAt         time.Time       `json:"settled_at,omitempty"`
}

func (p Payment) Paid() bool {
	return p.Status == PaymentStatusPaid
}

// CheckoutHandle is what a caller needs to send the payer to the gateway.
type CheckoutHandle struct {
	PaymentID  string          `json:"payment_id"`
	ExternalID string          `json:"external_id"`
	URL        string          `json:"checkout_url"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
}

func (p Payment) Handle() CheckoutHandle {
	return CheckoutHandle{
		PaymentID:  p.ID,
		ExternalID: p.ExternalPaymentID,
		URL:        p.CheckoutURL,
		Amount:     p.Amount,
		Currency:   p.Currency,
	}
}
