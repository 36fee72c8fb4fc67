package response

import (
	"time"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase"

	"github.com/shopspring/decimal"
)

type QuoteResponse struct {
	ID             string               `json:"id"`
	ServiceID      string               `json:"service_id"`
	AuthorID       string               `json:"author_id"`
	AuthorRole     string               `json:"author_role"`
	Description    string               `json:"description"`
	EstimatedCost  decimal.Decimal      `json:"estimated_cost"`
	Currency       string               `json:"currency"`
	Availability   AvailabilityResponse `json:"availability"`
	ApprovalState  string               `json:"approval_state"`
	CounterOfferOf string               `json:"counter_offer_of,omitempty"`
	DecidedBy      string               `json:"decided_by,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:             q.ID,
		ServiceID:      q.ServiceID,
		AuthorID:       q.AuthorID,
		AuthorRole:     string(q.AuthorRole),
		Description:    q.Description,
		EstimatedCost:  q.EstimatedCost,
		Currency:       q.Currency,
		Availability:   FromAvailability(q.Availability),
		ApprovalState:  string(q.ApprovalState),
		CounterOfferOf: q.CounterOfferOf,
		DecidedBy:      q.DecidedBy,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

func FromQuotes(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}

// ApprovalResponse is returned for applied and skipped approvals. A deferred
// approval is answered with 402 and a CheckoutResponse instead.
type ApprovalResponse struct {
	Status           string          `json:"status"`
	Quote            QuoteResponse   `json:"quote"`
	Service          ServiceResponse `json:"service"`
	DeclinedQuoteIDs []string        `json:"declined_quote_ids,omitempty"`
}

func FromApproval(r usecase.ApprovalResult) ApprovalResponse {
	return ApprovalResponse{
		Status:           string(r.Status),
		Quote:            FromQuote(r.Quote),
		Service:          FromService(r.Service),
		DeclinedQuoteIDs: r.Declined,
	}
}
