package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalState is the state of a quote: pending -> approved | declined.
// Approved and declined quotes never change again.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
	ApprovalDeclined ApprovalState = "declined"
)

var quoteTransitions = map[ApprovalState][]ApprovalState{
	ApprovalPending: {ApprovalApproved, ApprovalDeclined},
}

func (s ApprovalState) CanTransitionTo(next ApprovalState) bool {
	for _, allowed := range quoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ApprovalState) IsFinal() bool {
	return s == ApprovalApproved || s == ApprovalDeclined
}

// Quote is a priced proposal against a service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (service_id-index): service_id
//   - GSI (author_id-index): author_id
//
// AuthorRole is captured at creation so contractor binding does not depend
// on the author's current role.
type Quote struct {
	ID             string          `json:"id"`
	ServiceID      string          `json:"service_id"`
	AuthorID       string          `json:"author_id"`
	AuthorRole     Role            `json:"author_role"`
	Description    string          `json:"description"`
	EstimatedCost  decimal.Decimal `json:"estimated_cost"`
	Currency       string          `json:"currency"`
	Availability   Availability    `json:"availability"`
	ApprovalState  ApprovalState   `json:"approval_state"`
	CounterOfferOf string          `json:"counter_offer_of,omitempty"`
	DecidedBy      string          `json:"decided_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (q Quote) AuthoredByContractor() bool {
	return q.AuthorRole == RoleContractor
}
