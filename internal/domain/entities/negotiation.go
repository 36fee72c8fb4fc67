package entities

import "time"

// QuoteTransition is a compare-and-set on a quote's approval state.
type QuoteTransition struct {
	QuoteID string
	From    ApprovalState
	To      ApprovalState
	By      string
	At      time.Time
}

// NegotiationCommit is applied by the store as one atomic write: the service
// is replaced only if its stored version still equals ExpectedVersion, and
// every transition only if the quote is still in its From state.
type NegotiationCommit struct {
	Service         Service
	ExpectedVersion int64
	Transitions     []QuoteTransition
}
