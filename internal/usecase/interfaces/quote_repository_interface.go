package interfaces

import (
	"context"
	"topspot/internal/domain/entities"
)

// IQuoteRepository abstracts persistence for Quote.
//
// Lookups return a zero Quote (empty ID) when nothing matches.
// TransitionState and CommitNegotiation are conditional writes and fail with
// a domain CONFLICT error when a precondition no longer holds.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByServiceID(ctx context.Context, serviceID string) ([]entities.Quote, error)
	ListByAuthorID(ctx context.Context, authorID string) ([]entities.Quote, error)
	TransitionState(ctx context.Context, t entities.QuoteTransition) (entities.Quote, error)
	CommitNegotiation(ctx context.Context, c entities.NegotiationCommit) error
}
