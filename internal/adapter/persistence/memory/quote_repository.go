package memory

import (
	"context"
	"sort"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase/interfaces"
)

type QuoteRepository struct{ s *Store }

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func (r *QuoteRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.quotes[q.ID]; ok {
		return entities.Quote{}, errDuplicateID
	}
	r.s.quotes[q.ID] = q
	return q, nil
}

func (r *QuoteRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.quotes[id], nil
}

func (r *QuoteRepository) ListByServiceID(_ context.Context, serviceID string) ([]entities.Quote, error) {
	return r.filter(func(q entities.Quote) bool { return q.ServiceID == serviceID }), nil
}

func (r *QuoteRepository) ListByAuthorID(_ context.Context, authorID string) ([]entities.Quote, error) {
	return r.filter(func(q entities.Quote) bool { return q.AuthorID == authorID }), nil
}

func (r *QuoteRepository) TransitionState(_ context.Context, t entities.QuoteTransition) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quotes[t.QuoteID]
	if !ok || q.ApprovalState != t.From {
		return entities.Quote{}, errStateConflict
	}
	q = applyTransition(q, t)
	r.s.quotes[q.ID] = q
	return q, nil
}

// CommitNegotiation validates every precondition before writing anything.
func (r *QuoteRepository) CommitNegotiation(_ context.Context, c entities.NegotiationCommit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.services[c.Service.ID]
	if !ok || current.Version != c.ExpectedVersion {
		return errVersionConflict
	}
	for _, t := range c.Transitions {
		q, ok := r.s.quotes[t.QuoteID]
		if !ok || q.ApprovalState != t.From {
			return errStateConflict
		}
	}

	r.s.services[c.Service.ID] = cloneService(c.Service)
	for _, t := range c.Transitions {
		r.s.quotes[t.QuoteID] = applyTransition(r.s.quotes[t.QuoteID], t)
	}
	return nil
}

func (r *QuoteRepository) filter(keep func(entities.Quote) bool) []entities.Quote {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entities.Quote{}
	for _, q := range r.s.quotes {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func applyTransition(q entities.Quote, t entities.QuoteTransition) entities.Quote {
	q.ApprovalState = t.To
	q.DecidedBy = t.By
	q.UpdatedAt = t.At
	return q
}
