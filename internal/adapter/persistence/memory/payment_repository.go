package memory

import (
	"context"
	"sort"
	"time"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase/interfaces"
)

type PaymentRepository struct{ s *Store }

var _ interfaces.IPaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) Create(_ context.Context, p entities.Payment) (entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.payments[p.ID]; ok {
		return entities.Payment{}, errDuplicateID
	}
	r.s.payments[p.ID] = p
	return p, nil
}

func (r *PaymentRepository) GetByID(_ context.Context, id string) (entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.payments[id], nil
}

func (r *PaymentRepository) GetByExternalID(_ context.Context, externalID string) (entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.ExternalPaymentID == externalID {
			return p, nil
		}
	}
	return entities.Payment{}, nil
}

func (r *PaymentRepository) ListByServiceID(_ context.Context, serviceID string) ([]entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entities.Payment{}
	for _, p := range r.s.payments {
		if p.ServiceID == serviceID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PaymentRepository) Update(_ context.Context, p entities.Payment, expected entities.PaymentStatus) (entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.payments[p.ID]
	if !ok || current.Status != expected {
		return entities.Payment{}, errPaymentConflict
	}
	r.s.payments[p.ID] = p
	return p, nil
}

func (r *PaymentRepository) Settle(_ context.Context, paymentID, serviceID string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.payments[paymentID]
	if !ok {
		return false, errPaymentConflict
	}
	if p.Status == entities.PaymentStatusPaid {
		return false, nil
	}
	sv, ok := r.s.services[serviceID]
	if !ok {
		return false, errVersionConflict
	}

	p.Status = entities.PaymentStatusPaid
	p.SettledAt = at
	p.UpdatedAt = at
	r.s.payments[paymentID] = p

	sv.Paid = true
	sv.Version++
	sv.UpdatedAt = at
	r.s.services[serviceID] = sv
	return true, nil
}
