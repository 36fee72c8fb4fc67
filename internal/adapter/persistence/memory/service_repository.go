package memory

import (
	"context"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase/interfaces"
)

type ServiceRepository struct{ s *Store }

var _ interfaces.IServiceRepository = (*ServiceRepository)(nil)

func (r *ServiceRepository) Create(_ context.Context, sv entities.Service) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.services[sv.ID]; ok {
		return entities.Service{}, errDuplicateID
	}
	r.s.services[sv.ID] = cloneService(sv)
	return sv, nil
}

func (r *ServiceRepository) GetByID(_ context.Context, id string) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return cloneService(r.s.services[id]), nil
}

func (r *ServiceRepository) Update(_ context.Context, sv entities.Service, expectedVersion int64) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.services[sv.ID]
	if !ok || current.Version != expectedVersion {
		return entities.Service{}, errVersionConflict
	}
	r.s.services[sv.ID] = cloneService(sv)
	return sv, nil
}

func (r *ServiceRepository) ListByOwnerID(_ context.Context, ownerID string) ([]entities.Service, error) {
	return r.filter(func(sv entities.Service) bool { return sv.OwnerID == ownerID }), nil
}

func (r *ServiceRepository) ListByContractorID(_ context.Context, contractorID string) ([]entities.Service, error) {
	return r.filter(func(sv entities.Service) bool { return sv.ContractorID == contractorID }), nil
}

func (r *ServiceRepository) ListAll(_ context.Context) ([]entities.Service, error) {
	return r.filter(func(entities.Service) bool { return true }), nil
}

func (r *ServiceRepository) filter(keep func(entities.Service) bool) []entities.Service {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entities.Service{}
	for _, sv := range r.s.services {
		if keep(sv) {
			out = append(out, cloneService(sv))
		}
	}
	newestFirstServices(out)
	return out
}
