package interfaces

import (
	"context"
	"topspot/internal/domain/entities"
)

// IServiceRepository abstracts persistence for Service.
//
// Update stores s only while the stored version equals expectedVersion;
// callers set s.Version to expectedVersion+1.

type IServiceRepository interface {
	Create(ctx context.Context, s entities.Service) (entities.Service, error)
	GetByID(ctx context.Context, id string) (entities.Service, error)
	Update(ctx context.Context, s entities.Service, expectedVersion int64) (entities.Service, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]entities.Service, error)
	ListByContractorID(ctx context.Context, contractorID string) ([]entities.Service, error)
	ListAll(ctx context.Context) ([]entities.Service, error)
}
