package interfaces

import (
	"context"
	"topspot/internal/domain/entities"
)

// IUserRepository abstracts persistence for User. Create fails with a
// domain CONFLICT error when the email is already registered.

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByEmail(ctx context.Context, email string) (entities.User, error)
	Update(ctx context.Context, u entities.User) (entities.User, error)
	ListByRoles(ctx context.Context, roles ...entities.Role) ([]entities.User, error)
}
