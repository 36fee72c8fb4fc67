package interfaces

import (
	"context"
	"time"
	"topspot/internal/domain/entities"
)

// IPaymentRepository abstracts persistence for Payment.
//
// Update replaces a payment only while its stored status equals expected.
// Settle marks the payment paid and its service paid in one atomic write;
// it reports false, without error, when the payment was already paid.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByExternalID(ctx context.Context, externalID string) (entities.Payment, error)
	ListByServiceID(ctx context.Context, serviceID string) ([]entities.Payment, error)
	Update(ctx context.Context, p entities.Payment, expected entities.PaymentStatus) (entities.Payment, error)
	Settle(ctx context.Context, paymentID, serviceID string, at time.Time) (bool, error)
}
