package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"topspot/internal/domain"
	"topspot/internal/domain/entities"
	"topspot/internal/usecase/interfaces"
	mock_interfaces "topspot/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type paymentMocks struct {
	repo     *mock_interfaces.MockIPaymentRepository
	services *mock_interfaces.MockIServiceRepository
	users    *mock_interfaces.MockIUserRepository
	gateway  *mock_interfaces.MockIPaymentGateway
}

func newPaymentUseCase(t *testing.T) (*PaymentUseCase, paymentMocks) {
	ctrl := gomock.NewController(t)
	m := paymentMocks{
		repo:     mock_interfaces.NewMockIPaymentRepository(ctrl),
		services: mock_interfaces.NewMockIServiceRepository(ctrl),
		users:    mock_interfaces.NewMockIUserRepository(ctrl),
		gateway:  mock_interfaces.NewMockIPaymentGateway(ctrl),
	}
	uc := NewPaymentUseCase(m.repo, m.services, m.users, m.gateway, nil, nil, PaymentSettings{Timeout: time.Second}, nil)
	return uc, m
}

var payOwner = entities.User{ID: "owner-1", Role: entities.RoleOwner, Email: "owner@example.com"}

func unpaidService() entities.Service {
	return entities.Service{
		ID:       "svc-1",
		OwnerID:  payOwner.ID,
		Name:     "Fix sink",
		Amount:   decimal.NewFromInt(100),
		Currency: "PHP",
		Status:   entities.ServiceStatusPending,
		Version:  1,
	}
}

func TestPaymentUseCase_EnsurePaid(t *testing.T) {
	ctx := context.Background()

	t.Run("paid service short circuits", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil, nil, PaymentSettings{}, nil)
		svc := unpaidService()
		svc.Paid = true
		res, err := uc.EnsurePaid(ctx, payOwner, ChargeRequest{Service: svc, Amount: decimal.NewFromInt(100)})
		if err != nil || !res.Paid || res.Checkout != nil {
			t.Fatalf("expected paid, got %+v %v", res, err)
		}
	})

	t.Run("amount must be positive", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil, nil, PaymentSettings{}, nil)
		_, err := uc.EnsurePaid(ctx, payOwner, ChargeRequest{Service: unpaidService(), Amount: decimal.Zero})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected invalid input, got %v", err)
		}
	})

	t.Run("settled payment counts as paid", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		m.repo.EXPECT().ListByServiceID(gomock.Any(), "svc-1").Return([]entities.Payment{{ID: "p-1", Status: entities.PaymentStatusPaid}}, nil)

		res, err := uc.EnsurePaid(ctx, payOwner, ChargeRequest{Service: unpaidService(), Amount: decimal.NewFromInt(100)})
		if err != nil || !res.Paid {
			t.Fatalf("expected paid, got %+v %v", res, err)
		}
	})

	t.Run("reuses matching pending checkout", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		open := entities.Payment{
			ID: "p-1", ServiceID: "svc-1", Amount: decimal.NewFromInt(100), Currency: "PHP",
			CheckoutURL: "https://pay.example.com/p-1", ExternalPaymentID: "ext-1", Status: entities.PaymentStatusPending,
		}
		m.repo.EXPECT().ListByServiceID(gomock.Any(), "svc-1").Return([]entities.Payment{open}, nil)

		res, err := uc.EnsurePaid(ctx, payOwner, ChargeRequest{Service: unpaidService(), Amount: decimal.NewFromInt(100)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Paid || res.Checkout == nil || res.Checkout.PaymentID != "p-1" || res.Checkout.URL != open.CheckoutURL {
			t.Fatalf("expected reused checkout, got %+v", res)
		}
	})

	t.Run("reuse records the deferred approval", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		open := entities.Payment{
			ID: "p-1", ServiceID: "svc-1", Amount: decimal.NewFromInt(100), Currency: "PHP",
			CheckoutURL: "https://pay.example.com/p-1", ExternalPaymentID: "ext-1", Status: entities.PaymentStatusPending,
		}
		m.repo.EXPECT().ListByServiceID(gomock.Any(), "svc-1").Return([]entities.Payment{open}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusPending).DoAndReturn(
			func(_ context.Context, p entities.Payment, _ entities.PaymentStatus) (entities.Payment, error) {
				if !p.ResumeApproval || p.ApproverID != payOwner.ID {
					t.Fatalf("expected resume flags, got %+v", p)
				}
				return p, nil
			},
		)

		_, err := uc.EnsurePaid(ctx, payOwner, ChargeRequest{Service: unpaidService(), Amount: decimal.NewFromInt(100), ResumeApproval: true, ApproverID: payOwner.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("new checkout supersedes stale pending payment", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		stale := entities.Payment{
			ID: "p-old", ServiceID: "svc-1", Amount: decimal.NewFromInt(80), Currency: "PHP",
			CheckoutURL: "https://pay.example.com/old", ExternalPaymentID: "ext-old", Status: entities.PaymentStatusPending,
			ResumeApproval: true, ApproverID: "someone",
		}
		m.repo.EXPECT().ListByServiceID(gomock.Any(), "svc-1").Return([]entities.Payment{stale}, nil)
		m.users.EXPECT().GetByID(gomock.Any(), payOwner.ID).Return(payOwner, nil)
		m.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, req interfaces.CheckoutRequest) (interfaces.CheckoutSession, error) {
				if _, ok := ctx.Deadline(); !ok {
					t.Fatalf("expected bounded gateway call")
				}
				if !req.Amount.Equal(decimal.NewFromInt(100)) || req.PayerEmail != payOwner.Email || req.PaymentID == "" {
					t.Fatalf("unexpected request: %+v", req)
				}
				return interfaces.CheckoutSession{CheckoutURL: "https://pay.example.com/new", ExternalID: "ext-new"}, nil
			},
		)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.Status != entities.PaymentStatusPending || p.UserID != payOwner.ID || p.ExternalPaymentID != "ext-new" {
					t.Fatalf("unexpected payment: %+v", p)
				}
				if !p.ResumeApproval || p.ApproverID != "someone" {
					t.Fatalf("expected resume flags carried over, got %+v", p)
				}
				return p, nil
			},
		)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusPending).DoAndReturn(
			func(_ context.Context, p entities.Payment, _ entities.PaymentStatus) (entities.Payment, error) {
				if p.ID != "p-old" || p.Status != entities.PaymentStatusSuperseded {
					t.Fatalf("expected stale payment superseded, got %+v", p)
				}
				return p, nil
			},
		)

		res, err := uc.EnsurePaid(ctx, payOwner, ChargeRequest{Service: unpaidService(), Amount: decimal.NewFromInt(100)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Checkout == nil || res.Checkout.URL != "https://pay.example.com/new" {
			t.Fatalf("expected new checkout, got %+v", res)
		}
	})

	t.Run("gateway failure persists nothing", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		m.repo.EXPECT().ListByServiceID(gomock.Any(), "svc-1").Return(nil, nil)
		m.users.EXPECT().GetByID(gomock.Any(), payOwner.ID).Return(payOwner, nil)
		m.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).Return(interfaces.CheckoutSession{}, errors.New("502 bad gateway"))

		_, err := uc.EnsurePaid(ctx, payOwner, ChargeRequest{Service: unpaidService(), Amount: decimal.NewFromInt(100)})
		if !errors.Is(err, domain.ErrPaymentGateway) {
			t.Fatalf("expected gateway error, got %v", err)
		}
	})

	t.Run("gateway timeout is retryable", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		m.repo.EXPECT().ListByServiceID(gomock.Any(), "svc-1").Return(nil, nil)
		m.users.EXPECT().GetByID(gomock.Any(), payOwner.ID).Return(payOwner, nil)
		m.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).Return(interfaces.CheckoutSession{}, context.DeadlineExceeded)

		_, err := uc.EnsurePaid(ctx, payOwner, ChargeRequest{Service: unpaidService(), Amount: decimal.NewFromInt(100)})
		de, ok := domain.As(err)
		if !ok || de.Code != "PAYMENT_GATEWAY_TIMEOUT" || !de.Retryable {
			t.Fatalf("expected retryable timeout, got %v", err)
		}
	})

	t.Run("untrusted session is rejected", func(t *testing.T) {
		cases := []interfaces.CheckoutSession{
			{CheckoutURL: "javascript:alert(1)", ExternalID: "ext-1"},
			{CheckoutURL: "https://pay.example.com", ExternalID: ""},
			{CheckoutURL: "https://pay.example.com", ExternalID: "has space"},
		}
		for _, session := range cases {
			uc, m := newPaymentUseCase(t)
			m.repo.EXPECT().ListByServiceID(gomock.Any(), "svc-1").Return(nil, nil)
			m.users.EXPECT().GetByID(gomock.Any(), payOwner.ID).Return(payOwner, nil)
			m.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).Return(session, nil)

			_, err := uc.EnsurePaid(ctx, payOwner, ChargeRequest{Service: unpaidService(), Amount: decimal.NewFromInt(100)})
			de, ok := domain.As(err)
			if !ok || de.Code != "PAYMENT_GATEWAY_INVALID_RESPONSE" {
				t.Fatalf("session %+v: expected invalid response, got %v", session, err)
			}
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil, nil, nil, nil, PaymentSettings{}, nil)
		repo.EXPECT().ListByServiceID(gomock.Any(), "svc-1").Return(nil, nil)

		_, err := uc.EnsurePaid(ctx, payOwner, ChargeRequest{Service: unpaidService(), Amount: decimal.NewFromInt(100)})
		if !errors.Is(err, ErrGatewayNotConfigured) {
			t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
		}
	})
}

func TestPaymentUseCase_InitiateCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("only the owner", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		m.services.EXPECT().GetByID(gomock.Any(), "svc-1").Return(unpaidService(), nil)

		_, err := uc.InitiateCheckout(ctx, entities.User{ID: "other", Role: entities.RoleOwner}, "svc-1")
		if !errors.Is(err, domain.ErrNotAuthorized) {
			t.Fatalf("expected not authorized, got %v", err)
		}
	})

	t.Run("closed service", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		svc := unpaidService()
		svc.Status = entities.ServiceStatusCancelled
		m.services.EXPECT().GetByID(gomock.Any(), "svc-1").Return(svc, nil).Times(2)

		_, err := uc.InitiateCheckout(ctx, payOwner, "svc-1")
		if !errors.Is(err, ErrServiceClosed) {
			t.Fatalf("expected ErrServiceClosed, got %v", err)
		}
	})

	t.Run("missing service", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		m.services.EXPECT().GetByID(gomock.Any(), "svc-x").Return(entities.Service{}, nil)

		_, err := uc.InitiateCheckout(ctx, payOwner, "svc-x")
		if !errors.Is(err, ErrServiceNotFound) {
			t.Fatalf("expected ErrServiceNotFound, got %v", err)
		}
	})
}

func TestPaymentUseCase_CancelCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("no open checkout", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		m.services.EXPECT().GetByID(gomock.Any(), "svc-1").Return(unpaidService(), nil)
		m.repo.EXPECT().ListByServiceID(gomock.Any(), "svc-1").Return([]entities.Payment{{ID: "p-1", Status: entities.PaymentStatusSuperseded}}, nil)

		_, err := uc.CancelCheckout(ctx, payOwner, "svc-1")
		if !errors.Is(err, ErrCheckoutMissing) {
			t.Fatalf("expected ErrCheckoutMissing, got %v", err)
		}
	})

	t.Run("supersedes pending", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		m.services.EXPECT().GetByID(gomock.Any(), "svc-1").Return(unpaidService(), nil)
		m.repo.EXPECT().ListByServiceID(gomock.Any(), "svc-1").Return([]entities.Payment{{ID: "p-1", Status: entities.PaymentStatusPending, ResumeApproval: true}}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), entities.PaymentStatusPending).DoAndReturn(
			func(_ context.Context, p entities.Payment, _ entities.PaymentStatus) (entities.Payment, error) {
				return p, nil
			},
		)

		p, err := uc.CancelCheckout(ctx, payOwner, "svc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != entities.PaymentStatusSuperseded || p.ResumeApproval {
			t.Fatalf("unexpected payment: %+v", p)
		}
	})
}
