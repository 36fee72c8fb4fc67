package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"topspot/internal/adapter/persistence/memory"
	"topspot/internal/domain"
	"topspot/internal/domain/entities"
	mock_interfaces "topspot/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func validServiceInput() ServiceInput {
	from, _ := entities.ParseDate("2026-11-02")
	to, _ := entities.ParseDate("2026-11-06")
	return ServiceInput{
		Name:         "Paint bedroom",
		Description:  "Two coats, white",
		Categories:   []string{"painting"},
		Amount:       decimal.RequireFromString("1500.50"),
		Availability: entities.Availability{FromDate: from, ToDate: to, FromTime: "09:00", ToTime: "17:30"},
	}
}

func TestServiceUseCase_CreateService(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)

	t.Run("contractor cannot post", func(t *testing.T) {
		if _, err := w.services.CreateService(ctx, w.contractor, validServiceInput()); !errors.Is(err, domain.ErrNotAuthorized) {
			t.Fatalf("expected not authorized, got %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		cases := map[string]func(*ServiceInput){
			"name":       func(in *ServiceInput) { in.Name = " " },
			"category":   func(in *ServiceInput) { in.Categories = []string{"gardening"} },
			"amount":     func(in *ServiceInput) { in.Amount = decimal.NewFromInt(-1) },
			"time":       func(in *ServiceInput) { in.Availability.ToTime = "25:00" },
			"range":      func(in *ServiceInput) { in.Availability.ToDate = in.Availability.FromDate.AddDate(0, 0, -1) },
			"start date": func(in *ServiceInput) { in.Availability.FromDate = time.Time{} },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				in := validServiceInput()
				mutate(&in)
				if _, err := w.services.CreateService(ctx, w.owner, in); !errors.Is(err, domain.ErrInvalidInput) {
					t.Fatalf("expected invalid input, got %v", err)
				}
			})
		}
	})

	t.Run("success", func(t *testing.T) {
		s, err := w.services.CreateService(ctx, w.owner, validServiceInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Status != entities.ServiceStatusPending || s.Paid || s.HasContractor() || s.Currency != entities.DefaultCurrency || s.OwnerID != w.owner.ID {
			t.Fatalf("unexpected service: %+v", s)
		}
	})
}

func TestServiceUseCase_EditService(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	s := w.createService(t)

	name := "Fix kitchen sink"
	got, err := w.services.EditService(ctx, w.owner, s.ID, ServicePatch{Name: &name})
	if err != nil || got.Name != name || got.Version != s.Version+1 {
		t.Fatalf("unexpected edit result: %+v %v", got, err)
	}

	if _, err := w.services.AssignContractor(ctx, w.admin, s.ID, w.contractor.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := w.services.EditService(ctx, w.owner, s.ID, ServicePatch{Name: &name}); !errors.Is(err, ErrServiceNotEditable) {
		t.Fatalf("expected ErrServiceNotEditable, got %v", err)
	}
}

func TestServiceUseCase_AssignContractor(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	s := w.createService(t)

	if _, err := w.services.AssignContractor(ctx, w.contractor, s.ID, w.contractor.ID); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected not authorized, got %v", err)
	}

	pending := entities.User{ID: "pending-c", Email: "p@example.com", Role: entities.RoleContractor, ContractorStatus: entities.ContractorPending}
	_, _ = w.store.Users().Create(ctx, pending)
	if _, err := w.services.AssignContractor(ctx, w.owner, s.ID, pending.ID); !errors.Is(err, ErrContractorNotActive) {
		t.Fatalf("expected ErrContractorNotActive, got %v", err)
	}

	got, err := w.services.AssignContractor(ctx, w.owner, s.ID, w.contractor.ID)
	if err != nil || got.ContractorID != w.contractor.ID {
		t.Fatalf("assign: %+v %v", got, err)
	}
	again, err := w.services.AssignContractor(ctx, w.admin, s.ID, w.contractor.ID)
	if err != nil || again.Version != got.Version {
		t.Fatalf("expected idempotent assignment, got %+v %v", again, err)
	}
	if _, err := w.services.AssignContractor(ctx, w.admin, s.ID, w.contractor2.ID); !errors.Is(err, ErrContractorMismatch) {
		t.Fatalf("expected ErrContractorMismatch, got %v", err)
	}
}

func TestServiceUseCase_AttachMedia(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := entities.User{ID: "owner", Email: "o@example.com", Role: entities.RoleOwner}
	_, _ = store.Users().Create(ctx, owner)

	ctrl := gomock.NewController(t)
	media := mock_interfaces.NewMockIMediaStore(ctrl)
	uc := NewServiceUseCase(store.Services(), store.Quotes(), store.Users(), media, nil, nil, nil)
	s, err := uc.CreateService(ctx, owner, validServiceInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("empty file", func(t *testing.T) {
		if _, err := uc.AttachMedia(ctx, owner, s.ID, nil); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected invalid input, got %v", err)
		}
	})

	t.Run("upload error", func(t *testing.T) {
		media.EXPECT().Upload(gomock.Any(), "services/"+s.ID, []byte("img")).Return("", errors.New("s3 down"))
		if _, err := uc.AttachMedia(ctx, owner, s.ID, []byte("img")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("appends url", func(t *testing.T) {
		media.EXPECT().Upload(gomock.Any(), "services/"+s.ID, []byte("img")).Return("https://cdn.example.com/a.png", nil)
		got, err := uc.AttachMedia(ctx, owner, s.ID, []byte("img"))
		if err != nil || len(got.Media) != 1 || got.Media[0] != "https://cdn.example.com/a.png" {
			t.Fatalf("unexpected result: %+v %v", got, err)
		}
	})
}

func TestServiceUseCase_Listings(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	open := w.createService(t)
	bound := w.createService(t)
	if _, err := w.services.AssignContractor(ctx, w.owner, bound.ID, w.contractor.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	t.Run("owner filter by status", func(t *testing.T) {
		items, err := w.services.ListOwnerServices(ctx, w.owner, entities.ServiceStatusPending)
		if err != nil || len(items) != 2 {
			t.Fatalf("unexpected: %v %v", items, err)
		}
		if _, err := w.services.ListOwnerServices(ctx, w.owner, "weird"); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected invalid input, got %v", err)
		}
	})

	t.Run("contractor page and date", func(t *testing.T) {
		inside, _ := entities.ParseDate("2026-11-10")
		before, _ := entities.ParseDate("2026-10-01")
		page, err := w.services.ListContractorServices(ctx, w.contractor, ContractorServiceFilter{Date: inside})
		if err != nil || page.Total != 1 || page.Items[0].ID != bound.ID || page.Limit != defaultPageLimit {
			t.Fatalf("unexpected page: %+v %v", page, err)
		}
		page, err = w.services.ListContractorServices(ctx, w.contractor, ContractorServiceFilter{Date: before})
		if err != nil || page.Total != 0 {
			t.Fatalf("expected empty page, got %+v %v", page, err)
		}
		page, err = w.services.ListContractorServices(ctx, w.contractor, ContractorServiceFilter{Page: 2, Limit: 1})
		if err != nil || len(page.Items) != 0 || page.Total != 1 {
			t.Fatalf("expected past-the-end page, got %+v %v", page, err)
		}
	})

	t.Run("huge page number", func(t *testing.T) {
		page, err := w.services.ListContractorServices(ctx, w.contractor, ContractorServiceFilter{Page: math.MaxInt})
		if err != nil || len(page.Items) != 0 || page.Total != 1 || page.Page != math.MaxInt {
			t.Fatalf("expected empty page, got %+v %v", page, err)
		}
	})

	t.Run("search open services", func(t *testing.T) {
		items, err := w.services.SearchOpenServices(ctx, w.contractor2, "plumbing", "SINK")
		if err != nil || len(items) != 1 || items[0].ID != open.ID {
			t.Fatalf("unexpected search result: %v %v", items, err)
		}
	})

	t.Run("admin month filter", func(t *testing.T) {
		month := time.Now().UTC().Format("2006-01")
		items, err := w.services.ListAllServices(ctx, w.admin, month)
		if err != nil || len(items) != 2 {
			t.Fatalf("unexpected: %v %v", items, err)
		}
		items, err = w.services.ListAllServices(ctx, w.admin, "1999-01")
		if err != nil || len(items) != 0 {
			t.Fatalf("expected none, got %v %v", items, err)
		}
		if _, err := w.services.ListAllServices(ctx, w.admin, "01-2026"); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected invalid input, got %v", err)
		}
		if _, err := w.services.ListAllServices(ctx, w.owner, ""); !errors.Is(err, domain.ErrNotAuthorized) {
			t.Fatalf("expected not authorized, got %v", err)
		}
	})
}

func TestServiceUseCase_DisapproveQuote(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	s := w.createService(t)
	q := w.quote(t, w.contractor, s.ID, 100)

	if _, err := w.services.DisapproveQuote(ctx, w.owner, q.ID); !errors.Is(err, ErrNoContractorAssigned) {
		t.Fatalf("expected ErrNoContractorAssigned, got %v", err)
	}
	if _, err := w.services.DisapproveQuote(ctx, w.contractor, q.ID); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected not authorized, got %v", err)
	}
}
