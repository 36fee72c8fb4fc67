package handlers

import (
	"net/http"
	"testing"

	"topspot/internal/adapter/http/handlers/mocks"
	"topspot/internal/domain/entities"
	"topspot/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestServiceHandler_CreateService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing required fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewServiceHandler(mocks.NewMockIServiceUseCase(ctrl))

		r := routerAs(ownerUser)
		r.POST("/v1/services", h.CreateService)

		w := doJSON(r, http.MethodPost, "/v1/services", `{"description":"leaky faucet"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := routerAs(ownerUser)
		r.POST("/v1/services", h.CreateService)

		uc.EXPECT().CreateService(gomock.Any(), ownerUser, gomock.Any()).
			DoAndReturn(func(_ any, _ entities.User, in usecase.ServiceInput) (entities.Service, error) {
				if in.Availability.FromTime != "09:00" || entities.FormatDate(in.Availability.FromDate) != "2026-06-01" {
					t.Fatalf("unexpected availability: %+v", in.Availability)
				}
				return entities.Service{
					ID:           "s-1",
					OwnerID:      ownerUser.ID,
					Name:         in.Name,
					Categories:   in.Categories,
					Amount:       in.Amount,
					Currency:     "PHP",
					Availability: in.Availability,
					Status:       entities.ServiceStatusPending,
				}, nil
			})

		w := doJSON(r, http.MethodPost, "/v1/services",
			`{"name":"Fix faucet","categories":["plumbing"],"amount":"1500","availability":{"from_date":"2026-06-01","from_time":"09:00","to_time":"17:00"}}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		if body["status"] != "pending" || body["amount"] != "1500" || body["paid"] != false {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestServiceHandler_Lifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("complete pending service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := routerAs(ownerUser)
		r.POST("/v1/services/:id/complete", h.CompleteService)

		uc.EXPECT().CompleteService(gomock.Any(), ownerUser, "s-1").Return(entities.Service{}, usecase.ErrServiceNotOngoing)

		w := doJSON(r, http.MethodPost, "/v1/services/s-1/complete", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["code"] != "SERVICE_NOT_ONGOING" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := routerAs(ownerUser)
		r.POST("/v1/services/:id/cancel", h.CancelService)

		uc.EXPECT().CancelService(gomock.Any(), ownerUser, "s-1").Return(entities.Service{ID: "s-1", Status: entities.ServiceStatusCancelled}, nil)

		w := doJSON(r, http.MethodPost, "/v1/services/s-1/cancel", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("edit with partial fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := routerAs(ownerUser)
		r.PATCH("/v1/services/:id", h.EditService)

		uc.EXPECT().EditService(gomock.Any(), ownerUser, "s-1", gomock.Any()).
			DoAndReturn(func(_ any, _ entities.User, _ string, patch usecase.ServicePatch) (entities.Service, error) {
				if patch.Name != nil || patch.Amount == nil || !patch.Amount.Equal(decimal.NewFromInt(900)) {
					t.Fatalf("unexpected patch: %+v", patch)
				}
				return entities.Service{ID: "s-1", Amount: *patch.Amount}, nil
			})

		w := doJSON(r, http.MethodPatch, "/v1/services/s-1", `{"amount":"900"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
	})

	t.Run("assign inactive contractor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := routerAs(adminUser)
		r.POST("/v1/admin/services/:id/contractor", h.AssignContractor)

		uc.EXPECT().AssignContractor(gomock.Any(), adminUser, "s-1", "c-9").Return(entities.Service{}, usecase.ErrContractorNotActive)

		w := doJSON(r, http.MethodPost, "/v1/admin/services/s-1/contractor", `{"contractor_id":"c-9"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestServiceHandler_Media(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewServiceHandler(mocks.NewMockIServiceUseCase(ctrl))

		r := routerAs(ownerUser)
		r.POST("/v1/services/:id/media", h.AttachMedia)

		w := doJSON(r, http.MethodPost, "/v1/services/s-1/media", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("too large", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewServiceHandler(mocks.NewMockIServiceUseCase(ctrl))

		r := routerAs(ownerUser)
		r.POST("/v1/services/:id/media", h.AttachMedia)

		w := doUpload(t, r, http.MethodPost, "/v1/services/s-1/media", make([]byte, maxUploadBytes+1))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["code"] != "FILE_TOO_LARGE" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("uploaded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := routerAs(ownerUser)
		r.POST("/v1/services/:id/media", h.AttachMedia)

		data := []byte("\x89PNG\r\n\x1a\nrest")
		uc.EXPECT().AttachMedia(gomock.Any(), ownerUser, "s-1", data).
			Return(entities.Service{ID: "s-1", Media: []string{"https://cdn.example.com/services/s-1/a.png"}}, nil)

		w := doUpload(t, r, http.MethodPost, "/v1/services/s-1/media", data)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
	})
}

func TestServiceHandler_ContractorServices(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewServiceHandler(mocks.NewMockIServiceUseCase(ctrl))

		r := routerAs(contractorUser)
		r.GET("/v1/contractor/services", h.ContractorServices)

		w := doJSON(r, http.MethodGet, "/v1/contractor/services?date=tomorrow", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("paginated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := routerAs(contractorUser)
		r.GET("/v1/contractor/services", h.ContractorServices)

		uc.EXPECT().ListContractorServices(gomock.Any(), contractorUser, gomock.Any()).
			DoAndReturn(func(_ any, _ entities.User, f usecase.ContractorServiceFilter) (usecase.ServicePage, error) {
				if f.Page != 2 || f.Limit != 5 || f.Status != entities.ServiceStatusOngoing {
					t.Fatalf("unexpected filter: %+v", f)
				}
				return usecase.ServicePage{Items: []entities.Service{{ID: "s-6"}}, Page: 2, Limit: 5, Total: 6}, nil
			})

		w := doJSON(r, http.MethodGet, "/v1/contractor/services?page=2&limit=5&status=ongoing", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
		if body := decodeBody(t, w); body["total"] != float64(6) {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}
