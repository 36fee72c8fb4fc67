package handlers

import (
	"context"
	"net/http"
	"testing"

	"topspot/internal/adapter/http/handlers/mocks"
	"topspot/internal/domain"
	"topspot/internal/domain/entities"
	"topspot/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestPaymentHandler_InitiateCheckout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("opens checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(payments, mocks.NewMockISettlementUseCase(ctrl))

		r := routerAs(ownerUser)
		r.POST("/v1/services/:id/checkout", h.InitiateCheckout)

		payments.EXPECT().InitiateCheckout(gomock.Any(), ownerUser, "s-1").Return(usecase.GateResult{
			Checkout: &entities.CheckoutHandle{PaymentID: "p-1", ExternalID: "p-1", URL: "https://pay.example.com/p-1", Amount: decimal.NewFromInt(750), Currency: "PHP"},
		}, nil)

		w := doJSON(r, http.MethodPost, "/v1/services/s-1/checkout", "")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["checkout_url"] != "https://pay.example.com/p-1" || body["amount"] != "750" || body["paid"] != false {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("already paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(payments, mocks.NewMockISettlementUseCase(ctrl))

		r := routerAs(ownerUser)
		r.POST("/v1/services/:id/checkout", h.InitiateCheckout)

		payments.EXPECT().InitiateCheckout(gomock.Any(), ownerUser, "s-1").Return(usecase.GateResult{Paid: true}, nil)

		w := doJSON(r, http.MethodPost, "/v1/services/s-1/checkout", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["paid"] != true {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("gateway timeout is retryable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(payments, mocks.NewMockISettlementUseCase(ctrl))

		r := routerAs(ownerUser)
		r.POST("/v1/services/:id/checkout", h.InitiateCheckout)

		payments.EXPECT().InitiateCheckout(gomock.Any(), ownerUser, "s-1").Return(usecase.GateResult{}, &domain.Error{
			Kind:      domain.KindPaymentGateway,
			Code:      "PAYMENT_GATEWAY_TIMEOUT",
			Message:   "payment gateway timed out; retry later",
			Retryable: true,
			Err:       context.DeadlineExceeded,
		})

		w := doJSON(r, http.MethodPost, "/v1/services/s-1/checkout", "")
		if w.Code != http.StatusGatewayTimeout {
			t.Fatalf("expected 504, got %d", w.Code)
		}
		details, _ := decodeBody(t, w)["details"].(map[string]any)
		if details["retryable"] != true {
			t.Fatalf("expected retryable detail, got %v", details)
		}
	})
}

func TestPaymentHandler_CancelAndList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("cancel without open checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(payments, mocks.NewMockISettlementUseCase(ctrl))

		r := routerAs(ownerUser)
		r.DELETE("/v1/services/:id/checkout", h.CancelCheckout)

		payments.EXPECT().CancelCheckout(gomock.Any(), ownerUser, "s-1").Return(entities.Payment{}, usecase.ErrCheckoutMissing)

		w := doJSON(r, http.MethodDelete, "/v1/services/s-1/checkout", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("list hides checkout url of settled payments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(payments, mocks.NewMockISettlementUseCase(ctrl))

		r := routerAs(ownerUser)
		r.GET("/v1/services/:id/payments", h.ListPayments)

		payments.EXPECT().ListServicePayments(gomock.Any(), ownerUser, "s-1").Return([]entities.Payment{
			{ID: "p-2", Status: entities.PaymentStatusPending, CheckoutURL: "https://pay.example.com/p-2"},
			{ID: "p-1", Status: entities.PaymentStatusPaid, CheckoutURL: "https://pay.example.com/p-1"},
		}, nil)

		w := doJSON(r, http.MethodGet, "/v1/services/s-1/payments", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := w.Body.String()
		if !containsAll(body, "p-2", "https://pay.example.com/p-2") || containsAll(body, "https://pay.example.com/p-1") {
			t.Fatalf("unexpected body: %s", body)
		}
	})
}

func TestPaymentHandler_Webhook(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), mocks.NewMockISettlementUseCase(ctrl))

		r := gin.New()
		r.POST("/v1/payments/webhook", h.Webhook)

		w := doJSON(r, http.MethodPost, "/v1/payments/webhook", `{"type":"payment","data":{"id":"123"}}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("query reference wins over body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		settlement := mocks.NewMockISettlementUseCase(ctrl)
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), settlement)

		r := gin.New()
		r.POST("/v1/payments/webhook", h.Webhook)

		settlement.EXPECT().ConfirmPayment(gomock.Any(), "p-1").Return(usecase.SettlementResult{
			Payment: entities.Payment{ID: "p-1", Status: entities.PaymentStatusPaid},
			Settled: true,
			Resumed: &usecase.ApprovalResult{Status: usecase.ApprovalApplied, Quote: entities.Quote{ID: "q-1"}},
		}, nil)

		w := doJSON(r, http.MethodPost, "/v1/payments/webhook?external_reference=p-1", `{"external_id":"p-9","type":"payment"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		if body["settled"] != true || body["resumed_approval"] == nil {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("empty body with query reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		settlement := mocks.NewMockISettlementUseCase(ctrl)
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), settlement)

		r := gin.New()
		r.POST("/v1/payments/webhook", h.Webhook)

		settlement.EXPECT().ConfirmPayment(gomock.Any(), "p-1").Return(usecase.SettlementResult{
			Payment:        entities.Payment{ID: "p-1", Status: entities.PaymentStatusPaid},
			AlreadySettled: true,
		}, nil)

		w := doJSON(r, http.MethodPost, "/v1/payments/webhook?external_reference=p-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
	})

	t.Run("not settled yet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		settlement := mocks.NewMockISettlementUseCase(ctrl)
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), settlement)

		r := gin.New()
		r.POST("/v1/payments/webhook", h.Webhook)

		settlement.EXPECT().ConfirmPayment(gomock.Any(), "p-1").Return(usecase.SettlementResult{}, usecase.ErrPaymentNotSettled)

		w := doJSON(r, http.MethodPost, "/v1/payments/webhook", `{"external_reference":"p-1"}`)
		if w.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", w.Code)
		}
	})

	t.Run("unknown payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		settlement := mocks.NewMockISettlementUseCase(ctrl)
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), settlement)

		r := gin.New()
		r.POST("/v1/payments/webhook", h.Webhook)

		settlement.EXPECT().ConfirmPayment(gomock.Any(), "nope").Return(usecase.SettlementResult{}, usecase.ErrPaymentNotFound)

		w := doJSON(r, http.MethodPost, "/v1/payments/webhook", `{"external_id":"nope"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
