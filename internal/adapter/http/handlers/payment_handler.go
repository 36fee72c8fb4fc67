package handlers

import (
	"errors"
	"io"
	"net/http"

	"topspot/internal/adapter/http/dto/request"
	"topspot/internal/adapter/http/dto/response"
	"topspot/internal/usecase"
	"topspot/pkg"

	"github.com/gin-gonic/gin"
)

var errMissingReference = pkg.NewDomainErrorSimple("INVALID_INPUT", "Missing payment reference", http.StatusBadRequest)

// PaymentHandler serves checkout and the gateway webhook.
type PaymentHandler struct {
	payments   usecase.IPaymentUseCase
	settlement usecase.ISettlementUseCase
}

func NewPaymentHandler(payments usecase.IPaymentUseCase, settlement usecase.ISettlementUseCase) *PaymentHandler {
	return &PaymentHandler{payments: payments, settlement: settlement}
}

// InitiateCheckout answers 201 with a checkout, or 200 when nothing is owed.
func (h *PaymentHandler) InitiateCheckout(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	result, err := h.payments.InitiateCheckout(c.Request.Context(), current, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if result.Checkout == nil {
		c.JSON(http.StatusOK, response.FromGateResult(result))
		return
	}
	c.JSON(http.StatusCreated, response.FromGateResult(result))
}

func (h *PaymentHandler) CancelCheckout(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	payment, err := h.payments.CancelCheckout(c.Request.Context(), current, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(payment))
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	payments, err := h.payments.ListServicePayments(c.Request.Context(), current, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// Webhook is called by the gateway. The body is only a hint: settlement
// re-reads the payment status from the gateway before changing anything.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var payload request.PaymentWebhookRequest
	bindErr := c.ShouldBindJSON(&payload)
	externalID := payload.ResolveExternalID(c.Query("external_reference"))
	if externalID == "" {
		if bindErr != nil && !errors.Is(bindErr, io.EOF) {
			respondAppError(c, errInvalidPayload)
			return
		}
		respondAppError(c, errMissingReference)
		return
	}

	result, err := h.settlement.ConfirmPayment(c.Request.Context(), externalID)
	if errors.Is(err, usecase.ErrPaymentNotSettled) {
		c.JSON(http.StatusAccepted, response.MessageResponse{Message: "Payment not settled yet"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSettlement(result))
}
