package handlers

import (
	"context"
	"net/http"

	"topspot/internal/adapter/http/dto/request"
	"topspot/internal/adapter/http/dto/response"
	"topspot/internal/domain/entities"
	"topspot/internal/usecase"

	"github.com/gin-gonic/gin"
)

// QuoteHandler serves quote negotiation.
type QuoteHandler struct {
	quotes   usecase.IQuoteUseCase
	services usecase.IServiceUseCase
}

func NewQuoteHandler(quotes usecase.IQuoteUseCase, services usecase.IServiceUseCase) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, services: services}
}

// CreateQuote proposes terms on the service in the path. Owners, tenants and
// contractors share it.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	terms, err := payload.ToTerms()
	if err != nil {
		respondError(c, err)
		return
	}
	quote, err := h.quotes.CreateQuote(c.Request.Context(), current, c.Param("id"), terms)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

func (h *QuoteHandler) CounterOffer(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	terms, err := payload.ToTerms()
	if err != nil {
		respondError(c, err)
		return
	}
	quote, err := h.quotes.CounterOffer(c.Request.Context(), current, c.Param("id"), terms)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	quote, err := h.quotes.GetQuote(c.Request.Context(), current, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) ListServiceQuotes(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	quotes, err := h.quotes.ListServiceQuotes(c.Request.Context(), current, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	h.approve(c, h.quotes.ApproveQuote)
}

func (h *QuoteHandler) ContractorApproveQuote(c *gin.Context) {
	h.approve(c, h.quotes.ContractorApproveQuote)
}

func (h *QuoteHandler) AdminApproveQuote(c *gin.Context) {
	h.approve(c, h.quotes.AdminApproveQuote)
}

// approve answers 402 with the checkout when the gate deferred the approval.
func (h *QuoteHandler) approve(
	c *gin.Context,
	apply func(ctx context.Context, actor entities.User, quoteID string) (usecase.ApprovalResult, error),
) {
	current, ok := actor(c)
	if !ok {
		return
	}
	result, err := apply(c.Request.Context(), current, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if result.Status == usecase.ApprovalPaymentRequired && result.Checkout != nil {
		c.JSON(http.StatusPaymentRequired, response.FromCheckout(*result.Checkout))
		return
	}
	c.JSON(http.StatusOK, response.FromApproval(result))
}

func (h *QuoteHandler) DeclineQuote(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	quote, err := h.quotes.DeclineQuote(c.Request.Context(), current, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// DisapproveQuote withdraws an approved quote and cancels its service.
func (h *QuoteHandler) DisapproveQuote(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	svc, err := h.services.DisapproveQuote(c.Request.Context(), current, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromService(svc))
}
