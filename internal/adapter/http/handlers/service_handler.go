package handlers

import (
	"context"
	"net/http"
	"strings"

	"topspot/internal/adapter/http/dto/request"
	"topspot/internal/adapter/http/dto/response"
	"topspot/internal/domain/entities"
	"topspot/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ServiceHandler drives the service lifecycle endpoints.
type ServiceHandler struct {
	services usecase.IServiceUseCase
}

func NewServiceHandler(services usecase.IServiceUseCase) *ServiceHandler {
	return &ServiceHandler{services: services}
}

func (h *ServiceHandler) CreateService(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	var payload request.ServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	in, err := payload.ToInput()
	if err != nil {
		respondError(c, err)
		return
	}
	svc, err := h.services.CreateService(c.Request.Context(), current, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromService(svc))
}

// ListServices lists the caller's own requests, optionally by ?status=.
func (h *ServiceHandler) ListServices(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	status := entities.ServiceStatus(strings.ToLower(strings.TrimSpace(c.Query("status"))))
	services, err := h.services.ListOwnerServices(c.Request.Context(), current, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromServices(services))
}

func (h *ServiceHandler) GetService(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	svc, err := h.services.GetService(c.Request.Context(), current, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromService(svc))
}

func (h *ServiceHandler) EditService(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	var payload request.ServicePatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	patch, err := payload.ToPatch()
	if err != nil {
		respondError(c, err)
		return
	}
	svc, err := h.services.EditService(c.Request.Context(), current, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromService(svc))
}

func (h *ServiceHandler) AttachMedia(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	data, appErr := readUpload(c)
	if appErr != nil {
		respondAppError(c, appErr)
		return
	}
	svc, err := h.services.AttachMedia(c.Request.Context(), current, c.Param("id"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromService(svc))
}

// AssignContractor serves both the owner and the admin route; the use case
// decides who may assign.
func (h *ServiceHandler) AssignContractor(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	var payload request.AssignContractorRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	svc, err := h.services.AssignContractor(c.Request.Context(), current, c.Param("id"), payload.ContractorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromService(svc))
}

func (h *ServiceHandler) CompleteService(c *gin.Context) {
	h.transition(c, h.services.CompleteService)
}

func (h *ServiceHandler) CancelService(c *gin.Context) {
	h.transition(c, h.services.CancelService)
}

func (h *ServiceHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, actor entities.User, serviceID string) (entities.Service, error),
) {
	current, ok := actor(c)
	if !ok {
		return
	}
	svc, err := apply(c.Request.Context(), current, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromService(svc))
}

// ContractorServices is the contractor's paginated work list.
func (h *ServiceHandler) ContractorServices(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	var query request.ContractorServicesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := h.services.ListContractorServices(c.Request.Context(), current, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromServicePage(page))
}

// SearchServices lists open requests a contractor can quote on.
func (h *ServiceHandler) SearchServices(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	services, err := h.services.SearchOpenServices(c.Request.Context(), current, c.Query("category"), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromServices(services))
}

// AdminListServices lists every service, optionally for one ?month=YYYY-MM.
func (h *ServiceHandler) AdminListServices(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	services, err := h.services.ListAllServices(c.Request.Context(), current, c.Query("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromServices(services))
}
