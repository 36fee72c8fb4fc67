package handlers

import (
	"net/http"
	"strings"

	"topspot/internal/adapter/http/dto/request"
	"topspot/internal/adapter/http/dto/response"
	"topspot/internal/domain/entities"
	"topspot/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves account administration.
type AdminHandler struct {
	users usecase.IUserUseCase
}

func NewAdminHandler(users usecase.IUserUseCase) *AdminHandler {
	return &AdminHandler{users: users}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	users, err := h.users.ListTenantsAndOwners(c.Request.Context(), current)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromUsers(users))
}

func (h *AdminHandler) ListContractors(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	users, err := h.users.ListContractors(c.Request.Context(), current)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromUsers(users))
}

func (h *AdminHandler) VerifyUser(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	user, err := h.users.VerifyUser(c.Request.Context(), current, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

func (h *AdminHandler) SetContractorStatus(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	var payload request.ContractorStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	status := entities.ContractorStatus(strings.ToLower(strings.TrimSpace(payload.Status)))
	user, err := h.users.SetContractorStatus(c.Request.Context(), current, c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

func (h *AdminHandler) ChangeRole(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	var payload request.RoleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	role := entities.Role(strings.ToLower(strings.TrimSpace(payload.Role)))
	user, err := h.users.ChangeOwnerRole(c.Request.Context(), current, c.Param("id"), role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}
