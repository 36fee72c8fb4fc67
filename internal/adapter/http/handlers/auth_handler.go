package handlers

import (
	"net/http"

	"topspot/internal/adapter/http/dto/request"
	"topspot/internal/adapter/http/dto/response"
	"topspot/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the public account endpoints.
type AuthHandler struct {
	users usecase.IUserUseCase
}

func NewAuthHandler(users usecase.IUserUseCase) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var payload request.SignUpRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	user, err := h.users.SignUp(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromUser(user))
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var payload request.SignInRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	session, err := h.users.SignIn(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSession(session))
}

// VerifyAccount is the target of the emailed verification link.
func (h *AuthHandler) VerifyAccount(c *gin.Context) {
	var query request.VerifyAccountQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	user, err := h.users.VerifyAccount(c.Request.Context(), query.UserID, query.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

// ForgotPassword always answers 202 so the endpoint does not reveal which
// emails are registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var payload request.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	if err := h.users.RequestPasswordReset(c.Request.Context(), payload.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, response.MessageResponse{Message: "If the email is registered, a reset link was sent"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var payload request.ResetPasswordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	if err := h.users.ResetPassword(c.Request.Context(), payload.UserID, payload.Token, payload.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Password updated"})
}
