package handlers

import (
	"io"
	"net/http"

	"topspot/internal/adapter/http/dto/request"
	"topspot/internal/adapter/http/dto/response"
	"topspot/internal/usecase"
	"topspot/pkg"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 5 << 20

// UserHandler serves the signed-in account's own endpoints.
type UserHandler struct {
	users  usecase.IUserUseCase
	quotes usecase.IQuoteUseCase
}

func NewUserHandler(users usecase.IUserUseCase, quotes usecase.IQuoteUseCase) *UserHandler {
	return &UserHandler{users: users, quotes: quotes}
}

func (h *UserHandler) Me(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	user, err := h.users.GetProfile(c.Request.Context(), current, current.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	user, err := h.users.GetProfile(c.Request.Context(), current, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	var payload request.ProfileRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	user, err := h.users.UpdateProfile(c.Request.Context(), current, payload.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	data, appErr := readUpload(c)
	if appErr != nil {
		respondAppError(c, appErr)
		return
	}
	user, err := h.users.UpdateAvatar(c.Request.Context(), current, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

func (h *UserHandler) SignOut(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	if err := h.users.SignOut(c.Request.Context(), current); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	if err := h.users.Deactivate(c.Request.Context(), current); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MyQuotes lists the quotes relevant to the caller's role.
func (h *UserHandler) MyQuotes(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	quotes, err := h.quotes.ListUserQuotes(c.Request.Context(), current)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

// readUpload reads the multipart "file" field, at most one byte past the limit.
func readUpload(c *gin.Context) ([]byte, *pkg.AppError) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, errMissingFile
	}
	if header.Size > maxUploadBytes {
		return nil, errFileTooLarge
	}
	f, err := header.Open()
	if err != nil {
		return nil, errMissingFile
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, errMissingFile
	}
	if len(data) > maxUploadBytes {
		return nil, errFileTooLarge
	}
	return data, nil
}
