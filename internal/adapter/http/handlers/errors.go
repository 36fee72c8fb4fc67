package handlers

import (
	"errors"
	"net/http"

	"topspot/internal/adapter/http/dto/request"
	"topspot/internal/adapter/http/middleware"
	"topspot/internal/domain"
	"topspot/internal/domain/entities"
	"topspot/internal/usecase"
	"topspot/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_INPUT", "Invalid request payload", http.StatusBadRequest)
	errInvalidDate    = pkg.NewDomainErrorSimple("INVALID_DATE", "Dates must use YYYY-MM-DD", http.StatusBadRequest)
	errMissingFile    = pkg.NewDomainErrorSimple("INVALID_INPUT", "Multipart field \"file\" is required", http.StatusBadRequest)
	errFileTooLarge   = pkg.NewDomainErrorSimple("FILE_TOO_LARGE", "File exceeds the 5MB limit", http.StatusBadRequest)
)

// mapDomainError translates a use case failure into its HTTP form.
func mapDomainError(err error) *pkg.AppError {
	if errors.Is(err, request.ErrInvalidDate) {
		return errInvalidDate
	}
	de, ok := domain.As(err)
	if !ok {
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}

	switch de.Kind {
	case domain.KindNotFound:
		return pkg.NewDomainError(de.Code, de.Message, err, http.StatusNotFound)
	case domain.KindNotAuthorized:
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			return pkg.NewDomainError(de.Code, de.Message, err, http.StatusUnauthorized)
		}
		return pkg.NewDomainError(de.Code, de.Message, err, http.StatusForbidden)
	case domain.KindSelfApproval:
		return pkg.NewDomainError(de.Code, de.Message, err, http.StatusForbidden)
	case domain.KindInvalidInput:
		return pkg.NewDomainError(de.Code, de.Message, err, http.StatusBadRequest)
	case domain.KindInvalidTransition, domain.KindConflict:
		return pkg.NewDomainError(de.Code, de.Message, err, http.StatusConflict)
	case domain.KindPaymentRequired:
		return pkg.NewDomainError(de.Code, de.Message, err, http.StatusPaymentRequired)
	case domain.KindPaymentGateway:
		if de.Retryable {
			return pkg.NewDomainError(de.Code, de.Message, err, http.StatusGatewayTimeout).WithDetail("retryable", true)
		}
		return pkg.NewDomainError(de.Code, de.Message, err, http.StatusBadGateway)
	case domain.KindUnauthenticated:
		return pkg.NewDomainError(de.Code, de.Message, err, http.StatusUnauthorized)
	}
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}

func respondError(c *gin.Context, err error) {
	appErr := mapDomainError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func respondAppError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// actor returns the authenticated account or answers 401.
func actor(c *gin.Context) (entities.User, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, usecase.ErrSessionInvalid)
		return entities.User{}, false
	}
	return u, true
}
