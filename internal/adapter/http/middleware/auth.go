package middleware

import (
	"context"
	"net/http"
	"strings"

	"topspot/internal/domain"
	"topspot/internal/domain/entities"
	"topspot/pkg"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "topspot.current_user"

var (
	errMissingToken = pkg.NewDomainErrorSimple("SESSION_INVALID", "Missing bearer token", http.StatusUnauthorized)
	errForbidden    = pkg.NewDomainErrorSimple("NOT_AUTHORIZED", "Role not allowed for this resource", http.StatusForbidden)
)

// Authenticator resolves a session token to the account that holds it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (entities.User, error)
}

// RequireAuth rejects requests without a valid bearer session and stores
// the account for the handlers.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			appErr := authError(err)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		SetCurrentUser(c, user)
		c.Next()
	}
}

// RequireRoles must run after RequireAuth.
func RequireRoles(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
	}
}

func SetCurrentUser(c *gin.Context, u entities.User) {
	c.Set(currentUserKey, u)
}

func CurrentUser(c *gin.Context) (entities.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return entities.User{}, false
	}
	u, ok := v.(entities.User)
	return u, ok && u.ID != ""
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func authError(err error) *pkg.AppError {
	de, ok := domain.As(err)
	if !ok {
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
	switch de.Kind {
	case domain.KindUnauthenticated:
		return pkg.NewDomainError(de.Code, de.Message, err, http.StatusUnauthorized)
	case domain.KindNotAuthorized:
		return pkg.NewDomainError(de.Code, de.Message, err, http.StatusForbidden)
	case domain.KindNotFound:
		return pkg.NewDomainError("SESSION_INVALID", "Session is invalid or expired", err, http.StatusUnauthorized)
	}
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}
