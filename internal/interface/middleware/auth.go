package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard-api/internal/application"
	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	repo "github.com/oksasatya/jobboard-api/internal/domain/repository"
	"github.com/oksasatya/jobboard-api/pkg/response"
)

const (
	ctxCurrentUser = "currentUser"
	ctxAccessToken = "accessToken"
)

var (
	ErrMissingAuthHeader   = errors.New("missing authorization header")
	ErrMalformedAuthHeader = errors.New("malformed authorization header")
)

// TokenVerifier checks a bearer token against a role's secret and the blacklist.
type TokenVerifier interface {
	Verify(ctx context.Context, role entity.Role, token string) (application.Verification, error)
}

// UserFinder resolves the principal carried by a verified token.
type UserFinder interface {
	GetByUlID(ctx context.Context, ulid string) (*entity.User, error)
}

// BearerToken extracts the token from an Authorization header of the exact form
// "Bearer <token>". The scheme is case-insensitive and separated by a single space.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingAuthHeader
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", ErrMalformedAuthHeader
	}
	return parts[1], nil
}

var reasonMessages = map[application.Reason]string{
	application.ReasonExpired:          "token expired",
	application.ReasonInvalidSignature: "invalid token signature",
	application.ReasonRevoked:          "token revoked",
}

// RequireRole authenticates the request for routes of one role family and stores
// the resolved user in the context.
func RequireRole(tokens TokenVerifier, users UserFinder, role entity.Role, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error(), nil)
			return
		}

		ctx := c.Request.Context()
		v, err := tokens.Verify(ctx, role, token)
		if err != nil {
			logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("token verification failed")
			response.Abort(c, http.StatusInternalServerError, "internal server error", nil)
			return
		}
		if !v.Valid() {
			response.Abort(c, http.StatusUnauthorized, reasonMessages[v.Reason], gin.H{"reason": string(v.Reason)})
			return
		}

		u, err := users.GetByUlID(ctx, v.Claims.UserUlID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				response.Abort(c, http.StatusUnauthorized, "user not found", nil)
				return
			}
			logger.WithError(err).WithField("user", v.Claims.UserUlID).Error("load principal failed")
			response.Abort(c, http.StatusInternalServerError, "internal server error", nil)
			return
		}
		if u.Role != role {
			response.Abort(c, http.StatusForbidden, "forbidden", nil)
			return
		}

		c.Set(ctxCurrentUser, u)
		c.Set(ctxAccessToken, token)
		c.Next()
	}
}

// CurrentUser returns the principal set by RequireRole.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(ctxCurrentUser); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}
