package application

import (
	"context"
	"errors"
	"expvar"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	repo "github.com/oksasatya/jobboard-api/internal/domain/repository"
	"github.com/oksasatya/jobboard-api/pkg/apperror"
	"github.com/oksasatya/jobboard-api/pkg/helpers"
)

// authMetrics is published at /api/debug/vars under "auth".
var authMetrics = expvar.NewMap("auth")

// Reason tells why a token failed verification.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonExpired          Reason = "expired"
	ReasonInvalidSignature Reason = "invalid-signature"
	ReasonRevoked          Reason = "revoked"
)

// Verification is the outcome of TokenService.Verify. Claims is set only when Reason is ReasonNone.
type Verification struct {
	Claims *helpers.Claims
	Reason Reason
}

func (v Verification) Valid() bool { return v.Reason == ReasonNone && v.Claims != nil }

type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

const revokedMarker = "revoked"

type TokenService struct {
	JWT    *helpers.JWTManager
	Cache  repo.TokenCache
	Logger *logrus.Logger
	now    func() time.Time
}

func NewTokenService(jwtm *helpers.JWTManager, cache repo.TokenCache, logger *logrus.Logger) *TokenService {
	return &TokenService{JWT: jwtm, Cache: cache, Logger: logger, now: time.Now}
}

// Issue signs a token for userUlID with role's secret.
func (s *TokenService) Issue(ctx context.Context, role entity.Role, userUlID string) (IssuedToken, error) {
	tok, exp, err := s.JWT.Sign(string(role), userUlID)
	if err != nil {
		return IssuedToken{}, apperror.Wrap(apperror.Internal, "issue token", err)
	}
	authMetrics.Add("tokens_issued", 1)
	return IssuedToken{Token: tok, ExpiresAt: exp}, nil
}

// Verify checks the blacklist before the signature. Invalid tokens are reported
// through the Verification reason; the error is reserved for cache failures.
func (s *TokenService) Verify(ctx context.Context, role entity.Role, token string) (Verification, error) {
	revoked, err := s.Cache.Exists(ctx, helpers.KeyBlacklist(token))
	if err != nil {
		return Verification{}, err
	}
	if revoked {
		return Verification{Reason: ReasonRevoked}, nil
	}

	claims, err := s.JWT.Parse(string(role), token)
	switch {
	case err == nil:
		return Verification{Claims: claims}, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return Verification{Reason: ReasonExpired}, nil
	default:
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("role", role).Debug("token rejected")
		}
		return Verification{Reason: ReasonInvalidSignature}, nil
	}
}

// Revoke blacklists token until its own expiry. The token is decoded without
// checking its signature. An expired token is left alone.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	claims, err := s.JWT.DecodeUnverified(token)
	if err != nil {
		return apperror.Wrap(apperror.Validation, "invalid token", err)
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.Cache.Set(ctx, helpers.KeyBlacklist(token), revokedMarker, ttl); err != nil {
		return err
	}
	authMetrics.Add("tokens_revoked", 1)
	return nil
}
