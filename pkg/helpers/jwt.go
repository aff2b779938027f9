package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrUnknownRole   = errors.New("no signing secret configured for role")
	ErrNoTokenExpiry = errors.New("token has no expiry")
)

// JWTManager signs and parses HS256 bearer tokens. Every role family has its own
// secret, so a token signed for one role never parses under another.
type JWTManager struct {
	secrets map[string][]byte
	expiry  time.Duration
	now     func() time.Time
}

// NewJWTManager builds a manager from role -> secret pairs. Roles with an empty secret are skipped.
// A zero expiry yields tokens that are already expired when issued.
func NewJWTManager(secrets map[string]string, expiry time.Duration) *JWTManager {
	m := &JWTManager{secrets: make(map[string][]byte, len(secrets)), expiry: expiry, now: time.Now}
	for role, s := range secrets {
		if s == "" {
			continue
		}
		m.secrets[role] = []byte(s)
	}
	return m
}

// WithClock replaces the time source used for issuing and validating tokens.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	m.now = now
	return m
}

func (m *JWTManager) Expiry() time.Duration { return m.expiry }

// Claims is the token payload: {"userUlId": "...", "exp": <unix seconds>}.
type Claims struct {
	UserUlID string `json:"userUlId"`
	jwt.RegisteredClaims
}

// Sign issues a token for userUlID using role's secret.
func (m *JWTManager) Sign(role, userUlID string) (string, time.Time, error) {
	secret, ok := m.secrets[role]
	if !ok {
		return "", time.Time{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	exp := m.now().Add(m.expiry)
	claims := &Claims{
		UserUlID: userUlID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(secret)
	return s, exp, err
}

// Parse verifies tokenStr against role's secret and validates its expiry.
// Errors are those of golang-jwt, so callers can match jwt.ErrTokenExpired and friends.
func (m *JWTManager) Parse(role, tokenStr string) (*Claims, error) {
	secret, ok := m.secrets[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}

// DecodeUnverified reads the claims without checking the signature.
// It is only fit for revocation, where the token is never trusted.
func (m *JWTManager) DecodeUnverified(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.ExpiresAt == nil {
		return nil, ErrNoTokenExpiry
	}
	return claims, nil
}
