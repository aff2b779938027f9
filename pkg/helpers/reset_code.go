package helpers

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

// ResetCodeLen is the fixed length of a password reset code.
const ResetCodeLen = 15

// Redis keys for the reset flow. Both directions are stored so a request can find the
// live code of a user and a confirmation can find the owner of a code.

func KeyResetOwner(userUlID string) string { return "pwd:reset:owner:" + userUlID }
func KeyResetCode(code string) string      { return "pwd:reset:code:" + code }

// KeyBlacklist is the Redis key marking a revoked bearer token.
func KeyBlacklist(token string) string { return "blacklist:" + token }

// GenResetCode concatenates the millisecond timestamp with a random 5-digit number and
// keeps the first ResetCodeLen characters. Uniqueness is probabilistic.
func GenResetCode(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	s := strconv.FormatInt(now.UnixMilli(), 10) + strconv.FormatInt(n.Int64()+10000, 10)
	if len(s) > ResetCodeLen {
		s = s[:ResetCodeLen]
	}
	return s, nil
}
