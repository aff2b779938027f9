package helpers

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenResetCode_Shape(t *testing.T) {
	now := time.UnixMilli(1718000000123)

	code, err := GenResetCode(now)
	require.NoError(t, err)

	assert.Len(t, code, ResetCodeLen)
	assert.Equal(t, "1718000000123", code[:13])
	_, convErr := strconv.ParseUint(code, 10, 64)
	assert.NoError(t, convErr, "code should be numeric")
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "blacklist:abc.def.ghi", KeyBlacklist("abc.def.ghi"))
	assert.Equal(t, "pwd:reset:owner:01HX", KeyResetOwner("01HX"))
	assert.Equal(t, "pwd:reset:code:123", KeyResetCode("123"))
}
