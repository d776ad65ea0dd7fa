package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode("Abebe")
	assert.Len(t, code, 9)
	assert.True(t, strings.HasPrefix(code, "ABE"))
	assert.Equal(t, strings.ToUpper(code), code)

	// nombre corto: prefijo completo
	short := GenerateReferralCode("Al")
	assert.True(t, strings.HasPrefix(short, "AL"))
	assert.Len(t, short, 8)
}

func TestNewUser(t *testing.T) {
	u := NewUser("Marta", "marta@example.com", "hash")
	require.NotNil(t, u)
	assert.Equal(t, RoleUser, u.Role)
	assert.NotEmpty(t, u.ReferralCode)
	assert.NotNil(t, u.ReferredUsers)
	assert.False(t, u.CreatedAt.IsZero())
	assert.False(t, u.IsAdmin())
}
