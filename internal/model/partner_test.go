package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginMessage(t *testing.T) {
	assert.Equal(t, "Your application is still pending approval", StatusPending.LoginMessage())
	assert.Equal(t, "Your application has been rejected", StatusRejected.LoginMessage())
	assert.Equal(t, "Your account has been suspended", StatusSuspended.LoginMessage())
	assert.Empty(t, StatusApproved.LoginMessage())
	assert.Equal(t, "Account not active", PartnerStatus("corrupt").LoginMessage())
}

func TestValidBusinessType(t *testing.T) {
	for _, bt := range BusinessTypes {
		assert.True(t, ValidBusinessType(bt), bt)
	}
	assert.False(t, ValidBusinessType("Piracy"))
	assert.False(t, ValidBusinessType(""))
	assert.False(t, ValidBusinessType("agriculture")) // case sensitive
}

func TestPasswordHashing(t *testing.T) {
	var p Partner
	require.NoError(t, p.SetPassword("secret-pass"))

	assert.NotEqual(t, "secret-pass", p.PasswordHash)
	assert.True(t, p.CheckPassword("secret-pass"))
	assert.False(t, p.CheckPassword("wrong"))

	// Re-hashing replaces the credential
	require.NoError(t, p.SetPassword("new-pass"))
	assert.True(t, p.CheckPassword("new-pass"))
	assert.False(t, p.CheckPassword("secret-pass"))
}

func TestCheckPasswordWithoutHash(t *testing.T) {
	var p Partner
	assert.False(t, p.CheckPassword(""))
	assert.False(t, p.CheckPassword("anything"))
}
