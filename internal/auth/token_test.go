package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwego/maintenance-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	user := &domain.User{ID: "user-1", Role: domain.RoleTenant}

	token, exp, err := tm.GenerateToken(user)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleTenant, claims.Role)
	assert.NotEmpty(t, claims.RegisteredClaims.ID)
}

func TestTokenUniqueJTIPerIssue(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	user := &domain.User{ID: "user-1", Role: domain.RoleTenant}

	first, _, err := tm.GenerateToken(user)
	require.NoError(t, err)
	second, _, err := tm.GenerateToken(user)
	require.NoError(t, err)

	firstClaims, err := tm.ParseToken(first)
	require.NoError(t, err)
	secondClaims, err := tm.ParseToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, firstClaims.RegisteredClaims.ID, secondClaims.RegisteredClaims.ID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleTenant}
	token, _, err := NewTokenManager("secret-a", 60).GenerateToken(user)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 60).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	_, err := tm.ParseToken("not.a.token")
	assert.Error(t, err)
}
