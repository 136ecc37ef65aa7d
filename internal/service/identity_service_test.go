package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwego/maintenance-service/internal/auth"
	"github.com/qwego/maintenance-service/internal/config"
	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/events"
	apperrors "github.com/qwego/maintenance-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}
}

func newIdentityFixture(t *testing.T) (*IdentityService, *fakeUserRepo, *fakeRevoker, *fakeDispatcher) {
	t.Helper()
	users := newFakeUserRepo()
	revoker := newFakeRevoker()
	dispatcher := &fakeDispatcher{}
	svc := NewIdentityService(testConfig(), IdentityDependencies{
		UserRepo:   users,
		Revoker:    revoker,
		Dispatcher: dispatcher,
	})
	return svc, users, revoker, dispatcher
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestRegisterTenantIsApprovedImmediately(t *testing.T) {
	svc, _, _, _ := newIdentityFixture(t)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		FullName: "Alice A.",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     domain.RoleTenant,
	})
	require.NoError(t, err)
	assert.True(t, user.IsApproved)
	assert.Equal(t, domain.RoleTenant, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "secret123", user.CredentialHash)
}

func TestRegisterTechnicianAwaitsApproval(t *testing.T) {
	svc, _, _, _ := newIdentityFixture(t)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "bob",
		FullName: "Bob B.",
		Email:    "bob@example.com",
		Password: "secret123",
		Role:     domain.RoleTechnician,
	})
	require.NoError(t, err)
	assert.False(t, user.IsApproved)
}

func TestRegisterRejectsManagerRole(t *testing.T) {
	svc, _, _, _ := newIdentityFixture(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "mallory",
		FullName: "Mallory M.",
		Email:    "mallory@example.com",
		Password: "secret123",
		Role:     domain.RoleManager,
	})
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, users, _, _ := newIdentityFixture(t)
	users.add(domain.User{Username: "alice", Email: "first@example.com"})

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		FullName: "Alice A.",
		Email:    "second@example.com",
		Password: "secret123",
		Role:     domain.RoleTenant,
	})
	assert.Equal(t, "CONFLICT", errorCode(t, err))
	assert.Contains(t, err.Error(), "username already exists")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users, _, _ := newIdentityFixture(t)
	users.add(domain.User{Username: "alice", Email: "alice@example.com"})

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice2",
		FullName: "Alice A.",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     domain.RoleTenant,
	})
	assert.Equal(t, "CONFLICT", errorCode(t, err))
	assert.Contains(t, err.Error(), "email already registered")
}

func TestAuthenticateFailureIsGeneric(t *testing.T) {
	svc, users, _, _ := newIdentityFixture(t)

	hash, err := auth.HashPassword("correct-password", 4)
	require.NoError(t, err)
	users.add(domain.User{Username: "alice", CredentialHash: hash, Role: domain.RoleTenant, IsApproved: true})

	_, _, _, unknownErr := svc.Authenticate(context.Background(), "nobody", "whatever")
	_, _, _, wrongPassErr := svc.Authenticate(context.Background(), "alice", "wrong-password")

	// Unknown username and wrong password must be indistinguishable.
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
	assert.Equal(t, "AUTHENTICATION_FAILED", errorCode(t, unknownErr))
	assert.Equal(t, "AUTHENTICATION_FAILED", errorCode(t, wrongPassErr))
}

func TestAuthenticateIssuesParsableToken(t *testing.T) {
	svc, users, _, _ := newIdentityFixture(t)

	hash, err := auth.HashPassword("secret123", 4)
	require.NoError(t, err)
	stored := users.add(domain.User{Username: "alice", CredentialHash: hash, Role: domain.RoleTenant, IsApproved: true})

	user, token, exp, err := svc.Authenticate(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
	assert.False(t, exp.IsZero())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, domain.RoleTenant, claims.Role)
	assert.NotEmpty(t, claims.RegisteredClaims.ID)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, users, revoker, _ := newIdentityFixture(t)

	hash, err := auth.HashPassword("secret123", 4)
	require.NoError(t, err)
	users.add(domain.User{Username: "alice", CredentialHash: hash, Role: domain.RoleTenant, IsApproved: true})

	_, token, _, err := svc.Authenticate(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims))

	revoked, err := revoker.IsRevoked(context.Background(), claims.RegisteredClaims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestApproveRequiresManager(t *testing.T) {
	svc, users, _, _ := newIdentityFixture(t)
	tenant := users.add(domain.User{Username: "alice", Role: domain.RoleTenant, IsApproved: true})
	pending := users.add(domain.User{Username: "bob", Role: domain.RoleTechnician})

	_, err := svc.Approve(context.Background(), tenant, pending.ID)
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))
}

func TestApproveMarksUserAndPublishesEvent(t *testing.T) {
	svc, users, _, dispatcher := newIdentityFixture(t)
	manager := users.add(domain.User{Username: "mgr", Role: domain.RoleManager, IsApproved: true})
	pending := users.add(domain.User{Username: "bob", Role: domain.RoleTechnician})

	approved, err := svc.Approve(context.Background(), manager, pending.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	stored, err := users.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsApproved)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventUserApproved, dispatcher.published[0].Type)
}

func TestApproveAlreadyApprovedIsNoOp(t *testing.T) {
	svc, users, _, dispatcher := newIdentityFixture(t)
	manager := users.add(domain.User{Username: "mgr", Role: domain.RoleManager, IsApproved: true})
	approved := users.add(domain.User{Username: "bob", Role: domain.RoleTechnician, IsApproved: true})

	result, err := svc.Approve(context.Background(), manager, approved.ID)
	require.NoError(t, err)
	assert.True(t, result.IsApproved)
	assert.Empty(t, dispatcher.published)
}

func TestApproveUnknownUser(t *testing.T) {
	svc, users, _, _ := newIdentityFixture(t)
	manager := users.add(domain.User{Username: "mgr", Role: domain.RoleManager, IsApproved: true})

	_, err := svc.Approve(context.Background(), manager, "missing")
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}
