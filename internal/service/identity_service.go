package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/qwego/maintenance-service/internal/auth"
	"github.com/qwego/maintenance-service/internal/config"
	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/events"
	"github.com/qwego/maintenance-service/internal/repository"
	apperrors "github.com/qwego/maintenance-service/pkg/util"
)

// IdentityService coordinates registration, login and approval flows.
type IdentityService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	revoker    auth.TokenRevoker
	dispatcher events.Dispatcher
	bcryptCost int
}

// IdentityDependencies bundles collaborators for the identity service.
type IdentityDependencies struct {
	UserRepo   repository.UserRepository
	Revoker    auth.TokenRevoker
	Dispatcher events.Dispatcher
}

// RegisterInput describes a registration submission.
type RegisterInput struct {
	Username    string
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
	Role        domain.Role
}

// NewIdentityService builds the service.
func NewIdentityService(cfg config.Config, deps IdentityDependencies) *IdentityService {
	return &IdentityService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		revoker:    deps.Revoker,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. Tenants are approved on the spot;
// technicians wait for the manager. Managers cannot self-register.
func (s *IdentityService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.FullName == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("username, full name, email and password are required", nil)
	}
	if input.Role != domain.RoleTenant && input.Role != domain.RoleTechnician {
		return nil, apperrors.NewValidationError("role must be tenant or technician", map[string]any{"role": input.Role})
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict("username already exists, please choose another", map[string]any{"field": "username"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered, please log in", map[string]any{"field": "email"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Username:       input.Username,
		FullName:       input.FullName,
		Email:          input.Email,
		PhoneNumber:    input.PhoneNumber,
		CredentialHash: hash,
		Role:           input.Role,
		IsApproved:     input.Role == domain.RoleTenant,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Authenticate verifies credentials and issues a session token. Unknown
// username and wrong password produce the same generic failure.
func (s *IdentityService) Authenticate(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewAuthenticationFailed()
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.CredentialHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewAuthenticationFailed()
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// Logout revokes the session token until its natural expiry.
func (s *IdentityService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.revoker == nil || claims == nil {
		return nil
	}
	until := time.Now()
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.revoker.Revoke(ctx, claims.RegisteredClaims.ID, until); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Approve marks the target user as approved. Manager only; approving an
// already-approved user is a no-op success.
func (s *IdentityService) Approve(ctx context.Context, actor *domain.User, targetUserID string) (*domain.User, error) {
	if !auth.CanPerform(actor, auth.ActionApproveUser, nil) {
		return nil, apperrors.NewForbidden("unauthorized action")
	}

	target, err := s.users.GetByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": targetUserID})
		}
		return nil, apperrors.MapError(err)
	}
	if target.IsApproved {
		return target, nil
	}

	if err := s.users.Approve(ctx, target.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	target.IsApproved = true

	s.publish(ctx, events.Event{
		Type:    events.EventUserApproved,
		ActorID: actor.ID,
		Payload: events.UserApprovedPayload{UserID: target.ID, Role: target.Role},
	})
	return target, nil
}

// GetByID is the explicit read-through lookup for rendering actor names.
func (s *IdentityService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListPendingApproval returns users waiting on the manager.
func (s *IdentityService) ListPendingApproval(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListPendingApproval(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ListApprovedTechnicians returns the assignable technician roster.
func (s *IdentityService) ListApprovedTechnicians(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListApprovedTechnicians(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *IdentityService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *IdentityService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
