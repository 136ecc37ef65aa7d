package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/qwego/maintenance-service/internal/api/dto"
	"github.com/qwego/maintenance-service/internal/auth"
	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/service"
	apperrors "github.com/qwego/maintenance-service/pkg/util"
)

// AuthHandler exposes registration and session endpoints.
type AuthHandler struct {
	identity *service.IdentityService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(identity *service.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.identity.Register(c.Context(), service.RegisterInput{
		Username:    req.Username,
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	message := "Registration successful! You can now log in and report issues."
	if !user.IsApproved {
		message = "Registration successful! Please log in to await Manager approval."
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data":    dto.NewUserResponse(user),
		"message": message,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, token, exp, err := h.identity.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout: the session token is revoked until its
// natural expiry.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.identity.Logout(c.Context(), claims); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// ForgotPassword handles GET /auth/password/forgot. There is no self-service
// reset; password changes go through the property manager.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "For security reasons, please contact your Property Manager (manager@qwego.com) to reset your password.",
	})
}
