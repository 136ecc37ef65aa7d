package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qwego/maintenance-service/internal/api/dto"
	"github.com/qwego/maintenance-service/internal/auth"
	"github.com/qwego/maintenance-service/internal/service"
	apperrors "github.com/qwego/maintenance-service/pkg/util"
)

// UsersHandler exposes manager account administration.
type UsersHandler struct {
	identity *service.IdentityService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(identity *service.IdentityService) *UsersHandler {
	return &UsersHandler{identity: identity}
}

// Approve handles POST /users/:id/approve. Idempotent.
func (h *UsersHandler) Approve(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.identity.Approve(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data":    dto.NewUserResponse(user),
		"message": "User " + user.Username + " has been approved!",
	})
}
