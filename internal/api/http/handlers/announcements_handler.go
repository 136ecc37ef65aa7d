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

// AnnouncementsHandler exposes broadcast endpoints.
type AnnouncementsHandler struct {
	announcements *service.AnnouncementService
}

// NewAnnouncementsHandler constructs handler.
func NewAnnouncementsHandler(announcements *service.AnnouncementService) *AnnouncementsHandler {
	return &AnnouncementsHandler{announcements: announcements}
}

// Post handles POST /announcements.
func (h *AnnouncementsHandler) Post(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PostAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	announcement, err := h.announcements.Post(c.Context(), actor, service.PostInput{
		Title:      req.Title,
		Message:    req.Message,
		TargetRole: domain.TargetRole(req.TargetRole),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data":    dto.NewAnnouncementResponse(announcement),
		"message": "Announcement broadcasted successfully!",
	})
}

// List handles GET /announcements, filtered by the caller's role.
func (h *AnnouncementsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	announcements, err := h.announcements.ListFor(c.Context(), actor.Role)
	if err != nil {
		return err
	}
	items := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		items = append(items, dto.NewAnnouncementResponse(&announcements[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
