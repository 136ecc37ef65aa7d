package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qwego/maintenance-service/internal/api/dto"
	"github.com/qwego/maintenance-service/internal/auth"
	"github.com/qwego/maintenance-service/internal/service"
	apperrors "github.com/qwego/maintenance-service/pkg/util"
)

// DashboardHandler serves the role-filtered dashboard query.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get handles GET /dashboard.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	view, err := h.dashboard.ViewFor(c.Context(), actor)
	if err != nil {
		return err
	}

	resp := dto.DashboardResponse{
		Role:            view.Role,
		PendingApproval: view.PendingApproval,
	}
	for i := range view.Tickets {
		resp.Tickets = append(resp.Tickets, dto.NewTicketResponse(&view.Tickets[i]))
	}
	for i := range view.PendingUsers {
		resp.PendingUsers = append(resp.PendingUsers, dto.NewUserResponse(&view.PendingUsers[i]))
	}
	for i := range view.Technicians {
		resp.Technicians = append(resp.Technicians, dto.NewUserResponse(&view.Technicians[i]))
	}
	for i := range view.Announcements {
		resp.Announcements = append(resp.Announcements, dto.NewAnnouncementResponse(&view.Announcements[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}
