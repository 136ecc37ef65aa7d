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

// TicketsHandler manages ticket lifecycle endpoints.
type TicketsHandler struct {
	tickets  *service.TicketService
	maxBytes int64
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, maxBytes int) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, maxBytes: int64(maxBytes)}
}

// Create handles POST /tickets. Multipart form: title, description and a
// mandatory image part. The service stores the image only after the request
// is authorized and valid; the image write still precedes the ticket row
// commit and the two are deliberately not atomic.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	title := c.FormValue("title")
	description := c.FormValue("description")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewValidationError("an image upload is mandatory to report an issue", map[string]any{"field": "image"})
	}
	if fileHeader.Filename == "" {
		return apperrors.NewValidationError("no selected image file, please choose a photo", map[string]any{"field": "image"})
	}
	if h.maxBytes > 0 && fileHeader.Size > h.maxBytes {
		return apperrors.NewValidationError("image exceeds the maximum upload size", map[string]any{"max_bytes": h.maxBytes})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.MapError(err)
	}
	defer file.Close()

	ticket, err := h.tickets.Submit(c.Context(), actor, service.SubmitInput{
		Title:         title,
		Description:   description,
		ImageFilename: fileHeader.Filename,
		Image:         file,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Get handles GET /tickets/:id with the chronological activity log.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ticket, history, err := h.tickets.GetDetail(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetailResponse(ticket, history)})
}

// Assign handles POST /tickets/:id/assign.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TechnicianID == "" {
		return apperrors.NewValidationError("technician_id required", nil)
	}

	ticket, err := h.tickets.Assign(c.Context(), actor, c.Params("id"), req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// UpdateStatus handles POST /tickets/:id/status. Values outside
// {In Progress, Done} are accepted and ignored without effect.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.UpdateStatus(c.Context(), actor, c.Params("id"), domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}
