package dto

import (
	"time"

	"github.com/qwego/maintenance-service/internal/domain"
)

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	TechnicianID string `json:"technician_id"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// TicketResponse is the summary view of a ticket.
type TicketResponse struct {
	ID            string              `json:"id"`
	TenantID      string              `json:"tenant_id"`
	TechnicianID  *string             `json:"technician_id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	ImageFilename string              `json:"image_filename"`
	Status        domain.TicketStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ActivityLogResponse is one audit entry on a ticket.
type ActivityLogResponse struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// TicketDetailResponse is a ticket with its chronological activity log.
type TicketDetailResponse struct {
	TicketResponse
	ActivityLog []ActivityLogResponse `json:"activity_log"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:            ticket.ID,
		TenantID:      ticket.TenantID,
		TechnicianID:  ticket.TechnicianID,
		Title:         ticket.Title,
		Description:   ticket.Description,
		ImageFilename: ticket.ImageFilename,
		Status:        ticket.Status,
		CreatedAt:     ticket.CreatedAt,
	}
}

// NewTicketDetailResponse maps a ticket with history.
func NewTicketDetailResponse(ticket *domain.Ticket, history []domain.ActivityLogEntry) TicketDetailResponse {
	entries := make([]ActivityLogResponse, 0, len(history))
	for _, entry := range history {
		entries = append(entries, ActivityLogResponse{
			ID:        entry.ID,
			ActorID:   entry.ActorID,
			Action:    entry.Action,
			Timestamp: entry.Timestamp,
		})
	}
	return TicketDetailResponse{
		TicketResponse: NewTicketResponse(ticket),
		ActivityLog:    entries,
	}
}
