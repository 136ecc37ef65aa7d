package events

import (
	"time"

	"github.com/qwego/maintenance-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketSubmitted     EventType = "ticket_submitted"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventUserApproved        EventType = "user_approved"
	EventAnnouncementPosted  EventType = "announcement_posted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketSubmittedPayload payload.
type TicketSubmittedPayload struct {
	TicketID string `json:"ticket_id"`
	TenantID string `json:"tenant_id"`
	Title    string `json:"title"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TicketID     string `json:"ticket_id"`
	TechnicianID string `json:"technician_id"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  string              `json:"ticket_id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// UserApprovedPayload payload.
type UserApprovedPayload struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// AnnouncementPostedPayload payload.
type AnnouncementPostedPayload struct {
	AnnouncementID string            `json:"announcement_id"`
	TargetRole     domain.TargetRole `json:"target_role"`
	Title          string            `json:"title"`
}
