package domain

import "time"

// TicketStatus enumerates lifecycle states for maintenance tickets.
// Flow: Open -> Assigned -> In Progress -> Done.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusAssigned   TicketStatus = "Assigned"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusDone       TicketStatus = "Done"
)

// Ticket is a maintenance request raised by a tenant. TechnicianID is set
// if and only if the ticket has left the Open state.
type Ticket struct {
	ID            string
	TenantID      string
	TechnicianID  *string
	Title         string
	Description   string
	ImageFilename string
	Status        TicketStatus
	CreatedAt     time.Time
}
