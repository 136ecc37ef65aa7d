package domain

import "time"

// ActivityLogEntry is an immutable audit record attached to a ticket.
// Entries are appended once per lifecycle-relevant mutation and never
// edited or removed.
type ActivityLogEntry struct {
	ID        string
	TicketID  string
	ActorID   string
	Action    string
	Timestamp time.Time
}
