package dto

import "github.com/qwego/maintenance-service/internal/domain"

// DashboardResponse is the role-filtered dashboard payload. Sections not
// relevant to the caller's role are omitted.
type DashboardResponse struct {
	Role            domain.Role            `json:"role"`
	PendingApproval bool                   `json:"pending_approval"`
	Tickets         []TicketResponse       `json:"tickets,omitempty"`
	PendingUsers    []UserResponse         `json:"pending_users,omitempty"`
	Technicians     []UserResponse         `json:"technicians,omitempty"`
	Announcements   []AnnouncementResponse `json:"announcements,omitempty"`
}
