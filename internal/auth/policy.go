package auth

import "github.com/qwego/maintenance-service/internal/domain"

// Action enumerates every mutating or role-gated operation.
type Action string

const (
	ActionCreateTicket        Action = "createTicket"
	ActionApproveUser         Action = "approveUser"
	ActionAssignTicket        Action = "assignTicket"
	ActionUpdateTicketStatus  Action = "updateTicketStatus"
	ActionPostAnnouncement    Action = "postAnnouncement"
	ActionViewTenantDashboard Action = "viewTenantDashboard"
)

// CanPerform is the single authorization decision point, evaluated before
// every mutating operation. It is a pure function of its arguments: no
// hidden state, identical inputs always yield identical results.
//
// The ticket argument is only consulted for updateTicketStatus, where the
// actor must be the assigned technician; pass nil for other actions.
func CanPerform(actor *domain.User, action Action, ticket *domain.Ticket) bool {
	if actor == nil {
		return false
	}

	switch action {
	case ActionCreateTicket, ActionViewTenantDashboard:
		return actor.Role == domain.RoleTenant && actor.IsApproved
	case ActionApproveUser, ActionAssignTicket, ActionPostAnnouncement:
		return actor.Role == domain.RoleManager
	case ActionUpdateTicketStatus:
		if actor.Role != domain.RoleTechnician {
			return false
		}
		if ticket == nil || ticket.TechnicianID == nil {
			return false
		}
		return *ticket.TechnicianID == actor.ID
	default:
		return false
	}
}
