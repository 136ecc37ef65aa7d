package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qwego/maintenance-service/internal/domain"
)

func TestCanPerform(t *testing.T) {
	techID := "tech-1"
	otherID := "tech-2"
	assignedTicket := &domain.Ticket{ID: "t1", TechnicianID: &techID}
	unassignedTicket := &domain.Ticket{ID: "t2"}

	approvedTenant := &domain.User{ID: "u1", Role: domain.RoleTenant, IsApproved: true}
	pendingTenant := &domain.User{ID: "u2", Role: domain.RoleTenant}
	manager := &domain.User{ID: "m1", Role: domain.RoleManager, IsApproved: true}
	assignedTech := &domain.User{ID: techID, Role: domain.RoleTechnician, IsApproved: true}
	otherTech := &domain.User{ID: otherID, Role: domain.RoleTechnician, IsApproved: true}

	tests := []struct {
		name   string
		actor  *domain.User
		action Action
		ticket *domain.Ticket
		want   bool
	}{
		{"nil actor denied", nil, ActionCreateTicket, nil, false},
		{"approved tenant creates ticket", approvedTenant, ActionCreateTicket, nil, true},
		{"pending tenant cannot create", pendingTenant, ActionCreateTicket, nil, false},
		{"manager cannot create ticket", manager, ActionCreateTicket, nil, false},
		{"technician cannot create ticket", assignedTech, ActionCreateTicket, nil, false},
		{"manager approves user", manager, ActionApproveUser, nil, true},
		{"tenant cannot approve", approvedTenant, ActionApproveUser, nil, false},
		{"manager assigns ticket", manager, ActionAssignTicket, nil, true},
		{"technician cannot assign", assignedTech, ActionAssignTicket, nil, false},
		{"manager posts announcement", manager, ActionPostAnnouncement, nil, true},
		{"tenant cannot post announcement", approvedTenant, ActionPostAnnouncement, nil, false},
		{"assigned technician updates status", assignedTech, ActionUpdateTicketStatus, assignedTicket, true},
		{"other technician denied", otherTech, ActionUpdateTicketStatus, assignedTicket, false},
		{"unassigned ticket denied", assignedTech, ActionUpdateTicketStatus, unassignedTicket, false},
		{"nil ticket denied", assignedTech, ActionUpdateTicketStatus, nil, false},
		{"manager cannot update status", manager, ActionUpdateTicketStatus, assignedTicket, false},
		{"tenant dashboard for approved tenant", approvedTenant, ActionViewTenantDashboard, nil, true},
		{"unknown action denied", manager, Action("deleteEverything"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPerform(tt.actor, tt.action, tt.ticket))
		})
	}
}

func TestCanPerformIsPure(t *testing.T) {
	techID := "tech-1"
	actor := &domain.User{ID: techID, Role: domain.RoleTechnician, IsApproved: true}
	ticket := &domain.Ticket{ID: "t1", TechnicianID: &techID}

	first := CanPerform(actor, ActionUpdateTicketStatus, ticket)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, CanPerform(actor, ActionUpdateTicketStatus, ticket))
	}
}
