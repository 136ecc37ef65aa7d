package service

import (
	"context"
	"fmt"

	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/repository"
	apperrors "github.com/qwego/maintenance-service/pkg/util"
)

// DashboardView is the role-filtered model behind the dashboard query.
// Exactly one shape is populated per role; PendingApproval short-circuits
// everything else.
type DashboardView struct {
	Role            domain.Role
	PendingApproval bool
	Tickets         []domain.Ticket
	PendingUsers    []domain.User
	Technicians     []domain.User
	Announcements   []domain.Announcement
}

// DashboardService assembles per-role dashboard views.
type DashboardService struct {
	tickets       repository.TicketRepository
	users         repository.UserRepository
	announcements repository.AnnouncementRepository
}

// NewDashboardService constructs the service.
func NewDashboardService(tickets repository.TicketRepository, users repository.UserRepository, announcements repository.AnnouncementRepository) *DashboardService {
	return &DashboardService{tickets: tickets, users: users, announcements: announcements}
}

// ViewFor branches purely on the actor's role and approval flag. An
// unapproved user sees only the pending view, regardless of role.
func (s *DashboardService) ViewFor(ctx context.Context, actor *domain.User) (*DashboardView, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !actor.IsApproved {
		return &DashboardView{Role: actor.Role, PendingApproval: true}, nil
	}

	view := &DashboardView{Role: actor.Role}

	switch actor.Role {
	case domain.RoleManager:
		tickets, err := s.tickets.ListAll(ctx)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		pending, err := s.users.ListPendingApproval(ctx)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		technicians, err := s.users.ListApprovedTechnicians(ctx)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		view.Tickets = tickets
		view.PendingUsers = pending
		view.Technicians = technicians

	case domain.RoleTenant:
		tickets, err := s.tickets.ListByTenant(ctx, actor.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		announcements, err := s.announcements.ListForRole(ctx, domain.RoleTenant)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		view.Tickets = tickets
		view.Announcements = announcements

	case domain.RoleTechnician:
		tickets, err := s.tickets.ListByTechnician(ctx, actor.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		announcements, err := s.announcements.ListForRole(ctx, domain.RoleTechnician)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		view.Tickets = tickets
		view.Announcements = announcements

	default:
		return nil, apperrors.NewInternalError(fmt.Errorf("unknown role %q", actor.Role))
	}

	return view, nil
}
