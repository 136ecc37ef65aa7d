package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/qwego/maintenance-service/internal/auth"
	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/events"
	"github.com/qwego/maintenance-service/internal/persistence"
	"github.com/qwego/maintenance-service/internal/repository"
	"github.com/qwego/maintenance-service/internal/storage"
	apperrors "github.com/qwego/maintenance-service/pkg/util"
)

// TicketService owns the ticket lifecycle: Open -> Assigned -> In Progress -> Done.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	recorder   *ActivityRecorder
	images     storage.ImageStore
	tx         persistence.Transactor
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Recorder   *ActivityRecorder
	Images     storage.ImageStore
	Transactor persistence.Transactor
	Dispatcher events.Dispatcher
}

// SubmitInput describes a tenant's maintenance request. Image carries the
// upload body; it is read only once the request is authorized and valid.
type SubmitInput struct {
	Title         string
	Description   string
	ImageFilename string
	Image         io.Reader
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		recorder:   deps.Recorder,
		images:     deps.Images,
		tx:         deps.Transactor,
		dispatcher: deps.Dispatcher,
	}
}

// Submit creates a new Open ticket for an approved tenant. A ticket cannot
// exist without an image reference. The image reaches the blob store only
// after authorization and field validation pass; a denied or invalid request
// leaves no file behind.
func (s *TicketService) Submit(ctx context.Context, actor *domain.User, input SubmitInput) (*domain.Ticket, error) {
	if !auth.CanPerform(actor, auth.ActionCreateTicket, nil) {
		return nil, apperrors.NewForbidden("unauthorized action")
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}
	if strings.TrimSpace(input.ImageFilename) == "" || input.Image == nil {
		return nil, apperrors.NewValidationError("an image upload is mandatory to report an issue", map[string]any{"field": "image"})
	}

	storedName, err := s.images.Save(ctx, input.ImageFilename, input.Image)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyFilename) {
			return nil, apperrors.NewValidationError("no selected image file, please choose a photo", map[string]any{"field": "image"})
		}
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		TenantID:      actor.ID,
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		ImageFilename: storedName,
		Status:        domain.TicketStatusOpen,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.tickets.Create(ctx, ticket); err != nil {
			return err
		}
		return s.recorder.Record(ctx, ticket.ID, actor.ID, "Ticket Submitted by Tenant")
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventTicketSubmitted,
		ActorID: actor.ID,
		Payload: events.TicketSubmittedPayload{
			TicketID: ticket.ID,
			TenantID: ticket.TenantID,
			Title:    ticket.Title,
		},
	})
	return ticket, nil
}

// Assign hands a ticket to an approved technician. Allowed from Open or
// Assigned; re-assignment overwrites the technician and is always logged.
func (s *TicketService) Assign(ctx context.Context, actor *domain.User, ticketID, technicianID string) (*domain.Ticket, error) {
	if !auth.CanPerform(actor, auth.ActionAssignTicket, nil) {
		return nil, apperrors.NewForbidden("unauthorized action")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	technician, err := s.users.GetByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
		}
		return nil, apperrors.MapError(err)
	}
	if technician.Role != domain.RoleTechnician || !technician.IsApproved {
		return nil, apperrors.NewValidationError("assignee must be an approved technician", map[string]any{"technician_id": technicianID})
	}

	if ticket.Status != domain.TicketStatusOpen && ticket.Status != domain.TicketStatusAssigned {
		return nil, apperrors.NewConflict("ticket can no longer be assigned", map[string]any{"status": ticket.Status})
	}

	ticket.TechnicianID = &technician.ID
	ticket.Status = domain.TicketStatusAssigned

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return err
		}
		return s.recorder.Record(ctx, ticket.ID, actor.ID, fmt.Sprintf("Assigned to Technician %s.", technician.FullName))
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventTicketAssigned,
		ActorID: actor.ID,
		Payload: events.TicketAssignedPayload{
			TicketID:     ticket.ID,
			TechnicianID: technician.ID,
		},
	})
	return ticket, nil
}

// UpdateStatus moves an assigned ticket forward. Only the assigned technician
// may call it; Done tickets are terminal. Status values outside
// {In Progress, Done} are swallowed without state change, log entry or error,
// matching the historical permissive behavior.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.User, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	if !auth.CanPerform(actor, auth.ActionUpdateTicketStatus, ticket) {
		return nil, apperrors.NewForbidden("you can only update tickets assigned to you")
	}
	if ticket.Status == domain.TicketStatusDone {
		return nil, apperrors.NewConflict("completed ticket can no longer change", map[string]any{"status": ticket.Status})
	}

	if newStatus != domain.TicketStatusInProgress && newStatus != domain.TicketStatusDone {
		return ticket, nil
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return err
		}
		return s.recorder.Record(ctx, ticket.ID, actor.ID, fmt.Sprintf("Status updated to: %s", newStatus))
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventTicketStatusChanged,
		ActorID: actor.ID,
		Payload: events.TicketStatusChangedPayload{
			TicketID:  ticket.ID,
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// GetDetail fetches a ticket with its chronological activity log. Visible to
// the owning tenant, the assigned technician and the manager.
func (s *TicketService) GetDetail(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, []domain.ActivityLogEntry, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, nil, apperrors.MapError(err)
	}
	if !s.canView(actor, ticket) {
		return nil, nil, apperrors.NewForbidden("unauthorized action")
	}

	history, err := s.recorder.History(ctx, ticket.ID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, history, nil
}

func (s *TicketService) canView(actor *domain.User, ticket *domain.Ticket) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case domain.RoleManager:
		return true
	case domain.RoleTenant:
		return ticket.TenantID == actor.ID
	case domain.RoleTechnician:
		return ticket.TechnicianID != nil && *ticket.TechnicianID == actor.ID
	}
	return false
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
