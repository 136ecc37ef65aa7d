package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qwego/maintenance-service/internal/auth"
	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/events"
	"github.com/qwego/maintenance-service/internal/repository"
	apperrors "github.com/qwego/maintenance-service/pkg/util"
)

// AnnouncementService lets the manager broadcast messages to a role or to all.
type AnnouncementService struct {
	announcements repository.AnnouncementRepository
	dispatcher    events.Dispatcher
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(announcements repository.AnnouncementRepository, dispatcher events.Dispatcher) *AnnouncementService {
	return &AnnouncementService{announcements: announcements, dispatcher: dispatcher}
}

// PostInput describes a broadcast submission.
type PostInput struct {
	Title      string
	Message    string
	TargetRole domain.TargetRole
}

// Post creates an announcement. Manager only; the target must be one of
// tenant, technician or all.
func (s *AnnouncementService) Post(ctx context.Context, actor *domain.User, input PostInput) (*domain.Announcement, error) {
	if !auth.CanPerform(actor, auth.ActionPostAnnouncement, nil) {
		return nil, apperrors.NewForbidden("unauthorized action")
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Message) == "" {
		return nil, apperrors.NewValidationError("title and message are required", nil)
	}
	if !input.TargetRole.Valid() {
		return nil, apperrors.NewValidationError("invalid announcement target", map[string]any{"target_role": input.TargetRole})
	}

	announcement := &domain.Announcement{
		Title:      strings.TrimSpace(input.Title),
		Message:    strings.TrimSpace(input.Message),
		TargetRole: input.TargetRole,
		AuthorID:   actor.ID,
	}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAnnouncementPosted,
			ActorID:   actor.ID,
			Timestamp: time.Now(),
			Payload: events.AnnouncementPostedPayload{
				AnnouncementID: announcement.ID,
				TargetRole:     announcement.TargetRole,
				Title:          announcement.Title,
			},
		})
	}
	return announcement, nil
}

// ListFor returns announcements visible to the role, newest first.
func (s *AnnouncementService) ListFor(ctx context.Context, role domain.Role) ([]domain.Announcement, error) {
	announcements, err := s.announcements.ListForRole(ctx, role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return announcements, nil
}
