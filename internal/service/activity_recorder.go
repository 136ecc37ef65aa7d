package service

import (
	"context"

	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/repository"
	apperrors "github.com/qwego/maintenance-service/pkg/util"
)

// ActivityRecorder appends audit entries for lifecycle-relevant mutations.
// Callers run it inside the same transaction as the mutation it describes.
type ActivityRecorder struct {
	log repository.ActivityLogRepository
}

// NewActivityRecorder builds the recorder.
func NewActivityRecorder(log repository.ActivityLogRepository) *ActivityRecorder {
	return &ActivityRecorder{log: log}
}

// Record appends one immutable entry stamped with the current time.
func (r *ActivityRecorder) Record(ctx context.Context, ticketID, actorID, action string) error {
	entry := &domain.ActivityLogEntry{
		TicketID: ticketID,
		ActorID:  actorID,
		Action:   action,
	}
	if err := r.log.Append(ctx, entry); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// History returns a ticket's entries in chronological order.
func (r *ActivityRecorder) History(ctx context.Context, ticketID string) ([]domain.ActivityLogEntry, error) {
	entries, err := r.log.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}
