package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/persistence"
)

// ActivityLogRepository stores append-only audit entries. Entries are never
// updated or deleted; the interface deliberately has no mutation beyond Append.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLogEntry) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.ActivityLogEntry, error)
}

type activityLogRepository struct {
	pool *pgxpool.Pool
}

// NewActivityLogRepository builds repository.
func NewActivityLogRepository(pool *pgxpool.Pool) ActivityLogRepository {
	return &activityLogRepository{pool: pool}
}

func (r *activityLogRepository) Append(ctx context.Context, entry *domain.ActivityLogEntry) error {
	const query = `
        INSERT INTO activity_log (ticket_id, actor_id, action)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`

	q := persistence.QuerierFromContext(ctx, r.pool)
	return q.QueryRow(ctx, query,
		entry.TicketID,
		entry.ActorID,
		entry.Action,
	).Scan(&entry.ID, &entry.Timestamp)
}

func (r *activityLogRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.ActivityLogEntry, error) {
	const query = `
        SELECT id, ticket_id, actor_id, action, created_at
        FROM activity_log WHERE ticket_id=$1 ORDER BY created_at ASC`

	q := persistence.QuerierFromContext(ctx, r.pool)
	rows, err := q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ActivityLogEntry
	for rows.Next() {
		var entry domain.ActivityLogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.ActorID,
			&entry.Action,
			&entry.Timestamp,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
