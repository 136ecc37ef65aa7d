package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/persistence"
)

// AnnouncementRepository persists manager broadcasts.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *domain.Announcement) error
	ListForRole(ctx context.Context, role domain.Role) ([]domain.Announcement, error)
}

type announcementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository constructs repository.
func NewAnnouncementRepository(pool *pgxpool.Pool) AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *domain.Announcement) error {
	const query = `
        INSERT INTO announcements (title, message, target_role, author_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`

	q := persistence.QuerierFromContext(ctx, r.pool)
	return q.QueryRow(ctx, query,
		announcement.Title,
		announcement.Message,
		announcement.TargetRole,
		announcement.AuthorID,
	).Scan(&announcement.ID, &announcement.CreatedAt)
}

func (r *announcementRepository) ListForRole(ctx context.Context, role domain.Role) ([]domain.Announcement, error) {
	const query = `
        SELECT id, title, message, target_role, author_id, created_at
        FROM announcements
        WHERE target_role=$1 OR target_role=$2
        ORDER BY created_at DESC`

	q := persistence.QuerierFromContext(ctx, r.pool)
	rows, err := q.Query(ctx, query, string(role), domain.TargetAll)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Announcement
	for rows.Next() {
		var announcement domain.Announcement
		if err := rows.Scan(
			&announcement.ID,
			&announcement.Title,
			&announcement.Message,
			&announcement.TargetRole,
			&announcement.AuthorID,
			&announcement.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, announcement)
	}
	return result, rows.Err()
}
