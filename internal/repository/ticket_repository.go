package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/persistence"
)

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Ticket, error)
	ListByTechnician(ctx context.Context, technicianID string) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, tenant_id, technician_id, title, description, image_filename, status, created_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (tenant_id, technician_id, title, description, image_filename, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`

	q := persistence.QuerierFromContext(ctx, r.pool)
	return q.QueryRow(ctx, query,
		ticket.TenantID,
		ticket.TechnicianID,
		ticket.Title,
		ticket.Description,
		ticket.ImageFilename,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET technician_id=$1, status=$2 WHERE id=$3`

	q := persistence.QuerierFromContext(ctx, r.pool)
	cmd, err := q.Exec(ctx, query,
		ticket.TechnicianID,
		ticket.Status,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`

	q := persistence.QuerierFromContext(ctx, r.pool)
	var ticket domain.Ticket
	if err := q.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.TenantID,
		&ticket.TechnicianID,
		&ticket.Title,
		&ticket.Description,
		&ticket.ImageFilename,
		&ticket.Status,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at DESC`
	return r.fetchMany(ctx, query)
}

func (r *ticketRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE tenant_id=$1 ORDER BY created_at DESC`
	return r.fetchMany(ctx, query, tenantID)
}

func (r *ticketRepository) ListByTechnician(ctx context.Context, technicianID string) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE technician_id=$1 ORDER BY created_at DESC`
	return r.fetchMany(ctx, query, technicianID)
}

func (r *ticketRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	q := persistence.QuerierFromContext(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TenantID,
			&ticket.TechnicianID,
			&ticket.Title,
			&ticket.Description,
			&ticket.ImageFilename,
			&ticket.Status,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
