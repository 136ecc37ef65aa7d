package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/persistence"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Approve(ctx context.Context, id string) error
	ListPendingApproval(ctx context.Context) ([]domain.User, error)
	ListApprovedTechnicians(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, username, full_name, email, phone_number, credential_hash, role, is_approved, created_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, full_name, email, phone_number, credential_hash, role, is_approved)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`

	q := persistence.QuerierFromContext(ctx, r.pool)
	return q.QueryRow(ctx, query,
		user.Username,
		user.FullName,
		user.Email,
		user.PhoneNumber,
		user.CredentialHash,
		user.Role,
		user.IsApproved,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username=$1`
	return r.fetchSingle(ctx, query, username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	q := persistence.QuerierFromContext(ctx, r.pool)
	var user domain.User
	if err := q.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.FullName,
		&user.Email,
		&user.PhoneNumber,
		&user.CredentialHash,
		&user.Role,
		&user.IsApproved,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Approve(ctx context.Context, id string) error {
	const query = `UPDATE users SET is_approved=TRUE WHERE id=$1`

	q := persistence.QuerierFromContext(ctx, r.pool)
	cmd, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) ListPendingApproval(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE is_approved=FALSE ORDER BY created_at ASC`
	return r.fetchMany(ctx, query)
}

func (r *userRepository) ListApprovedTechnicians(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE role=$1 AND is_approved=TRUE ORDER BY full_name ASC`
	return r.fetchMany(ctx, query, domain.RoleTechnician)
}

func (r *userRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	q := persistence.QuerierFromContext(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.FullName,
			&user.Email,
			&user.PhoneNumber,
			&user.CredentialHash,
			&user.Role,
			&user.IsApproved,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
