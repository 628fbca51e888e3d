package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/validation"
)

const uniqueViolation = "23505"

// UserRepository implements ports.UserStore on PostgreSQL. The users_email_unique
// constraint is the only guard against duplicate registrations.
type UserRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool, now: time.Now}
}

func (r *UserRepository) Create(ctx context.Context, c domain.Candidate) (*domain.User, error) {
	if err := validation.Candidate(c); err != nil {
		return nil, err
	}

	user := c.User(r.now().UTC())
	user.ID = uuid.NewString()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, first_name, last_name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return nil, insertError(err)
	}
	return user, nil
}

// insertError maps the users_email_unique violation to domain.ErrDuplicateEmail
// and anything else to domain.ErrStore.
func insertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicateEmail
	}
	return fmt.Errorf("%w: insert user: %v", domain.ErrStore, err)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, password_hash, created_at
		FROM users WHERE email = $1
	`, email)

	var u domain.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", domain.ErrStore, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (r *UserRepository) FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT first_name, last_name, email
		FROM users WHERE email = $1
	`, email)

	var p domain.Profile
	if err := row.Scan(&p.FirstName, &p.LastName, &p.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find profile: %v", domain.ErrStore, err)
	}
	return &p, nil
}

// Ping reports whether the pool can reach the server.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
