package ports

import (
	"context"

	"github.com/99minutos/user-service/internal/core/domain"
)

// UserStore is the persistence capability the auth workflow depends on.
type UserStore interface {
	// FindByEmail returns the full record, digest included, or domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindProfileByEmail returns the display projection or domain.ErrUserNotFound.
	FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error)
	// Create validates and inserts c. It fails with *domain.ValidationError
	// listing every failing field, or domain.ErrDuplicateEmail when the unique
	// email constraint rejects the insert.
	Create(ctx context.Context, c domain.Candidate) (*domain.User, error)
}
