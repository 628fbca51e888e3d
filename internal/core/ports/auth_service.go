package ports

import (
	"context"

	"github.com/99minutos/user-service/internal/core/domain"
)

// TokenTypeBearer is the only token type the service hands out.
const TokenTypeBearer = "Bearer"

// RegisterInput carries the registration fields as submitted by the client.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthResult is returned by successful registrations and logins.
type AuthResult struct {
	Token string
	Type  string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, email string) (*domain.Profile, error)
}
