package ports

import (
	"context"

	"github.com/99minutos/user-service/internal/core/domain"
)

// PasswordHasher produces and checks salted one-way digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports a mismatch as (false, nil); errors are reserved for
	// malformed digests and hashing failures.
	Verify(plaintext, digest string) (bool, error)
}

// TokenService issues and verifies stateless bearer tokens.
type TokenService interface {
	Issue(id domain.Identity) (string, error)
	Verify(token string) (domain.Identity, error)
}

// EligibilityGate screens an identity before an account is created.
type EligibilityGate interface {
	Check(ctx context.Context, firstName, lastName, email string) (blocked bool, err error)
}
