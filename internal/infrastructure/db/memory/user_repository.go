// Package memory provides an in-process ports.UserStore for local development
// and tests. Nothing survives a restart.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/validation"
)

type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
	seq     int
	now     func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]domain.User), now: time.Now}
}

// Create checks and inserts under the same lock, so concurrent registrations
// of one email yield exactly one record.
func (r *UserRepository) Create(_ context.Context, c domain.Candidate) (*domain.User, error) {
	if err := validation.Candidate(c); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[c.Email]; exists {
		return nil, domain.ErrDuplicateEmail
	}
	r.seq++
	user := c.User(r.now().UTC())
	user.ID = strconv.Itoa(r.seq)
	r.byEmail[user.Email] = *user

	out := *user
	return &out, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return u.Profile(), nil
}

// Ping always succeeds.
func (r *UserRepository) Ping(context.Context) error { return nil }

// Len returns the number of stored users.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byEmail)
}
