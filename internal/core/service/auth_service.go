package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
	"github.com/99minutos/user-service/internal/core/validation"
)

// timingPassword is hashed once at construction; unknown-email logins verify
// against its digest so they cost the same as a wrong password.
const timingPassword = "timing-equalizer!A1"

// AuthService implements registration, login and profile lookup.
type AuthService struct {
	store  ports.UserStore
	hasher ports.PasswordHasher
	tokens ports.TokenService
	gate   ports.EligibilityGate
	log    zerolog.Logger

	timingDigest string
}

func NewAuthService(
	store ports.UserStore,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	gate ports.EligibilityGate,
	log zerolog.Logger,
) *AuthService {
	s := &AuthService{store: store, hasher: hasher, tokens: tokens, gate: gate, log: log}
	if digest, err := hasher.Hash(timingPassword); err == nil {
		s.timingDigest = digest
	} else {
		log.Warn().Err(err).Msg("could not prepare login timing digest")
	}
	return s
}

// Register screens the identity, validates every field, hashes the password
// and persists the user.
// Screening runs first so a blocked identity costs no hashing work and is
// never written, not even transiently.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := normalizeEmail(in.Email)

	blocked, err := s.gate.Check(ctx, firstName, lastName, email)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("registration aborted: eligibility check failed")
		return nil, fmt.Errorf("register: %w", classify(err, domain.ErrEligibilityCheck))
	}
	if blocked {
		s.log.Info().Str("email", email).Msg("registration rejected: identity blacklisted")
		return nil, domain.ErrBlacklisted
	}

	candidate := domain.Candidate{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  in.Password,
	}
	if err := validation.Candidate(candidate); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return nil, ve
		}
		s.log.Error().Err(err).Msg("registration aborted: password hashing failed")
		return nil, fmt.Errorf("register: %w", classify(err, domain.ErrHashing))
	}
	candidate.PasswordHash = digest

	user, err := s.store.Create(ctx, candidate)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			return nil, ve
		case errors.Is(err, domain.ErrDuplicateEmail):
			return nil, domain.ErrDuplicateEmail
		}
		s.log.Error().Err(err).Str("email", email).Msg("registration aborted: store failure")
		return nil, fmt.Errorf("register: %w", classify(err, domain.ErrStore))
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return s.issue(user.Email)
}

// Login returns domain.ErrInvalidCredentials both for an unknown email and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.burnVerify(password)
			return nil, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Msg("login aborted: store failure")
		return nil, fmt.Errorf("login: %w", classify(err, domain.ErrStore))
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("login aborted: password verification failed")
		return nil, fmt.Errorf("login: %w", classify(err, domain.ErrHashing))
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user.Email)
}

// Profile returns the display projection of the authenticated user. An
// identity that no longer resolves to a user is domain.ErrUnauthorized.
func (s *AuthService) Profile(ctx context.Context, email string) (*domain.Profile, error) {
	p, err := s.store.FindProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		s.log.Error().Err(err).Msg("profile lookup failed")
		return nil, fmt.Errorf("profile: %w", classify(err, domain.ErrStore))
	}
	return p, nil
}

func (s *AuthService) issue(email string) (*ports.AuthResult, error) {
	token, err := s.tokens.Issue(domain.Identity{Email: email})
	if err != nil {
		s.log.Error().Err(err).Msg("token issuance failed")
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.AuthResult{Token: token, Type: ports.TokenTypeBearer}, nil
}

func (s *AuthService) burnVerify(password string) {
	if s.timingDigest == "" {
		return
	}
	_, _ = s.hasher.Verify(password, s.timingDigest)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// classify makes sure err matches sentinel under errors.Is.
func classify(err, sentinel error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
