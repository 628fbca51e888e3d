package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/user-service/internal/core/domain"
)

// Claims is the payload of every bearer token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// JWTService implements ports.TokenService with HS256 signatures.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService returns a token service signing with secret. A zero ttl issues
// tokens without an expiry claim.
func NewJWTService(secret []byte, ttl time.Duration) (*JWTService, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt: empty signing secret")
	}
	return &JWTService{secret: secret, ttl: ttl, now: time.Now}, nil
}

func (s *JWTService) Issue(id domain.Identity) (string, error) {
	claims := Claims{Email: id.Email}
	if s.ttl > 0 {
		now := s.now()
		claims.IssuedAt = jwt.NewNumericDate(now)
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature (constant-time HMAC comparison), the algorithm
// and, when present, the expiry. Any failure is domain.ErrInvalidToken.
func (s *JWTService) Verify(token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.Email == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	return domain.Identity{Email: claims.Email}, nil
}
