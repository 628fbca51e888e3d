package security

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/user-service/internal/core/domain"
)

func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := newTestHasher(t)

	digest, err := h.Hash("pasS!123")
	require.NoError(t, err)
	assert.NotEqual(t, "pasS!123", digest)

	ok, err := h.Verify("pasS!123", digest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasher_FreshSaltPerCall(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Hash("pasS!123")
	require.NoError(t, err)
	b, err := h.Hash("pasS!123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_MismatchIsNotAnError(t *testing.T) {
	h := newTestHasher(t)
	digest, err := h.Hash("pasS!123")
	require.NoError(t, err)

	ok, err := h.Verify("wrong!Pass", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	h := newTestHasher(t)

	ok, err := h.Verify("pasS!123", "not-a-bcrypt-digest")
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrHashing)
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash("A!" + strings.Repeat("a", 80))
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "password", ve.Fields[0].Field)
}

func TestNewBcryptHasher_Cost(t *testing.T) {
	h, err := NewBcryptHasher(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, h.cost)

	_, err = NewBcryptHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}
