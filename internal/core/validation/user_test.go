package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/user-service/internal/core/domain"
)

func validCandidate() domain.Candidate {
	return domain.Candidate{
		FirstName: "Abraham",
		LastName:  "Ventura",
		Email:     "a@x.com",
		Password:  "pasS!123",
	}
}

func TestCandidate_Valid(t *testing.T) {
	assert.NoError(t, Candidate(validCandidate()))
}

func TestCandidate_CollectsEveryViolation(t *testing.T) {
	c := domain.Candidate{Email: "not-an-email", Password: "short"}

	err := Candidate(c)
	require.Error(t, err)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{
		"first_name is required",
		"last_name is required",
		MsgInvalidEmail,
		MsgWeakPassword,
	}, ve.Messages())
	assert.Equal(t, "email", ve.Fields[2].Field)
	assert.Equal(t, "password", ve.Fields[3].Field)
}

func TestCandidate_MissingEmailReportsRequiredOnly(t *testing.T) {
	c := validCandidate()
	c.Email = ""

	var ve *domain.ValidationError
	require.True(t, errors.As(Candidate(c), &ve))
	assert.Equal(t, []string{"email is required"}, ve.Messages())
}

func TestCandidate_LongPasswordIsCollectedWithOtherViolations(t *testing.T) {
	c := validCandidate()
	c.Email = "bad"
	c.Password = "pasS!123" + strings.Repeat("x", MaxPasswordBytes)

	var ve *domain.ValidationError
	require.True(t, errors.As(Candidate(c), &ve))
	assert.Equal(t, []string{MsgInvalidEmail, MsgPasswordTooLong}, ve.Messages())
}

func TestCandidate_PasswordByteLimit(t *testing.T) {
	c := validCandidate()
	c.Password = "pasS!" + strings.Repeat("x", MaxPasswordBytes-5)
	assert.NoError(t, Candidate(c), "exactly %d bytes is accepted", MaxPasswordBytes)

	// multi-byte runes count by encoded length
	c.Password = "pasS!" + strings.Repeat("é", 34)
	var ve *domain.ValidationError
	require.True(t, errors.As(Candidate(c), &ve))
	assert.Equal(t, []string{MsgPasswordTooLong}, ve.Messages())
}

func TestIsStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"pasS!123":  true,
		"Abcdefg!":  true,
		"Pass word": true,
		"pass!123":  false, // no uppercase
		"PASS!123":  false, // no lowercase
		"Pass1234":  false, // no special
		"pA!1":      false, // too short
		"":          false,
		"ÁbcdéfgH#": true,
	}
	for pw, want := range cases {
		assert.Equal(t, want, IsStrongPassword(pw), "password %q", pw)
	}
}
