// Package validation holds the field rules every UserStore applies before
// inserting a registration.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/user-service/internal/core/domain"
)

const (
	MinPasswordLength = 8
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes  = 72

	MsgInvalidEmail    = "Please enter a valid email address."
	MsgWeakPassword    = "The password must include at least 8 characters, 1 lowercase, 1 uppercase and 1 special character."
	MsgPasswordTooLong = "The password must not exceed 72 bytes."
)

type candidate struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password_bytes,strong_password"`
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("validation: register strong_password: %v", err))
	}
	if err := v.RegisterValidation("password_bytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	}); err != nil {
		panic(fmt.Sprintf("validation: register password_bytes: %v", err))
	}
	return v
}

// Candidate checks every field of c and returns a *domain.ValidationError
// listing all failures in field order, or nil.
func Candidate(c domain.Candidate) error {
	err := validate.Struct(candidate{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Password:  c.Password,
	})
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Fields = append(out.Fields, domain.FieldError{Field: fe.Field(), Message: fieldError(fe)})
	}
	return out
}

// IsStrongPassword reports whether s has at least MinPasswordLength runes,
// one lowercase letter, one uppercase letter and one character that is
// neither a letter nor a digit.
func IsStrongPassword(s string) bool {
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return false
	}
	var lower, upper, special bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLetter(r), unicode.IsDigit(r):
		default:
			special = true
		}
	}
	return lower && upper && special
}

func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return MsgInvalidEmail
	case "strong_password":
		return MsgWeakPassword
	case "password_bytes":
		return MsgPasswordTooLong
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}
