package domain

import "time"

// User models a registered account. PasswordHash is the bcrypt digest, never
// the plaintext submitted by the client.
type User struct {
	ID           string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Profile is the display projection of a User: no identifiers, metadata or digest.
type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Profile returns the display projection of u.
func (u *User) Profile() *Profile {
	return &Profile{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

// Candidate is a registration about to be persisted. Password is the plaintext
// as submitted, kept only so the store can enforce the strength policy;
// stores persist PasswordHash and must drop Password.
type Candidate struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	PasswordHash string
}

// User builds the record a store persists from c.
func (c Candidate) User(now time.Time) *User {
	return &User{
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		CreatedAt:    now,
	}
}

// Identity is the claim carried by a bearer token.
type Identity struct {
	Email string
}
