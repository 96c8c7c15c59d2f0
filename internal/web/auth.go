package web

import (
	"crypto/subtle"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/portfolio/core/sanitizer"
)

// ErrInvalidCredentials is returned for any login failure; it never
// distinguishes a wrong email from a wrong password.
var ErrInvalidCredentials = errors.New("web: invalid credentials")

// Admin is the site's single privileged user, built from config at
// startup. Its ID derives deterministically from the email, so
// authenticated sessions survive restarts.
type Admin struct {
	ID    uuid.UUID
	Email string

	passwordHash []byte
}

// NewAdmin bcrypt-hashes the configured password and derives the admin
// ID as the UUIDv5 of the normalized email.
func NewAdmin(email, password string) (*Admin, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, errors.New("web: admin email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Admin{
		ID:           uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)),
		Email:        email,
		passwordHash: hash,
	}, nil
}

// Authenticate checks a login attempt. The email comparison is constant
// time, and the bcrypt compare runs even when the email already failed.
func (a *Admin) Authenticate(email, password string) error {
	emailOK := subtle.ConstantTimeCompare([]byte(sanitizer.NormalizeEmail(email)), []byte(a.Email)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))

	if !emailOK || passwordErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
