package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User mirrors the identity provider's view of an account. The CPF doubles
// as the provider-side login name and always holds exactly 11 digits after
// normalization. The ID is assigned once at construction and never changes;
// profile updates happen only in the provider and are not reflected back.
//
// Optional fields use the empty string as "absent".
type User struct {
	ID        string
	CPF       string
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds a User with a freshly generated time-ordered id.
func NewUser(cpf, email, firstName, lastName string, createdAt, updatedAt time.Time) *User {
	return &User{
		ID:        NewID(),
		CPF:       cpf,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// NewID returns a UUIDv7: globally unique, sortable, roughly chronological.
// The exact scheme is not load-bearing beyond uniqueness and ordering.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NormalizeCPF strips every non-digit character from a CPF candidate.
// "123.456.789-00" becomes "12345678900". Length is enforced by request
// validation, not here.
func NormalizeCPF(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
