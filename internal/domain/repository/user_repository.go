package repository

import (
	"context"

	"github.com/fiap-postech/auth-service/internal/domain/entity"
)

// UserRepository is the domain contract for user administration against the
// identity provider. Optional fields may be empty.
type UserRepository interface {
	// CreateUser provisions a user whose login name is the normalized CPF.
	// Fails with a user-already-exists condition when the CPF is taken.
	CreateUser(ctx context.Context, cpf, password, email, firstName, lastName string) (*entity.User, error)

	// FindUserByCPF looks a user up by exact CPF. Returns (nil, nil) when
	// no user matches.
	FindUserByCPF(ctx context.Context, cpf string) (*entity.User, error)
}
