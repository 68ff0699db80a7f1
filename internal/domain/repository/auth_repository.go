package repository

import (
	"context"

	"github.com/fiap-postech/auth-service/internal/domain/entity"
)

// AuthRepository is the domain contract for token operations against the
// identity provider.
type AuthRepository interface {
	// Login performs the password grant. Fails with an invalid-credentials
	// condition when the provider rejects the pair.
	Login(ctx context.Context, cpf, password string) (*entity.AuthToken, error)

	// RefreshToken exchanges a refresh token for a fresh set. Fails with an
	// invalid-token condition when the token is invalid or expired.
	RefreshToken(ctx context.Context, refreshToken string) (*entity.AuthToken, error)

	// Logout revokes the session behind a refresh token. Never returns an
	// error: revoke failures are logged and absorbed, since a client
	// discarding its token is resilient to a failed revoke.
	Logout(ctx context.Context, refreshToken string) error
}
