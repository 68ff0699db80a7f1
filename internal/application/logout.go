package application

import (
	"context"

	"github.com/fiap-postech/auth-service/internal/domain/repository"
)

type LogoutInput struct {
	RefreshToken string
}

// LogoutUseCase asks the provider to revoke the session. The repository
// absorbs revoke failures, so this only errors on programmer faults.
type LogoutUseCase struct {
	auth repository.AuthRepository
}

func NewLogoutUseCase(auth repository.AuthRepository) *LogoutUseCase {
	return &LogoutUseCase{auth: auth}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, in LogoutInput) error {
	return uc.auth.Logout(ctx, in.RefreshToken)
}
