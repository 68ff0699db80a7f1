package application

import (
	"context"

	"github.com/fiap-postech/auth-service/internal/domain/repository"
)

type RefreshTokenInput struct {
	RefreshToken string
}

type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	TokenType    string
}

// RefreshTokenUseCase exchanges a refresh token for a fresh set. No local
// state tracks prior tokens; the provider is the sole source of validity.
type RefreshTokenUseCase struct {
	auth repository.AuthRepository
}

func NewRefreshTokenUseCase(auth repository.AuthRepository) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{auth: auth}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, in RefreshTokenInput) (RefreshTokenOutput, error) {
	token, err := uc.auth.RefreshToken(ctx, in.RefreshToken)
	if err != nil {
		return RefreshTokenOutput{}, err
	}
	return RefreshTokenOutput{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    token.ExpiresIn,
		TokenType:    token.TokenType,
	}, nil
}
