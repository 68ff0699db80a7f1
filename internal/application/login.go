package application

import (
	"context"

	"github.com/fiap-postech/auth-service/internal/domain/repository"
)

type LoginInput struct {
	CPF      string
	Password string
}

// LoginUser is the profile sub-object embedded in a login response. An
// empty ID means the enrichment lookup found nothing.
type LoginUser struct {
	ID        string
	CPF       string
	Email     string
	FirstName string
	LastName  string
}

type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	TokenType    string
	User         LoginUser
}

// LoginUseCase issues tokens, then enriches the response with profile data.
// The token grant always runs first; its failure short-circuits the lookup.
// Enrichment is best-effort: a failed or absent lookup degrades the profile
// to an empty id instead of failing a successful login.
type LoginUseCase struct {
	auth  repository.AuthRepository
	users repository.UserRepository
}

func NewLoginUseCase(auth repository.AuthRepository, users repository.UserRepository) *LoginUseCase {
	return &LoginUseCase{auth: auth, users: users}
}

func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	token, err := uc.auth.Login(ctx, in.CPF, in.Password)
	if err != nil {
		return LoginOutput{}, err
	}

	out := LoginOutput{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    token.ExpiresIn,
		TokenType:    token.TokenType,
		User:         LoginUser{CPF: in.CPF},
	}
	if u, lookupErr := uc.users.FindUserByCPF(ctx, in.CPF); lookupErr == nil && u != nil {
		out.User = LoginUser{
			ID:        u.ID,
			CPF:       u.CPF,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		}
	}
	return out, nil
}
