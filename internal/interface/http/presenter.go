package handlers

import (
	"time"

	"github.com/fiap-postech/auth-service/internal/application"
)

// View models serialized into the data half of the response envelope. The
// username field mirrors the cpf since the provider logs users in by it.

type userView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CPF       string    `json:"cpf"`
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func presentRegisteredUser(out application.RegisterUserOutput) userView {
	return userView{
		ID:        out.ID,
		Username:  out.CPF,
		CPF:       out.CPF,
		Email:     out.Email,
		FirstName: out.FirstName,
		LastName:  out.LastName,
		CreatedAt: out.CreatedAt,
		UpdatedAt: out.UpdatedAt,
	}
}

type profileView struct {
	ID        string `json:"id"`
	CPF       string `json:"cpf"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type loginView struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int         `json:"expiresIn"`
	TokenType    string      `json:"tokenType"`
	User         profileView `json:"user"`
}

func presentLogin(out application.LoginOutput) loginView {
	return loginView{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    out.ExpiresIn,
		TokenType:    out.TokenType,
		User: profileView{
			ID:        out.User.ID,
			CPF:       out.User.CPF,
			Email:     out.User.Email,
			FirstName: out.User.FirstName,
			LastName:  out.User.LastName,
		},
	}
}

type tokenView struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

func presentTokens(out application.RefreshTokenOutput) tokenView {
	return tokenView{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    out.ExpiresIn,
		TokenType:    out.TokenType,
	}
}
