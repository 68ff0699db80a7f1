package keycloak

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fiap-postech/auth-service/internal/domain/entity"
	"github.com/fiap-postech/auth-service/internal/domain/repository"
)

// AuthRepository adapts the provider's token endpoints to the domain
// contract.
type AuthRepository struct {
	svc    *Client
	tokens *TokenInspector
	logger *logrus.Logger
}

var _ repository.AuthRepository = (*AuthRepository)(nil)

func NewAuthRepository(svc *Client, tokens *TokenInspector, logger *logrus.Logger) *AuthRepository {
	return &AuthRepository{svc: svc, tokens: tokens, logger: logger}
}

func (r *AuthRepository) Login(ctx context.Context, cpf, password string) (*entity.AuthToken, error) {
	set, err := r.svc.Login(ctx, cpf, password)
	if err != nil {
		return nil, err
	}
	return toAuthToken(set), nil
}

func (r *AuthRepository) RefreshToken(ctx context.Context, refreshToken string) (*entity.AuthToken, error) {
	set, err := r.svc.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return toAuthToken(set), nil
}

// Logout never fails: a client discarding its token must not be blocked by
// a revoke the provider rejects, since the token may already be invalid.
// The failure is logged, tagged with the token subject when it decodes.
func (r *AuthRepository) Logout(ctx context.Context, refreshToken string) error {
	if err := r.svc.Logout(ctx, refreshToken); err != nil {
		fields := logrus.Fields{}
		if info, derr := r.tokens.UserInfo(refreshToken); derr == nil && info.UserID != "" {
			fields["sub"] = info.UserID
		}
		r.logger.WithError(err).WithFields(fields).Warn("logout revoke failed, discarding token anyway")
	}
	return nil
}

func toAuthToken(set *TokenSet) *entity.AuthToken {
	return &entity.AuthToken{
		AccessToken:  set.AccessToken,
		RefreshToken: set.RefreshToken,
		ExpiresIn:    set.ExpiresIn,
		TokenType:    set.TokenType,
	}
}
