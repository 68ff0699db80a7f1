package keycloak

import (
	"context"
	"time"

	"github.com/fiap-postech/auth-service/internal/domain/entity"
	"github.com/fiap-postech/auth-service/internal/domain/repository"
)

// UserRepository adapts the provider's admin API to the domain contract.
type UserRepository struct {
	svc *Client
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(svc *Client) *UserRepository {
	return &UserRepository{svc: svc}
}

func (r *UserRepository) CreateUser(ctx context.Context, cpf, password, email, firstName, lastName string) (*entity.User, error) {
	rec, err := r.svc.CreateUser(ctx, cpf, password, email, firstName, lastName)
	if err != nil {
		return nil, err
	}
	return toUser(rec), nil
}

func (r *UserRepository) FindUserByCPF(ctx context.Context, cpf string) (*entity.User, error) {
	rec, err := r.svc.FindUserByUsername(ctx, cpf)
	if err != nil || rec == nil {
		return nil, err
	}
	return toUser(rec), nil
}

// toUser maps a provider record onto a domain user. The domain id is
// generated locally with a time-ordered scheme, not copied from the
// provider.
func toUser(rec *UserRecord) *entity.User {
	createdAt := time.Now()
	if rec.CreatedTimestamp > 0 {
		createdAt = time.UnixMilli(rec.CreatedTimestamp)
	}
	return entity.NewUser(rec.Username, rec.Email, rec.FirstName, rec.LastName, createdAt, time.Now())
}
