package application

import (
	"context"
	"time"

	"github.com/fiap-postech/auth-service/internal/domain/repository"
)

// RegisterUserInput carries pre-validated registration data. The CPF is
// already normalized to 11 digits at the HTTP boundary; password strength
// and field formats are enforced there too.
type RegisterUserInput struct {
	CPF       string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// RegisterUserOutput is the created user as seen by the presenter.
type RegisterUserOutput struct {
	ID        string
	CPF       string
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegisterUserUseCase forwards registration to the user repository. Pure
// orchestration; repository errors propagate unchanged.
type RegisterUserUseCase struct {
	users repository.UserRepository
}

func NewRegisterUserUseCase(users repository.UserRepository) *RegisterUserUseCase {
	return &RegisterUserUseCase{users: users}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	u, err := uc.users.CreateUser(ctx, in.CPF, in.Password, in.Email, in.FirstName, in.LastName)
	if err != nil {
		return RegisterUserOutput{}, err
	}
	return RegisterUserOutput{
		ID:        u.ID,
		CPF:       u.CPF,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}
