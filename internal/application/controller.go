package application

import "context"

// Controller aggregates the authentication use cases behind one
// transport-agnostic entry point. Pure delegation: it exists so the HTTP
// adapter has a single construction point and the use cases stay decoupled
// from transport concerns.
type Controller struct {
	registerUser *RegisterUserUseCase
	login        *LoginUseCase
	refreshToken *RefreshTokenUseCase
	logout       *LogoutUseCase
}

func NewController(
	registerUser *RegisterUserUseCase,
	login *LoginUseCase,
	refreshToken *RefreshTokenUseCase,
	logout *LogoutUseCase,
) *Controller {
	return &Controller{
		registerUser: registerUser,
		login:        login,
		refreshToken: refreshToken,
		logout:       logout,
	}
}

func (c *Controller) RegisterUser(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	return c.registerUser.Execute(ctx, in)
}

func (c *Controller) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	return c.login.Execute(ctx, in)
}

func (c *Controller) RefreshToken(ctx context.Context, in RefreshTokenInput) (RefreshTokenOutput, error) {
	return c.refreshToken.Execute(ctx, in)
}

func (c *Controller) Logout(ctx context.Context, in LogoutInput) error {
	return c.logout.Execute(ctx, in)
}
