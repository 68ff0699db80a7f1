package container

import (
	"github.com/sirupsen/logrus"

	"github.com/fiap-postech/auth-service/config"
	"github.com/fiap-postech/auth-service/internal/application"
	"github.com/fiap-postech/auth-service/internal/domain/repository"
	"github.com/fiap-postech/auth-service/internal/infrastructure/keycloak"
)

// Registration keys shared by the composition root and the HTTP adapters.
const (
	KeyConfig              = "Config"
	KeyLogger              = "Logger"
	KeyKeycloakService     = "KeycloakService"
	KeyTokenInspector      = "TokenInspector"
	KeyUserRepository      = "UserRepository"
	KeyAuthRepository      = "AuthRepository"
	KeyRegisterUserUseCase = "RegisterUserUseCase"
	KeyLoginUseCase        = "LoginUseCase"
	KeyRefreshTokenUseCase = "RefreshTokenUseCase"
	KeyLogoutUseCase       = "LogoutUseCase"
	KeyAuthController      = "AuthController"
)

// SetupDependencies registers the full dependency graph in strict order:
// leaf services first, then repositories, use cases and finally the
// controller. Each factory closure resolves its prerequisites from the same
// registry, which is how multi-argument constructors get wired without the
// registry supporting argument injection.
func SetupDependencies(r *Registry, cfg *config.Config, logger *logrus.Logger) {
	r.RegisterInstance(KeyConfig, cfg)
	r.RegisterInstance(KeyLogger, logger)

	r.RegisterSingleton(KeyKeycloakService, func() any {
		return keycloak.NewClient(keycloak.Config{
			BaseURL:       cfg.KeycloakURL,
			Realm:         cfg.KeycloakRealm,
			ClientID:      cfg.KeycloakClientID,
			ClientSecret:  cfg.KeycloakClientSecret,
			AdminUsername: cfg.KeycloakAdminUsername,
			AdminPassword: cfg.KeycloakAdminPassword,
		}, logger)
	})
	r.RegisterSingleton(KeyTokenInspector, func() any {
		return keycloak.NewTokenInspector()
	})

	r.RegisterFactory(KeyUserRepository, func() any {
		svc := MustResolve[*keycloak.Client](r, KeyKeycloakService)
		return keycloak.NewUserRepository(svc)
	})
	r.RegisterFactory(KeyAuthRepository, func() any {
		svc := MustResolve[*keycloak.Client](r, KeyKeycloakService)
		tokens := MustResolve[*keycloak.TokenInspector](r, KeyTokenInspector)
		return keycloak.NewAuthRepository(svc, tokens, logger)
	})

	r.RegisterFactory(KeyRegisterUserUseCase, func() any {
		users := MustResolve[repository.UserRepository](r, KeyUserRepository)
		return application.NewRegisterUserUseCase(users)
	})
	r.RegisterFactory(KeyLoginUseCase, func() any {
		auth := MustResolve[repository.AuthRepository](r, KeyAuthRepository)
		users := MustResolve[repository.UserRepository](r, KeyUserRepository)
		return application.NewLoginUseCase(auth, users)
	})
	r.RegisterFactory(KeyRefreshTokenUseCase, func() any {
		auth := MustResolve[repository.AuthRepository](r, KeyAuthRepository)
		return application.NewRefreshTokenUseCase(auth)
	})
	r.RegisterFactory(KeyLogoutUseCase, func() any {
		auth := MustResolve[repository.AuthRepository](r, KeyAuthRepository)
		return application.NewLogoutUseCase(auth)
	})

	r.RegisterFactory(KeyAuthController, func() any {
		return application.NewController(
			MustResolve[*application.RegisterUserUseCase](r, KeyRegisterUserUseCase),
			MustResolve[*application.LoginUseCase](r, KeyLoginUseCase),
			MustResolve[*application.RefreshTokenUseCase](r, KeyRefreshTokenUseCase),
			MustResolve[*application.LogoutUseCase](r, KeyLogoutUseCase),
		)
	})
}
