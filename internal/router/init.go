package router

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fiap-postech/auth-service/config"
	"github.com/fiap-postech/auth-service/internal/container"
	handlers "github.com/fiap-postech/auth-service/internal/interface/http"
	"github.com/fiap-postech/auth-service/internal/router/modules"
)

// InitModules wires the feature modules against the dependency registry.
// Called once during application startup, after SetupDependencies.
func InitModules(r *Registry, c *container.Registry, cfg *config.Config, logger *logrus.Logger, rdb *redis.Client) {
	auth := handlers.NewAuthHandler(c, logger)
	health := handlers.NewHealthHandler(cfg.AppName)

	r.Add(modules.NewAuthModule(auth, rdb))
	r.Add(modules.NewHealthModule(health))
}
