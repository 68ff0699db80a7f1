package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/fiap-postech/auth-service/internal/interface/http"
	"github.com/fiap-postech/auth-service/internal/interface/middleware"
)

// AuthModule wires the authentication endpoints and their per-IP rate
// limits. All routes are public; the provider is the one judging
// credentials.
type AuthModule struct {
	Handler *handlers.AuthHandler
	RDB     *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, RDB: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.RDB, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByIP(), nil)
	logoutLimiter := middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/auth/logout", logoutLimiter, m.Handler.Logout)
}
