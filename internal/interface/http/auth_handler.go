package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fiap-postech/auth-service/internal/application"
	"github.com/fiap-postech/auth-service/internal/container"
	"github.com/fiap-postech/auth-service/internal/domain/entity"
	"github.com/fiap-postech/auth-service/pkg/apperror"
	"github.com/fiap-postech/auth-service/pkg/response"
	"github.com/fiap-postech/auth-service/pkg/validation"
)

// AuthHandler adapts HTTP to the application controller. The controller is
// resolved from the registry per request; validation runs before it is ever
// constructed, and errors are pushed into the Gin error chain for the
// translation middleware.
type AuthHandler struct {
	Container *container.Registry
	Logger    *logrus.Logger
}

func NewAuthHandler(c *container.Registry, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Container: c, Logger: logger}
}

type registerRequest struct {
	CPF       string `json:"cpf" binding:"required,cpf"`
	Password  string `json:"password" binding:"required,strongpwd"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"firstName" binding:"omitempty,min=2"`
	LastName  string `json:"lastName" binding:"omitempty,min=2"`
}

type loginRequest struct {
	CPF      string `json:"cpf" binding:"required,cpf"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *AuthHandler) controller() (*application.Controller, error) {
	ctrl, err := container.Resolve[*application.Controller](h.Container, container.KeyAuthController)
	if err != nil {
		return nil, apperror.Internal("auth controller unavailable", err)
	}
	return ctrl, nil
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}
	ctrl, err := h.controller()
	if err != nil {
		_ = c.Error(err)
		return
	}
	out, err := ctrl.RegisterUser(c.Request.Context(), application.RegisterUserInput{
		CPF:       entity.NormalizeCPF(req.CPF),
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{
		"user":    presentRegisteredUser(out),
		"message": "user created successfully",
	})
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}
	ctrl, err := h.controller()
	if err != nil {
		_ = c.Error(err)
		return
	}
	out, err := ctrl.Login(c.Request.Context(), application.LoginInput{
		CPF:      entity.NormalizeCPF(req.CPF),
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, http.StatusOK, presentLogin(out))
}

// Refresh POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}
	ctrl, err := h.controller()
	if err != nil {
		_ = c.Error(err)
		return
	}
	out, err := ctrl.RefreshToken(c.Request.Context(), application.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, http.StatusOK, presentTokens(out))
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}
	ctrl, err := h.controller()
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := ctrl.Logout(c.Request.Context(), application.LogoutInput{
		RefreshToken: req.RefreshToken,
	}); err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "logout successful"})
}
