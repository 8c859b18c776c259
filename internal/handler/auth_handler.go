package handler

import (
	"context"
	"errors"

	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/Javets70/url-shortner-backend/pkg/response"
	"github.com/Javets70/url-shortner-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.TokenResponse, error)
	Refresh(ctx context.Context, oldToken string) (*domain.TokenResponse, error)
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if errs := validator.Validate(&req); len(errs) > 0 {
		response.ValidationErrors(c, errs)
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			response.Conflict(c, "Username or email already registered")
			return
		}
		response.InternalServerError(c, "Failed to register user")
		return
	}

	response.Created(c, "User registered", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			response.Unauthorized(c, "Incorrect username or password")
		case errors.Is(err, domain.ErrInactiveUser):
			response.BadRequest(c, "Inactive user")
		default:
			response.InternalServerError(c, "Failed to log in")
		}
		return
	}

	response.OK(c, "Logged in", token)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.service.Refresh(c.Request.Context(), req.Token)
	if err != nil {
		response.Unauthorized(c, "Invalid or expired token")
		return
	}

	response.OK(c, "Token refreshed", token)
}
