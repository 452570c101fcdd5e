package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/service"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

// AuthHandler exposes login, registration and the auth health probe.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.AuthRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewBadRequest("username and password required")
	}

	result, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized("Invalid username or password")
		}
		return apperrors.MapError(err)
	}

	return c.JSON(dto.AuthResponse{
		Success:  true,
		Message:  "Authentication successful",
		Token:    result.Token,
		Role:     string(result.Role),
		Username: result.Username,
	})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.AuthRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewBadRequest("username and password required")
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return apperrors.NewBadRequest("unknown role")
	}

	result, err := h.auth.Register(c.Context(), req.Username, req.Password, role)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			return apperrors.NewConflict("Username already exists")
		}
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Success:  true,
		Message:  "User registered successfully",
		Token:    result.Token,
		Role:     string(result.Role),
		Username: result.Username,
	})
}

// Health handles GET /auth/health. No token required.
func (h *AuthHandler) Health(c *fiber.Ctx) error {
	return c.SendString("Auth service is running")
}
