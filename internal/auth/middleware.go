package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/repository"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Client-facing rejection messages. Token failures are never distinguished
// beyond the generic invalid-token text.
const (
	msgAuthRequired = "Authentication required"
	msgInvalidToken = "Invalid or expired token"
	msgForbidden    = "Access denied: Insufficient permissions"
)

// Principal is the request-scoped identity resolved from a verified token.
// It lives only for the duration of the request.
type Principal struct {
	Username    string
	Role        domain.Role
	Authorities []string
}

// Middleware authenticates every inbound request and enforces the policy
// table before any business handler runs.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	policy *Policy
	logger *zap.Logger
}

// NewMiddleware constructs the request authentication middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository, policy *Policy, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, users: users, policy: policy, logger: logger}
}

// Handle runs the per-request pipeline: public routes pass through
// untouched; everything else requires a verifiable bearer token whose
// subject still exists in the credential store. The principal's role is
// taken from the store, not from the token, so role changes apply
// immediately. Rejections short-circuit the chain.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	if m.policy.IsPublic(c.Path()) {
		return c.Next()
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized(msgAuthRequired)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return apperrors.NewUnauthorized(msgAuthRequired)
	}

	claims, err := m.tokens.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized(msgInvalidToken)
	}

	user, err := m.users.GetByUsername(c.Context(), claims.Subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			// A deleted user's still-valid token is treated as invalid.
			return apperrors.NewUnauthorized(msgInvalidToken)
		}
		return apperrors.MapError(err)
	}

	principal := &Principal{
		Username:    user.Username,
		Role:        user.Role,
		Authorities: []string{"ROLE_" + string(user.Role)},
	}
	c.Locals(principalKey, principal)

	if !m.policy.Allows(c.Method(), c.Path(), principal.Role) {
		m.logger.Info("access denied",
			zap.String("username", principal.Username),
			zap.String("role", string(principal.Role)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()))
		return apperrors.NewForbidden(msgForbidden)
	}

	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
