package middleware

import (
	"errors"
	"net/http"
	"strings"

	"partner-portal/internal/model"
	"partner-portal/pkg/jwtutil"
	"partner-portal/pkg/logger"
	"partner-portal/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	UserIDKey   = "user_id"
	UserTypeKey = "user_type"
	EmailKey    = "email"
)

// RequireAuth validates the bearer token from the Authorization header and
// attaches the decoded principal to the request context. Routes declare
// their capability set by composing RequireAuth with RequireAdmin or
// RequirePartner at registration.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token is missing"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token format"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, jwtutil.ErrExpiredToken) {
				log.Warn("Expired JWT token")
				prometheus.RecordAuthError("expired_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token has expired"})
			}
			log.Warn("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token is invalid"})
		}

		// Store principal info in context for later use
		c.Set(UserIDKey, claims.UserID)
		c.Set(UserTypeKey, claims.UserType)
		c.Set(EmailKey, claims.Email)

		return next(c)
	}
}

// RequireAdmin rejects requests whose decoded principal is not an admin.
// Must run after RequireAuth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userType, ok := c.Get(UserTypeKey).(string)
		if !ok || userType != model.SenderAdmin {
			logger.FromContext(c).Warn("Admin access denied", zap.String("user_type", userType))
			prometheus.RecordAuthError("admin_required")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Admin privileges required"})
		}
		return next(c)
	}
}

// RequirePartner rejects requests whose decoded principal is not a partner.
// Must run after RequireAuth.
func RequirePartner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userType, ok := c.Get(UserTypeKey).(string)
		if !ok || userType != model.SenderPartner {
			logger.FromContext(c).Warn("Partner access denied", zap.String("user_type", userType))
			prometheus.RecordAuthError("partner_required")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Partner access required"})
		}
		return next(c)
	}
}
