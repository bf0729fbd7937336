package middleware

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"surveyapi/internal/config"
	"surveyapi/internal/errs"
)

// UserIDLocalKey stores the authenticated user id (the token subject).
const UserIDLocalKey = "user_id"

// JWTAuth verifies HS256 bearer tokens on management routes.
// Issuer and audience are only checked when configured.
func JWTAuth(cfg config.AuthConfig) fiber.Handler {
	secret := []byte(cfg.JWTSecret)

	return func(c *fiber.Ctx) error {
		const bearerPrefix = "Bearer "
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return errs.Unauthorized("missing bearer token")
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))

		claims, err := parseToken(tokenString, secret, cfg)
		if err != nil {
			return errs.Unauthorized("invalid token")
		}

		c.Locals(UserIDLocalKey, claims.Subject)
		return c.Next()
	}
}

func parseToken(tokenString string, secret []byte, cfg config.AuthConfig) (*jwt.RegisteredClaims, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret is not configured")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(30 * time.Second),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, opts...); err != nil {
		return nil, err
	}

	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	if cfg.Audience != "" && !slices.Contains(claims.Audience, cfg.Audience) {
		return nil, errors.New("token audience mismatch")
	}
	return claims, nil
}

// UserIDFromCtx returns the user id stored by JWTAuth, or "".
func UserIDFromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDLocalKey).(string)
	return id
}
