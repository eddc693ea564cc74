package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// extractToken reads "Authorization: Bearer <t>" and falls back to the
// session cookie set by the auth provider.
func extractToken(c *fiber.Ctx, cookieName string) (string, error) {
	if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); authz != "" {
		fields := strings.Fields(authz)
		if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
			return "", fmt.Errorf("invalid authorization header")
		}
		tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
		if tok == "" {
			return "", fmt.Errorf("empty token")
		}
		return tok, nil
	}
	if cookieName != "" {
		if tok := strings.TrimSpace(c.Cookies(cookieName)); tok != "" {
			return tok, nil
		}
	}
	return "", fmt.Errorf("no session token provided")
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// extractUserID prefers sub, then id, then user_id.
func extractUserID(claims jwt.MapClaims) (string, error) {
	for _, key := range []string{"sub", "id", "user_id"} {
		if v := strClaim(claims, key); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("token carries no user id")
}
