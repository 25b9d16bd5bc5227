package middleware

import (
	"net/http"
	"strings"

	"vidhub/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// TokenVerifier is the slice of the issuer the middleware needs.
type TokenVerifier interface {
	Verify(raw string, kind token.Kind) (*token.Claims, error)
}

// RequireAuth verifies the access token from the Authorization header (or the
// access_token cookie as a fallback) and stores the account id on the
// context. Refresh tokens never pass here; they are a different kind.
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			raw, _ = c.Cookie("access_token")
		}
		if raw == "" {
			abortUnauthorized(c, "Missing access token")
			return
		}

		claims, err := tokens.Verify(raw, token.KindAccess)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired access token")
			return
		}

		c.Set("account_id", claims.AccountID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
