package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/storeadmin/backend/internal/infrastructure/logger"
)

// SessionUserKey is the context key holding the authenticated user's
// identity-provider id.
const SessionUserKey = "session_user_id"

// TokenVerifier resolves a bearer token to an external user id
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Session extracts the caller's identity from the Authorization header
// when one is present. Requests without a valid token pass through
// anonymously; routes that need an identity check for it themselves, so
// public reads and authenticated writes can share one route tree.
func Session(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			// Invalid token reads the same as no token.
			c.Next()
			return
		}

		c.Set(SessionUserKey, userID)
		ctx, _ := logger.WithUserID(c.Request.Context(), logger.FromContext(c.Request.Context()), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetSessionUserID returns the authenticated user's external id, or the
// empty string for anonymous requests.
func GetSessionUserID(c *gin.Context) string {
	return c.GetString(SessionUserKey)
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
