package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"valora/internal/core/appctx"
	"valora/internal/core/apperror"
	"valora/internal/domain/auth"
)

// TokenValidator interface for session token validation.
type TokenValidator interface {
	Validate(tokenString string) (*appctx.UserContext, error)
}

// Auth middleware validates the session token and populates user context.
// The token is read from the session cookie set at login, with a Bearer
// Authorization header accepted as a fallback for non-browser clients.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := sessionToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "authentication required")
			return
		}

		user, err := validator.Validate(tokenString)
		if err != nil {
			abortUnauthorized(c, "invalid or expired session")
			return
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		// Store in gin context for easy access
		c.Set("user_id", user.UserID)
		c.Set("username", user.Username)

		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(auth.SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
