package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// StaffContextKey is a gin context key holding the staff authorization flag.
	StaffContextKey = "staffAuthorized"
	authCookieName  = "loyaltybot_token"
)

// StaffVerifier validates staff session tokens.
type StaffVerifier interface {
	VerifyStaff(token string) bool
}

// StaffContext resolves the caller's staff capability from the request token
// and records it in the gin context. It never aborts: anonymous callers pass
// through as non-staff, and the ledger decides what they may do.
func StaffContext(verifier StaffVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		staff := false
		if token := extractToken(c); token != "" {
			staff = verifier.VerifyStaff(token)
		}
		c.Set(StaffContextKey, staff)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes the session token cookie to the response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
