package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yellowjack/loyaltybot/internal/server/http/middleware"
)

// IsStaff reports whether the request carries a verified staff session.
func IsStaff(c *gin.Context) bool {
	val, ok := c.Get(middleware.StaffContextKey)
	if !ok {
		return false
	}
	staff, _ := val.(bool)
	return staff
}
