package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/yellowjack/loyaltybot/internal/domain/errors"
	"github.com/yellowjack/loyaltybot/internal/server/http/dto"
	"github.com/yellowjack/loyaltybot/internal/server/http/middleware"
)

// StaffHandler exchanges the staff key for session tokens.
type StaffHandler struct {
	facade StaffFacade
}

// NewStaffHandler creates StaffHandler instance.
func NewStaffHandler(facade StaffFacade) *StaffHandler {
	return &StaffHandler{facade: facade}
}

// Session handles POST /api/staff/session.
func (h *StaffHandler) Session(c *gin.Context) {
	var req dto.StaffSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payload"})
		return
	}

	token, err := h.facade.StaffSession(req.Key)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrUnauthorized):
			c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "staff access disabled"})
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid staff key"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.StaffSessionResponse{Token: token})
}
