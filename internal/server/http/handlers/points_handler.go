package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/yellowjack/loyaltybot/internal/domain/errors"
	"github.com/yellowjack/loyaltybot/internal/server/http/dto"
)

// PointsHandler serves the staff adjustment and daily claim endpoints.
type PointsHandler struct {
	facade LedgerFacade
}

// NewPointsHandler constructs PointsHandler.
func NewPointsHandler(facade LedgerFacade) *PointsHandler {
	return &PointsHandler{facade: facade}
}

// Grant handles POST /api/points/grant.
func (h *PointsHandler) Grant(c *gin.Context) {
	h.adjust(c, h.facade.Grant)
}

// Deduct handles POST /api/points/deduct.
func (h *PointsHandler) Deduct(c *gin.Context) {
	h.adjust(c, h.facade.Deduct)
}

func (h *PointsHandler) adjust(c *gin.Context, op func(ctx context.Context, actorID, targetID string, amount int64, staff bool) (int64, error)) {
	var req dto.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payload"})
		return
	}
	if req.Target == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "target is required"})
		return
	}

	points, err := op(c.Request.Context(), req.Actor, req.Target, req.Amount, IsStaff(c))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrUnauthorized):
			c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "staff only"})
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "amount must be positive"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.AdjustResponse{UserID: req.Target, Points: points})
}

// Daily handles POST /api/users/:id/daily. A claim inside the cooldown
// window answers 429 with the remaining wait in the Retry-After header.
func (h *PointsHandler) Daily(c *gin.Context) {
	userID := c.Param("id")
	claim, err := h.facade.ClaimDaily(c.Request.Context(), userID)
	if err != nil {
		var cooldown domainErrors.CooldownError
		if errors.As(err, &cooldown) {
			c.Header("Retry-After", strconv.FormatInt(int64(cooldown.Remaining.Seconds())+1, 10))
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: cooldown.Error()})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.DailyResponse{Awarded: claim.Awarded, Points: claim.Balance})
}
