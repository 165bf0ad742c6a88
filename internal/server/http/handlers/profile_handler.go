package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yellowjack/loyaltybot/internal/server/http/dto"
)

// ProfileHandler serves the read-only user and leaderboard endpoints.
type ProfileHandler struct {
	facade LedgerFacade
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(facade LedgerFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Profile handles GET /api/users/:id/profile.
func (h *ProfileHandler) Profile(c *gin.Context) {
	userID := c.Param("id")
	profile, err := h.facade.Profile(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{UserID: userID, Points: profile.Points, Tier: string(profile.Tier)})
}

// Balance handles GET /api/users/:id/balance.
func (h *ProfileHandler) Balance(c *gin.Context) {
	userID := c.Param("id")
	points, err := h.facade.Check(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{UserID: userID, Points: points})
}

// Inventory handles GET /api/users/:id/inventory. An empty inventory is a
// valid empty listing, never an error.
func (h *ProfileHandler) Inventory(c *gin.Context) {
	userID := c.Param("id")
	items := h.facade.Inventory(userID)
	if items == nil {
		items = []string{}
	}
	c.JSON(http.StatusOK, dto.InventoryResponse{UserID: userID, Items: items})
}

// Leaderboard handles GET /api/leaderboard.
func (h *ProfileHandler) Leaderboard(c *gin.Context) {
	entries := h.facade.Leaderboard(0)
	resp := make([]dto.LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.LeaderboardEntryResponse{UserID: e.UserID, Points: e.Points})
	}
	c.JSON(http.StatusOK, resp)
}
