package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/yellowjack/loyaltybot/internal/domain/errors"
	"github.com/yellowjack/loyaltybot/internal/server/http/dto"
)

// ShopHandler serves the catalog and redemption endpoints.
type ShopHandler struct {
	facade LedgerFacade
}

// NewShopHandler constructs ShopHandler.
func NewShopHandler(facade LedgerFacade) *ShopHandler {
	return &ShopHandler{facade: facade}
}

// Catalog handles GET /api/catalog.
func (h *ShopHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogListing())
}

// Redeem handles POST /api/users/:id/redeem. A request naming no item is
// answered with the catalog listing so the caller can pick one.
func (h *ShopHandler) Redeem(c *gin.Context) {
	userID := c.Param("id")
	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payload"})
		return
	}
	if req.Item == "" {
		c.JSON(http.StatusOK, h.catalogListing())
		return
	}

	result, err := h.facade.Redeem(c.Request.Context(), userID, req.Item)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrItemNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "item not found"})
		case errors.Is(err, domainErrors.ErrInsufficientPoints):
			c.JSON(http.StatusPaymentRequired, dto.ErrorResponse{Error: "insufficient points"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.RedeemResponse{Item: result.Item.Name, Cost: result.Item.Cost, Points: result.Balance})
}

func (h *ShopHandler) catalogListing() []dto.CatalogItemResponse {
	items := h.facade.Catalog()
	resp := make([]dto.CatalogItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, dto.CatalogItemResponse{Name: item.Name, Cost: item.Cost})
	}
	return resp
}
