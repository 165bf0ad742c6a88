package dto

// CatalogItemResponse is one purchasable item in the shop listing.
type CatalogItemResponse struct {
	Name string `json:"name"`
	Cost int64  `json:"cost"`
}

// RedeemRequest names the item to purchase. An empty name asks for the
// catalog listing instead.
type RedeemRequest struct {
	Item string `json:"item"`
}

// RedeemResponse reports a completed purchase.
type RedeemResponse struct {
	Item   string `json:"item"`
	Cost   int64  `json:"cost"`
	Points int64  `json:"points"`
}

// InventoryResponse lists redeemed items in purchase order.
type InventoryResponse struct {
	UserID string   `json:"user_id"`
	Items  []string `json:"items"`
}
