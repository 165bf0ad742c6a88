package model

// Inventory holds redeemed item names in purchase order. Duplicates are
// expected: an item bought twice appears twice. Inventories only ever grow.
type Inventory struct {
	Items []string `json:"items"`
}
