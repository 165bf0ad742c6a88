package model

// CatalogItem is a purchasable shop entry. Name is the lookup key.
type CatalogItem struct {
	Name string `json:"name" yaml:"name"`
	Cost int64  `json:"cost" yaml:"cost"`
}

// RedemptionResult reports a successful purchase.
type RedemptionResult struct {
	Item    CatalogItem
	Balance int64
}

// DailyClaim reports a successful daily bonus claim.
type DailyClaim struct {
	Awarded int64
	Balance int64
}
