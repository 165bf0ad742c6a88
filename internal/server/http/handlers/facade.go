package handlers

import (
	"context"

	"github.com/yellowjack/loyaltybot/internal/domain/model"
)

// StaffFacade describes staff session capabilities required by handlers.
type StaffFacade interface {
	StaffSession(key string) (string, error)
	VerifyStaff(token string) bool
}

// LedgerFacade exposes the points and inventory operations served over HTTP.
type LedgerFacade interface {
	Profile(ctx context.Context, userID string) (model.Profile, error)
	Grant(ctx context.Context, actorID, targetID string, amount int64, staff bool) (int64, error)
	Deduct(ctx context.Context, actorID, targetID string, amount int64, staff bool) (int64, error)
	Check(ctx context.Context, userID string) (int64, error)
	Leaderboard(limit int) []model.LeaderboardEntry
	ClaimDaily(ctx context.Context, userID string) (model.DailyClaim, error)
	Catalog() []model.CatalogItem
	Redeem(ctx context.Context, userID, itemName string) (*model.RedemptionResult, error)
	Inventory(userID string) []string
}

// LoyaltyFacade aggregates the full set of operations used across handlers.
type LoyaltyFacade interface {
	StaffFacade
	LedgerFacade
}
