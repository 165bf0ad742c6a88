package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yellowjack/loyaltybot/internal/catalog"
	domainErrors "github.com/yellowjack/loyaltybot/internal/domain/errors"
	"github.com/yellowjack/loyaltybot/internal/domain/model"
	"github.com/yellowjack/loyaltybot/internal/domain/repository"
)

const (
	// DailyAward is the fixed daily bonus in points.
	DailyAward = 10
	// DailyCooldown is the window between successful daily claims.
	DailyCooldown = 24 * time.Hour

	defaultLeaderboardLimit = 10
)

// LedgerUseCase owns the in-memory account and inventory maps for the
// process lifetime and enforces every balance/inventory rule. All operations
// serialize on one mutex, so back-to-back commands for the same user apply in
// arrival order and each mutation persists before the next one starts.
type LedgerUseCase struct {
	mu      sync.Mutex
	store   repository.RecordStore
	catalog *catalog.Catalog

	accounts    map[string]*model.Account
	inventories map[string]*model.Inventory
	// created tracks account creation order for leaderboard tie-breaks.
	created []string
}

// NewLedgerUseCase loads both record sets and constructs the engine. A
// malformed persisted record is a startup error; running on garbled economy
// state is worse than not starting.
func NewLedgerUseCase(ctx context.Context, store repository.RecordStore, cat *catalog.Catalog) (*LedgerUseCase, error) {
	u := &LedgerUseCase{
		store:       store,
		catalog:     cat,
		accounts:    make(map[string]*model.Account),
		inventories: make(map[string]*model.Inventory),
	}

	loyalty, err := store.Load(ctx, repository.SetLoyalty)
	if err != nil {
		return nil, fmt.Errorf("load loyalty: %w", err)
	}
	for userID, raw := range loyalty {
		var account model.Account
		if err := json.Unmarshal(raw, &account); err != nil {
			return nil, fmt.Errorf("%w: account %s: %v", domainErrors.ErrCorruptState, userID, err)
		}
		u.accounts[userID] = &account
	}

	inventories, err := store.Load(ctx, repository.SetInventory)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	for userID, raw := range inventories {
		var inv model.Inventory
		if err := json.Unmarshal(raw, &inv); err != nil {
			return nil, fmt.Errorf("%w: inventory %s: %v", domainErrors.ErrCorruptState, userID, err)
		}
		u.inventories[userID] = &inv
	}

	// JSON objects carry no reliable ordering, so rebuild the creation
	// sequence deterministically for accounts from previous runs.
	u.created = make([]string, 0, len(u.accounts))
	for userID := range u.accounts {
		u.created = append(u.created, userID)
	}
	sort.Strings(u.created)

	return u, nil
}

// Profile returns the live balance and derived tier, materializing the
// account on first reference.
func (u *LedgerUseCase) Profile(ctx context.Context, userID string) (model.Profile, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	account, created := u.account(userID)
	if created {
		if err := u.saveAccounts(ctx); err != nil {
			return model.Profile{}, err
		}
	}
	return model.Profile{Points: account.Points, Tier: model.TierFor(account.Points)}, nil
}

// Grant adds points to the target balance on behalf of an authorized actor.
// The returned audit record is nil whenever the grant fails.
func (u *LedgerUseCase) Grant(ctx context.Context, actorID, targetID string, amount int64, actorIsStaff bool) (int64, *model.AuditRecord, error) {
	return u.adjust(ctx, actorID, targetID, amount, actorIsStaff, model.AuditGrant)
}

// Deduct removes points from the target balance, clamping at zero. Staff
// corrections are forgiving: removing more than the balance holds zeroes the
// account instead of failing.
func (u *LedgerUseCase) Deduct(ctx context.Context, actorID, targetID string, amount int64, actorIsStaff bool) (int64, *model.AuditRecord, error) {
	return u.adjust(ctx, actorID, targetID, amount, actorIsStaff, model.AuditDeduct)
}

func (u *LedgerUseCase) adjust(ctx context.Context, actorID, targetID string, amount int64, actorIsStaff bool, direction model.AuditDirection) (int64, *model.AuditRecord, error) {
	if !actorIsStaff {
		return 0, nil, domainErrors.ErrUnauthorized
	}
	if amount <= 0 {
		return 0, nil, domainErrors.ErrInvalidAmount
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	account, _ := u.account(targetID)
	switch direction {
	case model.AuditGrant:
		account.Points += amount
	case model.AuditDeduct:
		account.Points -= amount
		if account.Points < 0 {
			account.Points = 0
		}
	}

	if err := u.saveAccounts(ctx); err != nil {
		return 0, nil, err
	}

	record := &model.AuditRecord{
		Actor:     actorID,
		Target:    targetID,
		Amount:    amount,
		Direction: direction,
		At:        time.Now().UTC(),
	}
	return account.Points, record, nil
}

// Check returns the current balance, materializing the account on first
// reference.
func (u *LedgerUseCase) Check(ctx context.Context, userID string) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	account, created := u.account(userID)
	if created {
		if err := u.saveAccounts(ctx); err != nil {
			return 0, err
		}
	}
	return account.Points, nil
}

// Leaderboard returns up to limit accounts ordered by points descending.
// Ties keep account creation order; no accounts yields an empty slice.
func (u *LedgerUseCase) Leaderboard(limit int) []model.LeaderboardEntry {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	entries := make([]model.LeaderboardEntry, 0, len(u.created))
	for _, userID := range u.created {
		entries = append(entries, model.LeaderboardEntry{UserID: userID, Points: u.accounts[userID].Points})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// ClaimDaily awards the fixed daily bonus, enforcing the 24h cooldown
// measured from the last successful claim.
func (u *LedgerUseCase) ClaimDaily(ctx context.Context, userID string, now time.Time) (model.DailyClaim, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	account, _ := u.account(userID)
	if account.LastDaily != 0 {
		elapsed := now.Sub(time.UnixMilli(account.LastDaily))
		if elapsed < DailyCooldown {
			return model.DailyClaim{}, domainErrors.CooldownError{Remaining: DailyCooldown - elapsed}
		}
	}

	account.Points += DailyAward
	account.LastDaily = now.UnixMilli()
	if err := u.saveAccounts(ctx); err != nil {
		return model.DailyClaim{}, err
	}
	return model.DailyClaim{Awarded: DailyAward, Balance: account.Points}, nil
}

// Catalog returns the shop listing in catalog order. Pure read.
func (u *LedgerUseCase) Catalog() []model.CatalogItem {
	return u.catalog.Items()
}

// Redeem purchases a catalog item by case-insensitive name. Unlike staff
// deductions this path is strict: an insufficient balance rejects the whole
// purchase, and neither balance nor inventory changes on failure.
func (u *LedgerUseCase) Redeem(ctx context.Context, userID, itemName string) (*model.RedemptionResult, error) {
	item, ok := u.catalog.Find(itemName)
	if !ok {
		return nil, domainErrors.ErrItemNotFound
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	account, _ := u.account(userID)
	if account.Points < item.Cost {
		return nil, domainErrors.ErrInsufficientPoints
	}

	account.Points -= item.Cost
	if err := u.saveAccounts(ctx); err != nil {
		return nil, err
	}

	inv, ok := u.inventories[userID]
	if !ok {
		inv = &model.Inventory{}
		u.inventories[userID] = inv
	}
	inv.Items = append(inv.Items, item.Name)
	if err := u.saveInventories(ctx); err != nil {
		return nil, err
	}

	return &model.RedemptionResult{Item: item, Balance: account.Points}, nil
}

// Inventory returns the redeemed item names in purchase order. An empty
// inventory is a valid, empty result.
func (u *LedgerUseCase) Inventory(userID string) []string {
	u.mu.Lock()
	defer u.mu.Unlock()

	inv, ok := u.inventories[userID]
	if !ok || len(inv.Items) == 0 {
		return nil
	}
	out := make([]string, len(inv.Items))
	copy(out, inv.Items)
	return out
}

// account returns the entry for userID, creating it with a zero balance on
// first reference. The bool reports whether a new entry was materialized, so
// callers can decide whether the set needs persisting.
func (u *LedgerUseCase) account(userID string) (*model.Account, bool) {
	if account, ok := u.accounts[userID]; ok {
		return account, false
	}
	account := &model.Account{}
	u.accounts[userID] = account
	u.created = append(u.created, userID)
	return account, true
}

func (u *LedgerUseCase) saveAccounts(ctx context.Context) error {
	records := make(map[string]json.RawMessage, len(u.accounts))
	for userID, account := range u.accounts {
		data, err := json.Marshal(account)
		if err != nil {
			return fmt.Errorf("%w: encode account %s: %v", domainErrors.ErrStoreFailure, userID, err)
		}
		records[userID] = data
	}
	return u.store.Save(ctx, repository.SetLoyalty, records)
}

func (u *LedgerUseCase) saveInventories(ctx context.Context) error {
	records := make(map[string]json.RawMessage, len(u.inventories))
	for userID, inv := range u.inventories {
		data, err := json.Marshal(inv)
		if err != nil {
			return fmt.Errorf("%w: encode inventory %s: %v", domainErrors.ErrStoreFailure, userID, err)
		}
		records[userID] = data
	}
	return u.store.Save(ctx, repository.SetInventory, records)
}
