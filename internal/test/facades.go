package test

import (
	"context"
	"sync"
	"time"

	"github.com/yellowjack/loyaltybot/internal/domain/model"
)

// StaffFacadeStub simulates staff session operations.
type StaffFacadeStub struct {
	SessionFn func(string) (string, error)
	VerifyFn  func(string) bool
}

// StaffSession returns a deterministic token unless overridden.
func (s StaffFacadeStub) StaffSession(key string) (string, error) {
	if s.SessionFn != nil {
		return s.SessionFn(key)
	}
	return "session-token", nil
}

// VerifyStaff reports whether the token grants staff capability.
func (s StaffFacadeStub) VerifyStaff(token string) bool {
	if s.VerifyFn != nil {
		return s.VerifyFn(token)
	}
	return token == "session-token"
}

// LedgerFacadeStub provides controllable behaviour for ledger endpoints.
type LedgerFacadeStub struct {
	ProfileFn     func(context.Context, string) (model.Profile, error)
	GrantFn       func(context.Context, string, string, int64, bool) (int64, error)
	DeductFn      func(context.Context, string, string, int64, bool) (int64, error)
	CheckFn       func(context.Context, string) (int64, error)
	LeaderboardFn func(int) []model.LeaderboardEntry
	ClaimDailyFn  func(context.Context, string) (model.DailyClaim, error)
	CatalogFn     func() []model.CatalogItem
	RedeemFn      func(context.Context, string, string) (*model.RedemptionResult, error)
	InventoryFn   func(string) []string
}

// Profile returns configured profile or a zero-balance default.
func (s LedgerFacadeStub) Profile(ctx context.Context, userID string) (model.Profile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return model.Profile{Points: 0, Tier: model.TierTacoMate}, nil
}

// Grant delegates to the override or reports the granted amount as balance.
func (s LedgerFacadeStub) Grant(ctx context.Context, actorID, targetID string, amount int64, staff bool) (int64, error) {
	if s.GrantFn != nil {
		return s.GrantFn(ctx, actorID, targetID, amount, staff)
	}
	return amount, nil
}

// Deduct delegates to the override or returns zero.
func (s LedgerFacadeStub) Deduct(ctx context.Context, actorID, targetID string, amount int64, staff bool) (int64, error) {
	if s.DeductFn != nil {
		return s.DeductFn(ctx, actorID, targetID, amount, staff)
	}
	return 0, nil
}

// Check returns the configured balance.
func (s LedgerFacadeStub) Check(ctx context.Context, userID string) (int64, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, userID)
	}
	return 0, nil
}

// Leaderboard returns the configured entries.
func (s LedgerFacadeStub) Leaderboard(limit int) []model.LeaderboardEntry {
	if s.LeaderboardFn != nil {
		return s.LeaderboardFn(limit)
	}
	return nil
}

// ClaimDaily returns a successful default claim.
func (s LedgerFacadeStub) ClaimDaily(ctx context.Context, userID string) (model.DailyClaim, error) {
	if s.ClaimDailyFn != nil {
		return s.ClaimDailyFn(ctx, userID)
	}
	return model.DailyClaim{Awarded: 10, Balance: 10}, nil
}

// Catalog returns the configured shop listing.
func (s LedgerFacadeStub) Catalog() []model.CatalogItem {
	if s.CatalogFn != nil {
		return s.CatalogFn()
	}
	return []model.CatalogItem{{Name: "Jarritos", Cost: 8}}
}

// Redeem delegates to the override or succeeds with a default item.
func (s LedgerFacadeStub) Redeem(ctx context.Context, userID, itemName string) (*model.RedemptionResult, error) {
	if s.RedeemFn != nil {
		return s.RedeemFn(ctx, userID, itemName)
	}
	return &model.RedemptionResult{Item: model.CatalogItem{Name: itemName, Cost: 1}, Balance: 0}, nil
}

// Inventory returns the configured item list.
func (s LedgerFacadeStub) Inventory(userID string) []string {
	if s.InventoryFn != nil {
		return s.InventoryFn(userID)
	}
	return nil
}

// LoyaltyFacadeStub aggregates facade dependencies for HTTP layer tests.
type LoyaltyFacadeStub struct {
	StaffFacadeStub
	LedgerFacadeStub
}

// AuditSinkStub records enqueued audit records.
type AuditSinkStub struct {
	mu      sync.Mutex
	Records []model.AuditRecord
	Reject  bool
}

// Enqueue stores the record unless the stub is configured to reject.
func (s *AuditSinkStub) Enqueue(record model.AuditRecord) bool {
	if s.Reject {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Records = append(s.Records, record)
	return true
}

// Enqueued returns a snapshot of the recorded audit records.
func (s *AuditSinkStub) Enqueued() []model.AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AuditRecord, len(s.Records))
	copy(out, s.Records)
	return out
}

// PublisherStub captures published audit records for worker tests.
type PublisherStub struct {
	PublishFn func(context.Context, model.AuditRecord) error

	mu      sync.Mutex
	Records []model.AuditRecord
}

// Publish stores the record or delegates to the override.
func (s *PublisherStub) Publish(ctx context.Context, record model.AuditRecord) error {
	if s.PublishFn != nil {
		return s.PublishFn(ctx, record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Records = append(s.Records, record)
	return nil
}

// Published returns a snapshot of the captured records.
func (s *PublisherStub) Published() []model.AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AuditRecord, len(s.Records))
	copy(out, s.Records)
	return out
}

// WaitForPublished polls until n records arrive or the deadline passes.
func (s *PublisherStub) WaitForPublished(n int, deadline time.Duration) bool {
	stop := time.Now().Add(deadline)
	for time.Now().Before(stop) {
		if len(s.Published()) >= n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return len(s.Published()) >= n
}
