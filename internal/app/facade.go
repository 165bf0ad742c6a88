package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.uber.org/fx"

	domainErrors "github.com/yellowjack/loyaltybot/internal/domain/errors"
	"github.com/yellowjack/loyaltybot/internal/domain/model"
	"github.com/yellowjack/loyaltybot/internal/usecase"
)

// AuditSink accepts audit records for asynchronous publishing.
type AuditSink interface {
	Enqueue(record model.AuditRecord) bool
}

// LoyaltyFacade fronts the ledger and staff use cases for the HTTP layer. It
// owns the cross-cutting behaviour: feeding successful mutations to the audit
// sink and shutting the process down when the store stops persisting, since a
// ledger that silently diverges from its storage is worse than a dead one.
type LoyaltyFacade struct {
	ledger     *usecase.LedgerUseCase
	staff      *usecase.StaffAccessUseCase
	audit      AuditSink
	logger     *slog.Logger
	shutdowner fx.Shutdowner
	now        func() time.Time
}

// NewLoyaltyFacade constructs the application facade.
func NewLoyaltyFacade(ledger *usecase.LedgerUseCase, staff *usecase.StaffAccessUseCase, audit AuditSink, logger *slog.Logger, shutdowner fx.Shutdowner) *LoyaltyFacade {
	return &LoyaltyFacade{
		ledger:     ledger,
		staff:      staff,
		audit:      audit,
		logger:     logger,
		shutdowner: shutdowner,
		now:        time.Now,
	}
}

// StaffSession exchanges the staff key for a session token.
func (f *LoyaltyFacade) StaffSession(key string) (string, error) {
	return f.staff.Authenticate(key)
}

// VerifyStaff reports whether the token is a valid staff session token.
func (f *LoyaltyFacade) VerifyStaff(token string) bool {
	return f.staff.Verify(token)
}

// Profile returns the balance and tier for a user.
func (f *LoyaltyFacade) Profile(ctx context.Context, userID string) (model.Profile, error) {
	profile, err := f.ledger.Profile(ctx, userID)
	return profile, f.checkFatal(err)
}

// Grant adds points and feeds the audit trail on success.
func (f *LoyaltyFacade) Grant(ctx context.Context, actorID, targetID string, amount int64, staff bool) (int64, error) {
	balance, record, err := f.ledger.Grant(ctx, actorID, targetID, amount, staff)
	if err != nil {
		return 0, f.checkFatal(err)
	}
	f.enqueueAudit(record)
	return balance, nil
}

// Deduct removes points and feeds the audit trail on success.
func (f *LoyaltyFacade) Deduct(ctx context.Context, actorID, targetID string, amount int64, staff bool) (int64, error) {
	balance, record, err := f.ledger.Deduct(ctx, actorID, targetID, amount, staff)
	if err != nil {
		return 0, f.checkFatal(err)
	}
	f.enqueueAudit(record)
	return balance, nil
}

// Check returns the current balance for a user.
func (f *LoyaltyFacade) Check(ctx context.Context, userID string) (int64, error) {
	balance, err := f.ledger.Check(ctx, userID)
	return balance, f.checkFatal(err)
}

// Leaderboard returns the top accounts by balance.
func (f *LoyaltyFacade) Leaderboard(limit int) []model.LeaderboardEntry {
	return f.ledger.Leaderboard(limit)
}

// ClaimDaily awards the daily bonus against the current wall clock.
func (f *LoyaltyFacade) ClaimDaily(ctx context.Context, userID string) (model.DailyClaim, error) {
	claim, err := f.ledger.ClaimDaily(ctx, userID, f.now())
	return claim, f.checkFatal(err)
}

// Catalog returns the shop listing.
func (f *LoyaltyFacade) Catalog() []model.CatalogItem {
	return f.ledger.Catalog()
}

// Redeem purchases a catalog item for the user.
func (f *LoyaltyFacade) Redeem(ctx context.Context, userID, itemName string) (*model.RedemptionResult, error) {
	result, err := f.ledger.Redeem(ctx, userID, itemName)
	if err != nil {
		return nil, f.checkFatal(err)
	}
	return result, nil
}

// Inventory returns the user's redeemed items in purchase order.
func (f *LoyaltyFacade) Inventory(userID string) []string {
	return f.ledger.Inventory(userID)
}

func (f *LoyaltyFacade) enqueueAudit(record *model.AuditRecord) {
	if record == nil {
		return
	}
	f.audit.Enqueue(*record)
}

// checkFatal triggers shutdown when the store stops persisting. Serving
// requests against state that no longer reaches storage would hand out points
// that vanish on restart.
func (f *LoyaltyFacade) checkFatal(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domainErrors.ErrStoreFailure) {
		f.logger.Error("record store failure, shutting down", slog.String("error", err.Error()))
		_ = f.shutdowner.Shutdown()
	}
	return err
}
