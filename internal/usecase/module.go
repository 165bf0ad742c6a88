package usecase

import (
	"context"

	"go.uber.org/fx"

	"github.com/yellowjack/loyaltybot/internal/catalog"
	"github.com/yellowjack/loyaltybot/internal/config"
	"github.com/yellowjack/loyaltybot/internal/domain/repository"
	"github.com/yellowjack/loyaltybot/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newLedgerUseCase,
	newStaffAccessUseCase,
)

type ledgerParams struct {
	fx.In

	Ctx     context.Context
	Store   repository.RecordStore
	Catalog *catalog.Catalog
}

func newLedgerUseCase(p ledgerParams) (*LedgerUseCase, error) {
	return NewLedgerUseCase(p.Ctx, p.Store, p.Catalog)
}

type staffParams struct {
	fx.In

	Hasher   auth.KeyHasher
	Strategy auth.Strategy
	Config   *config.Config
}

func newStaffAccessUseCase(p staffParams) *StaffAccessUseCase {
	return NewStaffAccessUseCase(p.Hasher, p.Strategy, p.Config.StaffKeyHash)
}
