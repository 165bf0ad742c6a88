package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/yellowjack/loyaltybot/internal/config"
	"github.com/yellowjack/loyaltybot/internal/domain/repository"
	"github.com/yellowjack/loyaltybot/internal/storage/file"
	"github.com/yellowjack/loyaltybot/internal/storage/postgres"
)

// Module wires the durable record store. Postgres backs the store when a
// database URI is configured, JSON files in the data dir otherwise.
var Module = fx.Options(
	fx.Provide(newRecordStore),
	fx.Invoke(registerLifecycle),
)

type storeParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newRecordStore(p storeParams) (repository.RecordStore, error) {
	if p.Config.DatabaseURI != "" {
		return postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	}
	return file.New(p.Config.DataDir, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, store repository.RecordStore) {
	closer, ok := store.(interface{ Close() })
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			closer.Close()
			return nil
		},
	})
}
