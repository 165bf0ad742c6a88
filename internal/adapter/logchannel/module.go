package logchannel

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/yellowjack/loyaltybot/internal/config"
)

// Module exposes the audit publisher implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.LogChannelURL == "" {
		return NewLogClient(p.Logger), nil
	}
	return NewHTTPClient(p.Config.LogChannelURL, p.Logger)
}
