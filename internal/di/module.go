package di

import (
	"go.uber.org/fx"

	"github.com/yellowjack/loyaltybot/internal/adapter/logchannel"
	"github.com/yellowjack/loyaltybot/internal/app"
	"github.com/yellowjack/loyaltybot/internal/catalog"
	"github.com/yellowjack/loyaltybot/internal/config"
	"github.com/yellowjack/loyaltybot/internal/logger"
	"github.com/yellowjack/loyaltybot/internal/pkg/auth"
	"github.com/yellowjack/loyaltybot/internal/server/http/handlers"
	"github.com/yellowjack/loyaltybot/internal/server/http/router"
	"github.com/yellowjack/loyaltybot/internal/storage"
	"github.com/yellowjack/loyaltybot/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		catalog.Module,
		logchannel.Module,
		usecase.Module,
		fx.Provide(func(facade *app.LoyaltyFacade) handlers.LoyaltyFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
