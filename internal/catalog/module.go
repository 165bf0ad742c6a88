package catalog

import (
	"go.uber.org/fx"

	"github.com/yellowjack/loyaltybot/internal/config"
)

// Module provides the shop catalog to the fx graph.
var Module = fx.Provide(newCatalog)

type catalogParams struct {
	fx.In

	Config *config.Config
}

func newCatalog(p catalogParams) (*Catalog, error) {
	if p.Config.CatalogPath != "" {
		return LoadFile(p.Config.CatalogPath)
	}
	return Default(), nil
}
