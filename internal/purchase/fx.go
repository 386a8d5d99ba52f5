package purchase

import (
	"go.uber.org/fx"

	"github.com/pourhouse/pourhouse/internal/purchase/repository"
	"github.com/pourhouse/pourhouse/internal/purchase/service"
)

var Module = fx.Module("purchase.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
