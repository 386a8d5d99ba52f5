package bottle

import (
	"go.uber.org/fx"

	"github.com/pourhouse/pourhouse/internal/bottle/repository"
	"github.com/pourhouse/pourhouse/internal/bottle/service"
)

var Module = fx.Module("bottle.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
