package ingredient

import (
	"go.uber.org/fx"

	"github.com/pourhouse/pourhouse/internal/ingredient/repository"
	"github.com/pourhouse/pourhouse/internal/ingredient/service"
)

var Module = fx.Module("ingredient.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
