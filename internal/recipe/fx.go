package recipe

import (
	"go.uber.org/fx"

	"github.com/pourhouse/pourhouse/internal/cache"
	"github.com/pourhouse/pourhouse/internal/recipe/repository"
	"github.com/pourhouse/pourhouse/internal/recipe/service"
)

var Module = fx.Module("recipe.service",
	fx.Provide(cache.NewMenuCache),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
