package owner

import (
	"github.com/pourhouse/pourhouse/internal/owner/repository"
	"github.com/pourhouse/pourhouse/internal/owner/service"
	"go.uber.org/fx"
)

var Module = fx.Module("owner.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
