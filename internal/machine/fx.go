package machine

import (
	"github.com/pourhouse/pourhouse/internal/machine/repository"
	"github.com/pourhouse/pourhouse/internal/machine/service"
	"go.uber.org/fx"
)

var Module = fx.Module("machine.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
