package slot

import (
	"go.uber.org/fx"

	"github.com/pourhouse/pourhouse/internal/slot/repository"
	"github.com/pourhouse/pourhouse/internal/slot/service"
)

var Module = fx.Module("slot.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
