package telemetry

import (
	"go.uber.org/fx"

	"github.com/pourhouse/pourhouse/internal/telemetry/repository"
	"github.com/pourhouse/pourhouse/internal/telemetry/service"
)

var Module = fx.Module("telemetry.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
