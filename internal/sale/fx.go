package sale

import (
	"go.uber.org/fx"

	"github.com/pourhouse/pourhouse/internal/sale/repository"
	"github.com/pourhouse/pourhouse/internal/sale/service"
)

var Module = fx.Module("sale.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
