package wallet

import (
	"go.uber.org/fx"

	"github.com/pourhouse/pourhouse/internal/wallet/repository"
	"github.com/pourhouse/pourhouse/internal/wallet/service"
)

var Module = fx.Module("wallet.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
