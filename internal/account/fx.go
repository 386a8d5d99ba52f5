package account

import (
	"github.com/pourhouse/pourhouse/internal/account/repository"
	"github.com/pourhouse/pourhouse/internal/account/service"
	"go.uber.org/fx"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
