package auth

import (
	"github.com/pourhouse/pourhouse/internal/auth/repository"
	"github.com/pourhouse/pourhouse/internal/auth/service"
	"github.com/pourhouse/pourhouse/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.ProvideSessions),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
