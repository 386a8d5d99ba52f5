package scheduler

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("janitor",
	fx.Provide(New),
	fx.Invoke(Start),
)

func Start(lc fx.Lifecycle, janitor *Janitor) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())

			go janitor.RunForever(ctx)

			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})

			return nil
		},
	})
}
