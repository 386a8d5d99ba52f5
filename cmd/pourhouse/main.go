package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/pourhouse/pourhouse/internal/clock"
	"github.com/pourhouse/pourhouse/internal/migration"
	"github.com/pourhouse/pourhouse/internal/observability"
	"github.com/pourhouse/pourhouse/internal/scheduler"
	"github.com/pourhouse/pourhouse/internal/server"
	"github.com/pourhouse/pourhouse/pkg/db"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		db.Module,
		migration.Module,
		server.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
