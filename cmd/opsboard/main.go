package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/velozity/opsboard/internal/config"
	"github.com/velozity/opsboard/internal/logger"
	"github.com/velozity/opsboard/internal/metrics"
	"github.com/velozity/opsboard/internal/migration"
	"github.com/velozity/opsboard/internal/server"
	"github.com/velozity/opsboard/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		metrics.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
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
