package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/turmapay/turmapay/internal/clock"
	"github.com/turmapay/turmapay/internal/config"
	"github.com/turmapay/turmapay/internal/logger"
	"github.com/turmapay/turmapay/internal/migration"
	"github.com/turmapay/turmapay/internal/seed"
	"github.com/turmapay/turmapay/internal/server"
	"github.com/turmapay/turmapay/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
		seed.Module,
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
