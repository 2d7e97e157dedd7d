//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/spatial/internal/core/systems/physics"
	"github.com/zeusync/spatial/internal/scene"
	"github.com/zeusync/spatial/internal/server"
)

func InitializeWorld(cfg server.Config, docs []*scene.Document) (*physics.World, error) {
	wire.Build(ProvideLogger, ProvideEventBus, ProvideWorld)
	return nil, nil
}

func InitializeServer(cfg server.Config, docs []*scene.Document) (*server.Server, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
