package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/spatial/internal/core/events/bus"
	"github.com/zeusync/spatial/internal/core/observability/log"
	"github.com/zeusync/spatial/internal/core/systems/physics"
	"github.com/zeusync/spatial/internal/scene"
	"github.com/zeusync/spatial/internal/server"
)

// ProviderSet builds a populated world and the query server around it.
var ProviderSet = wire.NewSet(ProvideLogger, ProvideEventBus, ProvideWorld, ProvideServer)

func ProvideLogger(cfg server.Config) *log.Logger {
	return log.New(cfg.LogLevel)
}

// ProvideEventBus returns a bus that logs every body lifecycle event at debug level.
func ProvideEventBus(logger *log.Logger) (bus.EventBus, error) {
	events := bus.New()
	_, err := events.Subscribe(bus.AnyEvent, func(e bus.Event) error {
		if body, ok := e.Data().(physics.Body); ok {
			logger.Debug("World changed",
				log.String("event", e.Type()),
				log.String("body", body.Name),
				log.String("id", body.ID.String()))
		}
		return nil
	})
	return events, err
}

// ProvideWorld creates a world holding the bodies of every document, in order.
func ProvideWorld(logger *log.Logger, events bus.EventBus, docs []*scene.Document) (*physics.World, error) {
	world := physics.NewWorld(physics.WithLogger(logger), physics.WithEventBus(events))
	for _, doc := range docs {
		ids, err := doc.Populate(world)
		if err != nil {
			return nil, err
		}
		logger.Info("Scene loaded", log.String("scene", doc.Name), log.Int("bodies", len(ids)))
	}
	return world, nil
}

func ProvideServer(cfg server.Config, world *physics.World, logger *log.Logger) *server.Server {
	return server.NewServer(cfg, world, logger)
}
