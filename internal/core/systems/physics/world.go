package physics

import (
	"fmt"
	"iter"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/zeusync/spatial/internal/core/events/bus"
	"github.com/zeusync/spatial/internal/core/observability/log"
	"github.com/zeusync/spatial/pkg/spatial"
	"github.com/zeusync/spatial/pkg/spatial/raycast"
	"github.com/zeusync/spatial/pkg/spatial/shape"
)

const defaultShardCount = 16

// Body lifecycle event types. Event data is the Body snapshot after the change, or
// the last snapshot for EventBodyRemoved.
const (
	EventBodyAdded   = "physics.body.added"
	EventBodyUpdated = "physics.body.updated"
	EventBodyRemoved = "physics.body.removed"
)

// WorldOption configures a World.
type WorldOption func(*WorldConfig)

// WorldConfig holds the configuration for a World.
type WorldConfig struct {
	ShardCount  int          // Number of lock shards bodies are spread across
	Logger      log.Log      // Receives debug entries for body lifecycle changes
	Events      bus.EventBus // Optional; receives body lifecycle events
	AsyncEvents bool         // Publish without waiting for handlers
}

// WithShardCount sets the number of shards. Values <= 0 fall back to the default.
func WithShardCount(n int) WorldOption {
	return func(c *WorldConfig) { c.ShardCount = n }
}

// WithLogger sets the logger.
func WithLogger(l log.Log) WorldOption {
	return func(c *WorldConfig) { c.Logger = l }
}

// WithEventBus publishes body lifecycle events to b.
func WithEventBus(b bus.EventBus) WorldOption {
	return func(c *WorldConfig) { c.Events = b }
}

// WithAsyncEvents makes mutations return before event handlers run. Handler errors
// are still logged.
func WithAsyncEvents() WorldOption {
	return func(c *WorldConfig) { c.AsyncEvents = true }
}

// World is a concurrent registry of bodies that rays can be cast against.
type World struct {
	shards []shard
	seq    atomic.Uint64
	count  atomic.Int64
	logger log.Log
	events bus.EventBus
	async  bool
}

type shard struct {
	mx     sync.RWMutex
	bodies map[BodyID]*Body
}

func NewWorld(opts ...WorldOption) *World {
	cfg := WorldConfig{ShardCount: defaultShardCount}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ShardCount <= 0 {
		cfg.ShardCount = defaultShardCount
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNop()
	}

	w := &World{
		shards: make([]shard, cfg.ShardCount),
		logger: cfg.Logger.With(log.String("component", "physics_world")),
		events: cfg.Events,
		async:  cfg.AsyncEvents,
	}
	for i := range w.shards {
		w.shards[i].bodies = make(map[BodyID]*Body)
	}
	return w
}

func (w *World) shardFor(id BodyID) *shard {
	return &w.shards[xxhash.Sum64String(string(id))%uint64(len(w.shards))]
}

// Add registers a body and returns its id. The transform rotation is normalised.
func (w *World) Add(name string, s shape.Shape, t spatial.Transform, tags ...string) (BodyID, error) {
	if s == nil {
		return "", fmt.Errorf("add body %q: %w", name, ErrNilShape)
	}
	t, err := spatial.NewTransform(t.Rotation, t.Translation)
	if err != nil {
		return "", fmt.Errorf("add body %q: %w", name, err)
	}

	body := &Body{
		ID:        NewBodyID(),
		Name:      name,
		Tags:      slices.Clone(tags),
		Shape:     s,
		Transform: t,
		seq:       w.seq.Add(1),
	}

	sh := w.shardFor(body.ID)
	sh.mx.Lock()
	sh.bodies[body.ID] = body
	sh.mx.Unlock()
	w.count.Add(1)

	w.logger.Debug("body added",
		log.String("id", body.ID.String()),
		log.String("name", name),
		log.Stringer("kind", s.Kind()),
	)
	w.publish(EventBodyAdded, body.clone())
	return body.ID, nil
}

// Get returns a snapshot of the body.
func (w *World) Get(id BodyID) (Body, error) {
	sh := w.shardFor(id)
	sh.mx.RLock()
	defer sh.mx.RUnlock()

	body, ok := sh.bodies[id]
	if !ok {
		return Body{}, fmt.Errorf("get body %s: %w", id, ErrBodyNotFound)
	}
	return body.clone(), nil
}

// SetTransform replaces the body's transform.
func (w *World) SetTransform(id BodyID, t spatial.Transform) error {
	t, err := spatial.NewTransform(t.Rotation, t.Translation)
	if err != nil {
		return fmt.Errorf("set transform %s: %w", id, err)
	}
	body, err := w.update(id, func(b *Body) { b.Transform = t })
	if err != nil {
		return fmt.Errorf("set transform: %w", err)
	}
	w.logger.Debug("body moved", log.String("id", id.String()), log.Stringer("transform", t))
	w.publish(EventBodyUpdated, body)
	return nil
}

// SetShape replaces the body's shape.
func (w *World) SetShape(id BodyID, s shape.Shape) error {
	if s == nil {
		return fmt.Errorf("set shape %s: %w", id, ErrNilShape)
	}
	body, err := w.update(id, func(b *Body) { b.Shape = s })
	if err != nil {
		return fmt.Errorf("set shape: %w", err)
	}
	w.logger.Debug("body reshaped", log.String("id", id.String()), log.Stringer("kind", s.Kind()))
	w.publish(EventBodyUpdated, body)
	return nil
}

func (w *World) update(id BodyID, fn func(*Body)) (Body, error) {
	sh := w.shardFor(id)
	sh.mx.Lock()
	defer sh.mx.Unlock()

	body, ok := sh.bodies[id]
	if !ok {
		return Body{}, fmt.Errorf("body %s: %w", id, ErrBodyNotFound)
	}
	// Copy on write so snapshots handed out earlier stay untouched.
	next := *body
	fn(&next)
	sh.bodies[id] = &next
	return next.clone(), nil
}

// Remove unregisters the body.
func (w *World) Remove(id BodyID) error {
	sh := w.shardFor(id)
	sh.mx.Lock()
	body, ok := sh.bodies[id]
	delete(sh.bodies, id)
	sh.mx.Unlock()

	if !ok {
		return fmt.Errorf("remove body %s: %w", id, ErrBodyNotFound)
	}
	w.count.Add(-1)
	w.logger.Debug("body removed", log.String("id", id.String()))
	w.publish(EventBodyRemoved, body.clone())
	return nil
}

// publish runs outside the shard locks so handlers may call back into the World.
func (w *World) publish(eventType string, body Body) {
	if w.events == nil {
		return
	}
	event := bus.NewEvent(eventType, "physics_world", body)
	if !w.async {
		w.logPublishError(eventType, body.ID, w.events.Publish(event))
		return
	}
	errCh := w.events.PublishAsync(event)
	go func() {
		w.logPublishError(eventType, body.ID, <-errCh)
	}()
}

func (w *World) logPublishError(eventType string, id BodyID, err error) {
	if err == nil {
		return
	}
	w.logger.Warn("body event handler failed",
		log.String("event", eventType),
		log.String("id", id.String()),
		log.Error(err))
}

func (w *World) Len() int {
	return int(w.count.Load())
}

// Snapshot returns every body in registration order.
func (w *World) Snapshot() []Body {
	bodies := w.ordered()
	for i := range bodies {
		bodies[i] = bodies[i].clone()
	}
	return bodies
}

// ordered copies the stored bodies in registration order. The copies share Tags with
// the World and must not leave the package unless cloned.
func (w *World) ordered() []Body {
	bodies := make([]Body, 0, w.Len())
	for i := range w.shards {
		sh := &w.shards[i]
		sh.mx.RLock()
		for _, b := range sh.bodies {
			bodies = append(bodies, *b)
		}
		sh.mx.RUnlock()
	}
	slices.SortFunc(bodies, func(a, b Body) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})
	return bodies
}

// Bodies iterates a snapshot taken when iteration starts, in registration order.
func (w *World) Bodies() iter.Seq[Body] {
	return func(yield func(Body) bool) {
		for _, b := range w.Snapshot() {
			if !yield(b) {
				return
			}
		}
	}
}

// Cast returns the nearest hit. Hits at equal distance resolve to the body registered first.
func (w *World) Cast(ray spatial.Ray, maxDistance float64, filter Filter) (raycast.RayCollision[Body], bool) {
	hit, ok := raycast.Cast(ray, slices.Values(w.ordered()), maxDistance, filter)
	if ok {
		hit.Hit = hit.Hit.clone()
	}
	return hit, ok
}

// CastAll returns every hit within maxDistance ordered by entry distance.
func (w *World) CastAll(ray spatial.Ray, maxDistance float64, filter Filter) []raycast.RayCollision[Body] {
	hits := raycast.CastAll(ray, slices.Values(w.ordered()), maxDistance, filter)
	for i := range hits {
		hits[i].Hit = hits[i].Hit.clone()
	}
	return hits
}
