package engine

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dominion-go/ecs-engine/collections"
	"github.com/dominion-go/ecs-engine/system"
)

// CompositionRepository is the top-level registry: it maps a type set to
// its one canonical Composition, and answers "every composition carrying
// at least these types" queries through a small versioned index so a
// query doesn't have to rescan every composition on every call.
type CompositionRepository struct {
	config     system.Config
	pool       *collections.ChunkedPool[*Entity]
	classIndex *system.ClassIndex
	logger     *system.Logging

	mu           sync.RWMutex
	compositions map[system.IndexKey]*Composition

	version atomic.Uint64

	nodesMu sync.Mutex
	nodes   map[system.IndexKey]*queryNode

	closed bool
}

// queryNode caches the compositions matching a required-type set. It is
// refreshed lazily: a node only recomputes its match list when the
// repository's version counter has moved past the version it cached
// against, mirroring the demand-driven cache-invalidation shape lazyecs
// uses for its filter/query cache staleness checks.
type queryNode struct {
	requiredIDs []int

	mu            sync.Mutex
	cachedVersion uint64
	matches       []*Composition
}

// NewCompositionRepository creates an empty repository using cfg's sizing
// preset and logger.
func NewCompositionRepository(cfg system.Config) *CompositionRepository {
	if cfg.Logger == nil {
		cfg.Logger = system.NewNopLogging()
	}
	logger := cfg.Logger.With(system.ContextRepository)
	r := &CompositionRepository{
		config:       cfg,
		classIndex:   system.NewClassIndex(componentIndexCapacity),
		logger:       logger,
		compositions: make(map[system.IndexKey]*Composition),
		nodes:        make(map[system.IndexKey]*queryNode),
	}
	r.pool = collections.NewChunkedPool[*Entity](cfg.Size.IdSchema(), cfg.Logger.With(system.ContextPool))
	return r
}

// GetOrCreate returns the canonical composition for the given type set,
// creating it on first use. Returns ErrCapacityExceeded if the repository
// has exhausted its class-index capacity for a genuinely new type.
func (r *CompositionRepository) GetOrCreate(types ...reflect.Type) (*Composition, error) {
	classIDs := make([]int, len(types))
	for i, t := range types {
		id, err := r.classIndex.AddClass(t)
		if err != nil {
			return nil, err
		}
		classIDs[i] = id
	}
	key := system.NewIndexKey(classIDs)

	r.mu.RLock()
	if c, ok := r.compositions[key]; ok {
		r.mu.RUnlock()
		return c, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.compositions[key]; ok {
		return c, nil
	}
	c, err := newComposition(r, classIDs, types, key)
	if err != nil {
		return nil, err
	}
	r.compositions[key] = c
	r.version.Add(1)
	return c, nil
}

// CreateEntity is a convenience wrapper that infers the type set from the
// supplied values and creates the entity in the corresponding composition.
func (r *CompositionRepository) CreateEntity(values ...any) (*Entity, error) {
	types := make([]reflect.Type, len(values))
	for i, v := range values {
		types[i] = reflect.TypeOf(v)
	}
	c, err := r.GetOrCreate(types...)
	if err != nil {
		return nil, err
	}
	return c.CreateEntity(values...)
}

// addComponents migrates e into the composition for its current types
// plus the newly added values, which must not duplicate an existing type.
func (r *CompositionRepository) addComponents(e *Entity, values ...any) *Entity {
	current := e.composition
	newTypes := append([]reflect.Type(nil), current.componentTypes...)
	added := make(map[int]any, len(values))
	for _, v := range values {
		t := reflect.TypeOf(v)
		if current.Has(t) {
			return e // duplicate component type: no-op migration
		}
		newTypes = append(newTypes, t)
		id, err := r.classIndex.AddClass(t)
		if err != nil {
			return e
		}
		added[id] = v
	}

	target, err := r.GetOrCreate(newTypes...)
	if err != nil {
		return e
	}
	ordered := target.buildColumns(current, e.components, added)
	if err := target.attachExisting(e, ordered); err != nil {
		return e
	}
	return e
}

// removeComponents migrates e into the composition for its current types
// minus the given types.
func (r *CompositionRepository) removeComponents(e *Entity, types ...Component) *Entity {
	current := e.composition
	remove := make(map[reflect.Type]bool, len(types))
	for _, t := range types {
		remove[t] = true
	}
	newTypes := make([]reflect.Type, 0, len(current.componentTypes))
	for _, t := range current.componentTypes {
		if !remove[t] {
			newTypes = append(newTypes, t)
		}
	}

	target, err := r.GetOrCreate(newTypes...)
	if err != nil {
		return e
	}
	ordered := target.buildColumns(current, e.components, nil)
	if err := target.attachExisting(e, ordered); err != nil {
		return e
	}
	return e
}

// RemoveEntity deletes e from the repository entirely: it is freed from
// its composition's tenant (and state tenant, if any) and flagged deleted
// so any further mutator on it becomes a no-op.
func (r *CompositionRepository) RemoveEntity(e *Entity) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return false
	}
	if e.stateChunk != nil {
		if tenant := e.composition.stateTenantOwning(e.stateChunk); tenant != nil {
			tenant.FreeID(e.stateID)
		}
	}
	e.composition.tenant.FreeID(e.id)
	e.deleted = true
	e.enabled = false
	return true
}

// nodeFor returns (creating if needed) the query node for a required-type
// set, identified by the same IndexKey machinery compositions use.
func (r *CompositionRepository) nodeFor(classIDs []int) *queryNode {
	key := system.NewIndexKey(classIDs)
	r.nodesMu.Lock()
	defer r.nodesMu.Unlock()
	n, ok := r.nodes[key]
	if !ok {
		n = &queryNode{requiredIDs: classIDs}
		r.nodes[key] = n
	}
	return n
}

// Select returns every composition that carries at least all of the given
// types, refreshing its cached match list only if the repository has
// grown new compositions since the last call.
func (r *CompositionRepository) Select(types ...reflect.Type) []*Composition {
	classIDs := make([]int, 0, len(types))
	for _, t := range types {
		id, ok := r.classIndex.GetIndex(t)
		if !ok {
			return nil // a type nobody has ever used yet cannot match anything
		}
		classIDs = append(classIDs, id)
	}

	node := r.nodeFor(classIDs)
	current := r.version.Load()

	node.mu.Lock()
	defer node.mu.Unlock()
	if node.cachedVersion == current {
		return node.matches
	}

	r.mu.RLock()
	matches := make([]*Composition, 0, len(r.compositions))
	for _, c := range r.compositions {
		if supersetOf(c, classIDs) {
			matches = append(matches, c)
		}
	}
	r.mu.RUnlock()

	node.matches = matches
	node.cachedVersion = current
	return matches
}

func supersetOf(c *Composition, required []int) bool {
	for _, id := range required {
		if _, ok := c.columnOf[id]; !ok {
			return false
		}
	}
	return true
}

// Close releases the underlying pool.
func (r *CompositionRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.pool.Close()
}
