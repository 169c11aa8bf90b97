package engine

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dominion-go/ecs-engine/collections"
	"github.com/dominion-go/ecs-engine/system"
)

// componentIndexCapacity bounds how many distinct component and enum types
// a repository's ClassIndex will register. Grounded on the original
// DataComposition's COMPONENT_INDEX_CAPACITY = 1<<10.
const componentIndexCapacity = 1 << 10

// Composition is the per-archetype object: every entity stored in it
// carries exactly the same set of component types, laid out in the same
// column order, so iteration never needs a type check per entity.
type Composition struct {
	repo *CompositionRepository
	key  system.IndexKey

	classIDs       []int          // column -> dense class id, ascending
	componentTypes []reflect.Type // column -> component type
	columnOf       map[int]int    // dense class id -> column

	tenant *collections.Tenant[*Entity]

	stateTenants sync.Map // system.IndexKey -> *collections.Tenant[*Entity]

	logger *system.Logging
}

func newComposition(repo *CompositionRepository, classIDs []int, types []reflect.Type, key system.IndexKey) (*Composition, error) {
	// sortComponentsInPlaceByIndex: order columns by ascending class id so
	// that the same type set always produces the same column layout
	// regardless of the order components were declared in.
	pairs := make([]struct {
		id int
		t  reflect.Type
	}, len(classIDs))
	for i := range classIDs {
		pairs[i] = struct {
			id int
			t  reflect.Type
		}{classIDs[i], types[i]}
	}
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && pairs[j-1].id > pairs[j].id; j-- {
			pairs[j-1], pairs[j] = pairs[j], pairs[j-1]
		}
	}
	sortedIDs := make([]int, len(pairs))
	sortedTypes := make([]reflect.Type, len(pairs))
	columnOf := make(map[int]int, len(pairs))
	for i, p := range pairs {
		sortedIDs[i] = p.id
		sortedTypes[i] = p.t
		columnOf[p.id] = i
	}

	c := &Composition{
		repo:           repo,
		key:            key,
		classIDs:       sortedIDs,
		componentTypes: sortedTypes,
		columnOf:       columnOf,
		logger:         repo.logger.With(system.ContextComposition),
	}
	tenant, err := repo.pool.NewTenant()
	if err != nil {
		return nil, err
	}
	c.tenant = tenant
	c.logger.Debug("creating composition", "components", c.String())
	return c, nil
}

// String renders the composition's type set for debug logging, e.g.
// "Composition=[Position, Velocity]".
func (c *Composition) String() string {
	names := make([]string, len(c.componentTypes))
	for i, t := range c.componentTypes {
		names[i] = t.Name()
	}
	return fmt.Sprintf("Composition=[%s]", strings.Join(names, ", "))
}

// Key returns the composition's canonical type-set identity.
func (c *Composition) Key() system.IndexKey { return c.key }

// ComponentTypes returns the composition's column-ordered type list.
func (c *Composition) ComponentTypes() []reflect.Type {
	return c.componentTypes
}

// Has reports whether the composition includes the given component type.
func (c *Composition) Has(t reflect.Type) bool {
	id, ok := c.repo.classIndex.GetIndex(t)
	if !ok {
		return false
	}
	_, present := c.columnOf[id]
	return present
}

// columnFor returns the column index for t, or -1 if absent.
func (c *Composition) columnFor(t reflect.Type) int {
	id, ok := c.repo.classIndex.GetIndex(t)
	if !ok {
		return -1
	}
	col, ok := c.columnOf[id]
	if !ok {
		return -1
	}
	return col
}

// CreateEntity allocates a new entity in this composition with the given
// component values, which may be supplied in any order: they are placed
// into column order by matching each value's runtime type against the
// composition's layout.
func (c *Composition) CreateEntity(values ...any) (*Entity, error) {
	if len(values) != len(c.componentTypes) {
		return nil, ErrInvalidComponent
	}
	ordered := make([]any, len(c.componentTypes))
	filled := make([]bool, len(ordered))
	for _, v := range values {
		col := c.columnFor(reflect.TypeOf(v))
		if col < 0 || filled[col] {
			return nil, ErrInvalidComponent
		}
		ordered[col] = v
		filled[col] = true
	}

	entity := &Entity{
		composition: c,
		components:  ordered,
		enabled:     true,
	}
	id, err := c.tenant.NextID()
	if err != nil {
		return nil, err
	}
	entity.SetID(id)
	c.tenant.Register(entity)
	return entity, nil
}

// attachExisting re-homes an already-allocated entity into this
// composition during an add/remove migration, freeing its old tenant slot
// and registering a new one.
func (c *Composition) attachExisting(e *Entity, ordered []any) error {
	if old := e.composition; old != nil && old != c {
		old.tenant.FreeID(e.id)
	}
	e.composition = c
	e.components = ordered
	id, err := c.tenant.NextID()
	if err != nil {
		return err
	}
	e.SetID(id)
	c.tenant.Register(e)
	return nil
}

// buildColumns produces a column-ordered component slice for this
// composition from an existing entity's components (matched by class id),
// an overlay of newly-added values, and a set of removed types to skip.
func (c *Composition) buildColumns(source *Composition, existing []any, added map[int]any) []any {
	ordered := make([]any, len(c.componentTypes))
	for i, classID := range c.classIDs {
		if v, ok := added[classID]; ok {
			ordered[i] = v
			continue
		}
		if source != nil {
			if col, ok := source.columnOf[classID]; ok {
				ordered[i] = existing[col]
			}
		}
	}
	return ordered
}

// FetchStateTenant returns the tenant backing the given state key,
// creating it on first use. Grounded on the get-or-create idiom used by
// oriumgames-pecs's peerCache: a lock-free Load first, falling back to
// LoadOrStore only on a miss so the common case never contends.
func (c *Composition) FetchStateTenant(key system.IndexKey) (*collections.Tenant[*Entity], error) {
	if v, ok := c.stateTenants.Load(key); ok {
		return v.(*collections.Tenant[*Entity]), nil
	}
	created, err := c.repo.pool.NewStateTenant()
	if err != nil {
		return nil, err
	}
	v, _ := c.stateTenants.LoadOrStore(key, created)
	return v.(*collections.Tenant[*Entity]), nil
}

// setEntityState moves e between state-tenant buckets for its composition.
// A nil state releases e's current state slot without assigning a new one.
func (c *Composition) setEntityState(e *Entity, state Enum) {
	if e.stateChunk != nil {
		tenant := c.stateTenantOwning(e.stateChunk)
		if tenant != nil {
			tenant.FreeID(e.stateID)
		}
		e.SetStateChunk(nil)
	}
	if state == nil {
		return
	}
	stateType := reflect.TypeOf(state)
	classID, err := c.repo.classIndex.AddClass(stateType)
	if err != nil {
		return
	}
	key := system.EnumKey(classID, state.Ordinal())
	tenant, err := c.FetchStateTenant(key)
	if err != nil {
		return
	}
	stateID, err := tenant.NextID()
	if err != nil {
		return
	}
	e.SetStateID(stateID)
	tenant.Register(e)
}

// stateTenantOwning finds the tenant that owns the given state chunk by
// walking the registered state tenants. Chunks remember their tenant
// implicitly through the chunk chain each tenant starts, so this is a
// linear scan over state-tenant count, not over entities.
func (c *Composition) stateTenantOwning(chunk *collections.LinkedChunk[*Entity]) *collections.Tenant[*Entity] {
	var found *collections.Tenant[*Entity]
	c.stateTenants.Range(func(_, v any) bool {
		t := v.(*collections.Tenant[*Entity])
		if t.Owns(chunk) {
			found = t
			return false
		}
		return true
	})
	return found
}

// EntityCount returns the number of live entities in this composition.
func (c *Composition) EntityCount() int {
	return c.tenant.Size()
}
