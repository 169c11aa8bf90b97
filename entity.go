package engine

import (
	"sync"

	"github.com/dominion-go/ecs-engine/collections"
)

// Entity is the per-entity record: a stable id, the composition it
// currently belongs to, the chunk it is physically stored in, and its
// component values in that composition's column order. Mutations take the
// entity's own lock for the single repository/composition call they need
// and release it before returning — never across two calls — so lock order
// is always entity-then-repository and can never invert against a
// tenant's internal locking.
type Entity struct {
	mu sync.Mutex

	id         uint32
	stateID    uint32
	chunk      *collections.LinkedChunk[*Entity]
	stateChunk *collections.LinkedChunk[*Entity]

	composition *Composition
	components  []any

	state   Enum
	enabled bool
	deleted bool
}

// Enum is implemented by state values a composition can key state-tenants
// on. Ordinal must be stable and dense starting at 0 for a given type.
type Enum interface {
	Ordinal() int
}

// ID satisfies collections.Identifiable.
func (e *Entity) ID() uint32 { return e.id }

// SetID satisfies collections.Identifiable.
func (e *Entity) SetID(id uint32) { e.id = id }

// StateID satisfies collections.Identifiable.
func (e *Entity) StateID() uint32 { return e.stateID }

// SetStateID satisfies collections.Identifiable.
func (e *Entity) SetStateID(id uint32) { e.stateID = id }

// Chunk satisfies collections.Identifiable.
func (e *Entity) Chunk() *collections.LinkedChunk[*Entity] { return e.chunk }

// SetChunk satisfies collections.Identifiable.
func (e *Entity) SetChunk(c *collections.LinkedChunk[*Entity]) { e.chunk = c }

// SetStateChunk satisfies collections.Identifiable.
func (e *Entity) SetStateChunk(c *collections.LinkedChunk[*Entity]) { e.stateChunk = c }

// Composition returns the composition the entity currently belongs to.
func (e *Entity) Composition() *Composition {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.composition
}

// IsEnabled reports whether the entity participates in queries.
func (e *Entity) IsEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled && !e.deleted
}

// SetEnabled flips the entity's participation flag. A deleted entity
// ignores this call.
func (e *Entity) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return
	}
	e.enabled = enabled
}

// IsDeleted reports whether the entity has been removed from its
// repository. Any further mutator becomes a no-op.
func (e *Entity) IsDeleted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deleted
}

// has reports whether the entity currently carries a component at the
// given column, matching the composition's componentIndex layout.
func (e *Entity) has(column int) bool {
	return column >= 0 && column < len(e.components)
}

// get returns the component stored at the given column, or nil.
func (e *Entity) get(column int) any {
	if !e.has(column) {
		return nil
	}
	return e.components[column]
}

// Has reports whether the entity's current composition carries a
// component of type t. Mirrors the original engine's public
// Entity.has(Class).
func (e *Entity) Has(t Component) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return false
	}
	return e.has(e.composition.columnFor(t))
}

// Get returns the entity's component value of type t, or nil if the
// entity carries no such component. Mirrors the original engine's public
// Entity.get(Class).
func (e *Entity) Get(t Component) any {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil
	}
	return e.get(e.composition.columnFor(t))
}

// Contains reports whether the entity carries every one of the given
// component types. Mirrors the original engine's public
// Entity.contains(Class...).
func (e *Entity) Contains(types ...Component) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return false
	}
	for _, t := range types {
		if !e.has(e.composition.columnFor(t)) {
			return false
		}
	}
	return true
}

// RemoveType detaches the given component types from the entity, migrating
// it to the composition that has its current type set minus those types.
// Deleted entities are a no-op, returning (e, false). Mirrors the original
// engine's public Entity.removeType(Class...).
func (e *Entity) RemoveType(types ...Component) (*Entity, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return e, false
	}
	repo := e.composition.repo
	return repo.removeComponents(e, types...), true
}

// State returns the entity's current enum state, or nil if it has none.
func (e *Entity) State() Enum {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Add attaches one or more new component values to the entity, migrating
// it to the composition that has its current type set plus the new types.
// Deleted entities are a no-op, returning (e, false).
func (e *Entity) Add(values ...any) (*Entity, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return e, false
	}
	repo := e.composition.repo
	return repo.addComponents(e, values...), true
}

// SetState moves the entity into (or out of, for nil) the state-tenant
// bucket for the given enum value, without changing its composition.
func (e *Entity) SetState(state Enum) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return false
	}
	e.composition.setEntityState(e, state)
	e.state = state
	return true
}
