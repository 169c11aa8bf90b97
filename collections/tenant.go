package collections

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// Tenant is one independent allocation stream over a shared pool: it owns
// its own chain of chunks, its own next-id frontier, and its own free
// slots. A Composition uses one Tenant for its entities and one further
// Tenant per distinct enum-state value it tracks, so that state-tenants
// never contend with the entity id frontier or with each other.
type Tenant[T Identifiable[T]] struct {
	pool   *ChunkedPool[T]
	schema IdSchema

	// state marks a tenant allocating state-ids (fetched via FetchStateTenant)
	// rather than primary entity ids: it changes which of the entity's two
	// id/chunk back-pointer pairs Register and FreeID touch.
	state bool

	head *LinkedChunk[T]
	tail unsafe.Pointer // *LinkedChunk[T], swapped atomically on growth

	// chunks maps a chunk's pool-wide id to the chunk itself. Chunk ids are
	// minted pool-wide (see ChunkedPool.allocateChunk), so they are not
	// necessarily contiguous from this tenant's point of view — hence a
	// map rather than a slice indexed by position in the chain.
	chunks map[uint32]*LinkedChunk[T]

	// freeIDs is the LIFO stack of ids freed from a chunk that is no
	// longer this tenant's tail. Once a chunk is superseded, its index is
	// frozen — FreeID never decrements it again — so a slot vacated inside
	// it would otherwise be unreachable forever; NextID pops this stack
	// before ever advancing the tail cursor, mirroring the original
	// engine's ConcurrentPool free-id stack and the teacher's freeIDs.
	freeIDs []uint32

	size atomic.Int32
	lock sync.Mutex

	closed atomic.Bool
}

func newTenant[T Identifiable[T]](pool *ChunkedPool[T], schema IdSchema, state bool) (*Tenant[T], error) {
	first, err := pool.allocateChunk(nil)
	if err != nil {
		return nil, err
	}
	t := &Tenant[T]{
		pool:   pool,
		schema: schema,
		state:  state,
		head:   first,
		chunks: map[uint32]*LinkedChunk[T]{first.id: first},
	}
	t.tail = unsafe.Pointer(first)
	return t, nil
}

func (t *Tenant[T]) loadTail() *LinkedChunk[T] {
	return (*LinkedChunk[T])(atomic.LoadPointer(&t.tail))
}

// NextID allocates a fresh id. Freed ids are reused before allocating new
// ones: it first pops the free-stack, and only when that is empty does it
// fall onto the lock-free common path, which claims a slot in the current
// tail chunk with a CAS loop and escalates to the tenant's write lock to
// append a new chunk only when the tail is full.
func (t *Tenant[T]) NextID() (uint32, error) {
	if id, ok := t.popFree(); ok {
		t.size.Add(1)
		return id, nil
	}
	for {
		tail := t.loadTail()
		idx, ok := tail.incrementIndex()
		if ok {
			t.size.Add(1)
			return t.schema.MergeID(tail.id, uint32(idx)), nil
		}
		if err := t.growTail(tail); err != nil {
			return 0, err
		}
	}
}

func (t *Tenant[T]) popFree() (uint32, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	n := len(t.freeIDs)
	if n == 0 {
		return 0, false
	}
	id := t.freeIDs[n-1]
	t.freeIDs = t.freeIDs[:n-1]
	return id, true
}

func (t *Tenant[T]) pushFree(id uint32) {
	t.freeIDs = append(t.freeIDs, id)
}

func (t *Tenant[T]) growTail(full *LinkedChunk[T]) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.loadTail() != full {
		return nil // another writer already grew it
	}
	next, err := t.pool.allocateChunk(full)
	if err != nil {
		return err
	}
	t.chunks[next.id] = next
	atomic.StorePointer(&t.tail, unsafe.Pointer(next))
	return nil
}

// Register stores entity at the slot designated by its id (or state id,
// for a state tenant) and returns it, mirroring the pool's
// register-after-nextId idiom.
func (t *Tenant[T]) Register(entity T) T {
	var id uint32
	if t.state {
		id = entity.StateID()
	} else {
		id = entity.ID()
	}
	chunkID := t.schema.FetchChunkID(id)
	slot := int32(t.schema.FetchObjectID(id))
	chunk := t.chunkByID(chunkID)
	if t.state {
		chunk.SetState(slot, entity)
	} else {
		chunk.Set(slot, entity)
	}
	return entity
}

func (t *Tenant[T]) chunkByID(chunkID uint32) *LinkedChunk[T] {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.chunks[chunkID]
}

// FreeID releases a slot, swapping the chunk's last live entity into the
// freed slot (O(1) compaction) and returning the id the moved entity used
// to hold, so callers can reconcile any stale external references — if the
// freed slot was already the chunk's last slot, the returned id equals
// localID.
//
// If chunk is still this tenant's tail, the chunk's index is also
// decremented, reopening the vacated last slot for the next NextID call.
//
// If chunk has already been superseded by a later tail, its index is
// frozen: decrementing it would falsely reopen an earlier slot no writer
// is watching. The swap-compaction still happens against the chunk's
// frozen last index — mirroring the original engine's
// ConcurrentPool.LinkedPage.remove(id, doNotUpdateIndex=true), which
// performs the same swap without ever touching the page's index — and the
// vacated last slot's id is pushed onto the free-stack instead, to be
// popped by the next NextID call before it ever advances the tail cursor.
// Because the frozen index never moves, a second free from the same
// chunk swaps against that same last slot again; if that slot is already
// empty, no swap happens and the freed id itself is pushed and returned.
func (t *Tenant[T]) FreeID(localID uint32) uint32 {
	chunkID := t.schema.FetchChunkID(localID)
	slot := int32(t.schema.FetchObjectID(localID))

	t.lock.Lock()
	defer t.lock.Unlock()

	chunk := t.chunks[chunkID]
	t.size.Add(-1)

	last := chunk.currentIndex()
	if last < 0 {
		chunk.clear(slot)
		t.pushFree(localID)
		return localID
	}
	vacatedID := t.schema.MergeID(chunkID, uint32(last))

	if last != slot {
		moved := chunk.Get(last)
		var zero T
		if moved != zero {
			rewrittenID := t.schema.MergeID(chunkID, uint32(slot))
			if t.state {
				moved.SetStateID(rewrittenID)
				chunk.SetState(slot, moved)
			} else {
				moved.SetID(rewrittenID)
				chunk.Set(slot, moved)
			}
		} else {
			chunk.clear(slot)
			if chunk != t.loadTail() {
				// Nothing is left at the frozen last slot to swap in, so the
				// freed slot itself is the one the free-stack hands back.
				t.pushFree(localID)
				return localID
			}
		}
	}
	chunk.clear(last)

	if chunk == t.loadTail() {
		atomic.AddInt32(&chunk.index, -1)
		return vacatedID
	}
	t.pushFree(vacatedID)
	return vacatedID
}

// Owns reports whether chunk belongs to this tenant's chain.
func (t *Tenant[T]) Owns(chunk *LinkedChunk[T]) bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	for _, c := range t.chunks {
		if c == chunk {
			return true
		}
	}
	return false
}

// Size returns the tenant's live entity count.
func (t *Tenant[T]) Size() int {
	return int(t.size.Load())
}

// CurrentChunkSize returns the tail chunk's occupied slot count.
func (t *Tenant[T]) CurrentChunkSize() int {
	return t.loadTail().Size()
}

// Iterator returns a function-style iterator over every live entity,
// oldest chunk first, matching the pool's single-pass iteration contract.
// A non-tail chunk can hold empty slots at or below its frozen index — the
// last slot a free from that chunk vacated, or a freed slot with no live
// entity left to swap into it (see FreeID) — so slots are checked against
// the zero value rather than trusted blindly.
func (t *Tenant[T]) Iterator() func() (T, bool) {
	chunk := t.head
	var slot int32 = -1
	var zero T
	return func() (T, bool) {
		for chunk != nil {
			slot++
			if slot <= chunk.currentIndex() {
				v := chunk.Get(slot)
				if v == zero {
					continue
				}
				return v, true
			}
			chunk = chunk.Next()
			slot = -1
		}
		return zero, false
	}
}

// Close marks the tenant closed; its chunks stay registered in the tenant
// and the pool. It never errors; it exists so the pool's Close can treat
// every tenant uniformly under multierr.Append.
func (t *Tenant[T]) Close() error {
	t.closed.Store(true)
	return nil
}
