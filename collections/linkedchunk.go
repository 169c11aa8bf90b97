package collections

import "sync/atomic"

// LinkedChunk is one slab of a tenant's arena: a fixed-capacity array of
// slots plus a pointer back to the chunk allocated immediately before it.
// index is -1 when empty; size is always index+1 for the chunk's own
// bookkeeping. Growth only ever appends a new chunk at the tail; once a
// chunk stops being the tail, its capacity never changes, though its
// occupancy can still shrink and grow via swap-compaction within its own
// slots (see Tenant.FreeID).
type LinkedChunk[T Identifiable[T]] struct {
	id       uint32
	schema   IdSchema
	previous *LinkedChunk[T]
	next     atomic.Pointer[LinkedChunk[T]]
	data     []T
	index    int32 // atomic
}

func newLinkedChunk[T Identifiable[T]](id uint32, schema IdSchema, previous *LinkedChunk[T]) *LinkedChunk[T] {
	c := &LinkedChunk[T]{
		id:       id,
		schema:   schema,
		previous: previous,
		data:     make([]T, schema.ChunkCapacity()),
		index:    -1,
	}
	if previous != nil {
		previous.next.Store(c)
	}
	return c
}

// ID returns the chunk's pool-wide id (see ChunkedPool.allocateChunk).
func (c *LinkedChunk[T]) ID() uint32 { return c.id }

// Previous returns the chunk allocated just before this one, or nil.
func (c *LinkedChunk[T]) Previous() *LinkedChunk[T] { return c.previous }

// Next returns the chunk allocated just after this one, or nil.
func (c *LinkedChunk[T]) Next() *LinkedChunk[T] { return c.next.Load() }

// Size reports index+1: the number of occupied slots of a tail chunk. For
// a superseded chunk, whose index is frozen, it also counts slots that
// Tenant.FreeID has since left empty.
func (c *LinkedChunk[T]) Size() int {
	return int(atomic.LoadInt32(&c.index)) + 1
}

// HasCapacity reports whether one more slot can be claimed.
func (c *LinkedChunk[T]) HasCapacity() bool {
	return int(atomic.LoadInt32(&c.index))+1 < len(c.data)
}

// incrementIndex atomically claims the next slot. ok is false if the chunk
// is already full, in which case no state changes.
func (c *LinkedChunk[T]) incrementIndex() (idx int32, ok bool) {
	for {
		cur := atomic.LoadInt32(&c.index)
		if int(cur)+1 >= len(c.data) {
			return cur, false
		}
		if atomic.CompareAndSwapInt32(&c.index, cur, cur+1) {
			return cur + 1, true
		}
	}
}

// Set stores entity at the given slot, wiring its primary chunk
// back-pointer.
func (c *LinkedChunk[T]) Set(slot int32, entity T) {
	entity.SetChunk(c)
	c.data[slot] = entity
}

// SetState stores entity at the given slot, wiring its state-chunk
// back-pointer instead of its primary one.
func (c *LinkedChunk[T]) SetState(slot int32, entity T) {
	entity.SetStateChunk(c)
	c.data[slot] = entity
}

// Get returns the entity stored at the given slot.
func (c *LinkedChunk[T]) Get(slot int32) T {
	return c.data[slot]
}

// clear zeroes a slot without touching index. Safe to call on a frozen
// (non-tail) chunk: it only ever touches data, never index.
func (c *LinkedChunk[T]) clear(slot int32) {
	var zero T
	c.data[slot] = zero
}

// rawGet returns the entity stored at slot regardless of whether slot is
// within the chunk's live occupancy, for resolving a raw id that may point
// at a slot vacated by a non-tail free. ok is false only if slot is out of
// the chunk's allocated range.
func (c *LinkedChunk[T]) rawGet(slot int32) (T, bool) {
	if slot < 0 || int(slot) >= len(c.data) {
		var zero T
		return zero, false
	}
	return c.data[slot], true
}

// currentIndex is the raw atomic index value, for tests.
func (c *LinkedChunk[T]) currentIndex() int32 {
	return atomic.LoadInt32(&c.index)
}
