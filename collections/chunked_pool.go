package collections

import (
	"sync"

	"go.uber.org/multierr"
)

// Logger is the narrow logging contract ChunkedPool needs. system.Logging
// satisfies it; the pool is defined here as a plain interface instead of
// importing the system package directly, since system.Config in turn
// needs collections.IdSchema and a mutual import would cycle.
type Logger interface {
	Debug(msg string, keyValues ...any)
}

// ChunkedPool is the shared slab allocator a composition's tenants draw
// their chunks from. It hands chunk ids out itself, pool-wide, so that a
// raw id resolves to exactly one chunk no matter which tenant allocated
// it — this is what lets GetEntry do an O(1) chunk lookup on an id without
// knowing which tenant minted it, mirroring the original engine's
// ChunkedPool.getEntry(id) sitting on the pool rather than the tenant.
// Tenants still each own an independent next-id frontier and free-stack;
// only the chunk id namespace itself is shared, and so is its ceiling:
// once every chunk id the schema can address has been minted, allocateChunk
// returns ErrPoolFull instead of silently overflowing IdSchema.MergeID.
type ChunkedPool[T Identifiable[T]] struct {
	schema IdSchema
	logger Logger

	mu      sync.Mutex
	tenants []*Tenant[T]

	// chunksMu guards chunks/nextID and is a distinct lock from mu, which
	// guards only the tenant list: allocateChunk (called from newTenant
	// before it takes mu, and from every tenant's growTail) and GetEntry
	// take chunksMu alone.
	chunksMu sync.Mutex
	chunks   map[uint32]*LinkedChunk[T] // global chunk id -> chunk, across every tenant
	nextID   uint32

	closed bool
}

// NewChunkedPool creates a pool using the given id layout. logger may be
// nil.
func NewChunkedPool[T Identifiable[T]](schema IdSchema, logger Logger) *ChunkedPool[T] {
	return &ChunkedPool[T]{schema: schema, logger: logger, chunks: make(map[uint32]*LinkedChunk[T])}
}

// allocateChunk mints a chunk with a fresh pool-wide id and registers it in
// the pool's global chunk table, so GetEntry can resolve it later without
// needing to know which tenant it belongs to. Returns ErrPoolFull once every
// chunk id the schema's chunk-id bits can address has already been minted.
func (p *ChunkedPool[T]) allocateChunk(previous *LinkedChunk[T]) (*LinkedChunk[T], error) {
	p.chunksMu.Lock()
	defer p.chunksMu.Unlock()
	if p.nextID > p.schema.ChunkIDBitMask() {
		return nil, ErrPoolFull
	}
	id := p.nextID
	p.nextID++
	c := newLinkedChunk[T](id, p.schema, previous)
	p.chunks[id] = c
	return c, nil
}

// GetEntry resolves a raw id to its stored item: O(1) chunk lookup by the
// id's chunk component, then direct slot indexing by its object component.
// This reaches slots a non-tail free has vacated but not yet reused, since
// a frozen chunk's data is never reclaimed except through its tenant's
// free-stack — exactly the compacted-read path spec scenario #2 exercises.
func (p *ChunkedPool[T]) GetEntry(id uint32) (T, bool) {
	chunkID := p.schema.FetchChunkID(id)
	slot := int32(p.schema.FetchObjectID(id))

	p.chunksMu.Lock()
	chunk, ok := p.chunks[chunkID]
	p.chunksMu.Unlock()
	if !ok {
		var zero T
		return zero, false
	}
	return chunk.rawGet(slot)
}

// NewTenant mints a fresh, independent allocation stream over primary
// entity ids. Returns ErrPoolFull if the pool's chunk-id space is already
// exhausted.
func (p *ChunkedPool[T]) NewTenant() (*Tenant[T], error) {
	return p.newTenant(false)
}

// NewStateTenant mints a tenant that allocates state ids instead of
// primary entity ids: Register and FreeID key off entity.StateID() and
// wire the entity's state-chunk back-pointer instead of its primary one.
func (p *ChunkedPool[T]) NewStateTenant() (*Tenant[T], error) {
	return p.newTenant(true)
}

func (p *ChunkedPool[T]) newTenant(state bool) (*Tenant[T], error) {
	t, err := newTenant[T](p, p.schema, state)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tenants = append(p.tenants, t)
	if p.logger != nil {
		p.logger.Debug("chunked pool: new tenant", "tenant_count", len(p.tenants), "state", state)
	}
	return t, nil
}

// Size aggregates the live entity count across every tenant.
func (p *ChunkedPool[T]) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0
	for _, t := range p.tenants {
		total += t.Size()
	}
	return total
}

// IdSchema exposes the pool's id layout.
func (p *ChunkedPool[T]) IdSchema() IdSchema { return p.schema }

// Close releases every tenant, aggregating any failures.
func (p *ChunkedPool[T]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	var err error
	for _, t := range p.tenants {
		err = multierr.Append(err, t.Close())
	}
	return err
}
