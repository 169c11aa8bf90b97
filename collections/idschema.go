// Package collections implements the concurrent chunked arena allocator
// that backs entity and state-tenant storage.
package collections

// IdSchema defines how a 32-bit identifier splits into a chunk id and a
// slot id within that chunk. The low chunkBit bits address a slot inside a
// chunk; the remaining high bits address the chunk itself.
type IdSchema struct {
	chunkBit        uint32
	chunkCapacity   int
	objectIDBitMask uint32
	chunkIDBitMask  uint32
}

// NewIdSchema builds a schema where each chunk holds 1<<chunkBit slots.
func NewIdSchema(chunkBit uint32) IdSchema {
	if chunkBit == 0 || chunkBit >= 32 {
		panic("collections: chunkBit must be in [1,31]")
	}
	return IdSchema{
		chunkBit:        chunkBit,
		chunkCapacity:   1 << chunkBit,
		objectIDBitMask: (1 << chunkBit) - 1,
		chunkIDBitMask:  (uint32(1) << (32 - chunkBit)) - 1,
	}
}

// ChunkBit returns the number of bits reserved for the slot id.
func (s IdSchema) ChunkBit() uint32 { return s.chunkBit }

// ChunkCapacity returns the number of slots per chunk.
func (s IdSchema) ChunkCapacity() int { return s.chunkCapacity }

// ObjectIDBitMask masks the slot-id portion of a merged id.
func (s IdSchema) ObjectIDBitMask() uint32 { return s.objectIDBitMask }

// ChunkIDBitMask masks the chunk-id portion once shifted into place.
func (s IdSchema) ChunkIDBitMask() uint32 { return s.chunkIDBitMask }

// MergeID packs a chunk id and a slot id into one identifier.
func (s IdSchema) MergeID(chunkID, objectID uint32) uint32 {
	return (chunkID << s.chunkBit) | (objectID & s.objectIDBitMask)
}

// FetchChunkID extracts the chunk id portion of a merged id.
func (s IdSchema) FetchChunkID(id uint32) uint32 {
	return (id >> s.chunkBit) & s.chunkIDBitMask
}

// FetchObjectID extracts the slot id portion of a merged id.
func (s IdSchema) FetchObjectID(id uint32) uint32 {
	return id & s.objectIDBitMask
}
