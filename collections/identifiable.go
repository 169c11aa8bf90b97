package collections

// Identifiable is implemented by anything the pool can store. It mirrors
// the original engine's Item contract: every stored value knows its own
// id and the chunk(s) it currently lives in, and the pool mutates both in
// place when it allocates, recycles, or migrates a slot.
type Identifiable[T any] interface {
	comparable

	ID() uint32
	SetID(id uint32)
	StateID() uint32
	SetStateID(id uint32)
	Chunk() *LinkedChunk[T]
	SetChunk(chunk *LinkedChunk[T])
	SetStateChunk(chunk *LinkedChunk[T])
}
