// Package engine is the concurrent archetype core: it groups entities by
// their exact component type set into Compositions, stores each
// Composition's entities in a collections.ChunkedPool arena, and exposes
// typed, lazy ResultSet iterators over any type-set query.
//
// There is no public façade or builder here by design — callers construct
// a CompositionRepository directly with system.Config and drive entities
// through it.
package engine
