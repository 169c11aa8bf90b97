// Package system holds cross-cutting engine services: type registration,
// composition-key derivation, logging, and sizing presets.
package system

import "github.com/dominion-go/ecs-engine/collections"

// DominionSize is a sizing preset trading chunk capacity for chunk count,
// mirroring the original engine's Config.DominionSize enum.
type DominionSize int

const (
	Small DominionSize = iota
	Medium
	Large
)

// ChunkBit returns the bit width handed to collections.NewIdSchema for
// this preset.
func (d DominionSize) ChunkBit() uint32 {
	switch d {
	case Small:
		return 10 // 1024 slots/chunk
	case Large:
		return 16 // 65536 slots/chunk
	default:
		return 12 // 4096 slots/chunk
	}
}

// IdSchema builds the collections.IdSchema for this preset.
func (d DominionSize) IdSchema() collections.IdSchema {
	return collections.NewIdSchema(d.ChunkBit())
}

// Config gathers the knobs a repository is built from.
type Config struct {
	Size   DominionSize
	Logger *Logging
}

// DefaultConfig returns the Medium preset with a no-op logger.
func DefaultConfig() Config {
	return Config{Size: Medium, Logger: NewNopLogging()}
}
