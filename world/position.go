package world

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a chunk coordinate does not fit in a ChunkPos.
var ErrOutOfRange = errors.New("chunk coordinate out of range")

const (
	// MaxChunkCoord is the largest value a single axis of a ChunkPos can hold.
	MaxChunkCoord = 1<<coordBits - 1

	coordBits = 5
	coordMask = MaxChunkCoord
)

// ChunkPos holds the position of a chunk in a Volume, packed into a single integer as (x << 10) | (y << 5) | z.
// Chunks do not themselves keep track of their position. Every axis is limited to the range [0, 31], which
// caps a Volume at 32*32*32 chunks. In return, ChunkPos values order by x, then y, then z when compared
// numerically, which is the order a Volume iterates its chunks in.
type ChunkPos uint16

// Pack packs the chunk coordinates passed into a ChunkPos. If any of the coordinates is larger than
// MaxChunkCoord, ErrOutOfRange is returned.
func Pack(x, y, z uint32) (ChunkPos, error) {
	if x > MaxChunkCoord || y > MaxChunkCoord || z > MaxChunkCoord {
		return 0, fmt.Errorf("pack (%d, %d, %d): %w", x, y, z, ErrOutOfRange)
	}
	return ChunkPos(x<<(2*coordBits) | y<<coordBits | z), nil
}

// MustPack packs the chunk coordinates passed into a ChunkPos. It panics if any of them is out of range.
func MustPack(x, y, z uint32) ChunkPos {
	pos, err := Pack(x, y, z)
	if err != nil {
		panic(err)
	}
	return pos
}

// Unpack returns the chunk coordinates held by the ChunkPos.
func (p ChunkPos) Unpack() (x, y, z uint32) {
	return p.X(), p.Y(), p.Z()
}

// X returns the X coordinate of the chunk position.
func (p ChunkPos) X() uint32 {
	return uint32(p>>(2*coordBits)) & coordMask
}

// Y returns the Y coordinate of the chunk position.
func (p ChunkPos) Y() uint32 {
	return uint32(p>>coordBits) & coordMask
}

// Z returns the Z coordinate of the chunk position.
func (p ChunkPos) Z() uint32 {
	return uint32(p) & coordMask
}

// String ...
func (p ChunkPos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X(), p.Y(), p.Z())
}
