package gen

import (
	"context"
	"github.com/justtaldevelops/voxelmesh/chunk"
	"github.com/justtaldevelops/voxelmesh/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestTerrainFill(t *testing.T) {
	v := world.New(world.ChunkByChunk, chunk.Config{})
	terrain := DefaultTerrain(42)
	require.NoError(t, terrain.Fill(v, 2, 1, 2))
	assert.Equal(t, 4, v.Len())

	for pos, c := range v.Chunks() {
		require.False(t, c.Empty(), "chunk %v", pos)
		for x := uint32(0); x < chunk.Size; x++ {
			for z := uint32(0); z < chunk.Size; z++ {
				y, top, ok := c.HighestVoxel(x, z)
				require.True(t, ok)
				assert.Equal(t, terrain.Surface, top, "column %d, %d of chunk %v", x, z, pos)
				if y > 0 {
					below, err := c.Voxel(chunk.Pos{x, y - 1, z})
					require.NoError(t, err)
					assert.Equal(t, terrain.Filler, below)
				}
			}
		}
	}
}

func TestTerrainDeterministic(t *testing.T) {
	a := world.New(world.ChunkByChunk, chunk.Config{})
	b := world.New(world.ChunkByChunk, chunk.Config{})
	require.NoError(t, DefaultTerrain(7).Fill(a, 1, 1, 1))
	require.NoError(t, DefaultTerrain(7).Fill(b, 1, 1, 1))

	_, err := a.Remesh(context.Background(), 1)
	require.NoError(t, err)
	_, err = b.Remesh(context.Background(), 1)
	require.NoError(t, err)

	pos := world.MustPack(0, 0, 0)
	ca, _ := a.Chunk(pos)
	cb, _ := b.Chunk(pos)
	assert.Equal(t, ca.Used(), cb.Used())
	assert.Equal(t, ca.Mesh().Positions(), cb.Mesh().Positions())
	assert.Equal(t, ca.Mesh().Tags(), cb.Mesh().Tags())
}

func TestTerrainFillOutOfRange(t *testing.T) {
	v := world.New(world.ChunkByChunk, chunk.Config{})
	err := DefaultTerrain(1).Fill(v, 33, 1, 1)
	assert.ErrorIs(t, err, world.ErrOutOfRange)
}
