// Package gen fills volumes with generated terrain, so that there is something to mesh.
package gen

import (
	"fmt"
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/justtaldevelops/voxelmesh/chunk"
	"github.com/justtaldevelops/voxelmesh/world"
	"math"
)

// Terrain generates rolling hills from a Perlin noise height map.
type Terrain struct {
	// Seed is the seed of the noise.
	Seed int64
	// BaseHeight is the height, in voxels, the terrain varies around.
	BaseHeight float64
	// Amplitude is the largest distance, in voxels, the terrain moves away from BaseHeight.
	Amplitude float64
	// Scale is the width, in voxels, of a single hill.
	Scale float64
	// Surface is the voxel placed on top of every column. Filler is placed below it.
	Surface, Filler chunk.Voxel
}

// DefaultTerrain returns a Terrain with settings that produce gentle hills in a volume one chunk high.
func DefaultTerrain(seed int64) Terrain {
	return Terrain{
		Seed:       seed,
		BaseHeight: 16,
		Amplitude:  8,
		Scale:      48,
		Surface:    1,
		Filler:     2,
	}
}

// Fill adds every chunk from (0, 0, 0) up to, but not including, (cx, cy, cz) to the Volume passed and fills
// them with terrain. Chunks that already exist are overwritten.
func (t Terrain) Fill(v *world.Volume, cx, cy, cz uint32) error {
	noise := perlin.NewPerlin(2, 2, 3, t.Seed)
	scale := t.Scale
	if scale <= 0 {
		scale = 1
	}

	for x := uint32(0); x < cx; x++ {
		for z := uint32(0); z < cz; z++ {
			heights := t.heights(noise, x, z, scale)
			for y := uint32(0); y < cy; y++ {
				pos, err := world.Pack(x, y, z)
				if err != nil {
					return fmt.Errorf("fill terrain: %w", err)
				}
				if err := t.fillChunk(v.AddChunk(pos), &heights, y); err != nil {
					return fmt.Errorf("fill terrain chunk %v: %w", pos, err)
				}
			}
		}
	}
	return nil
}

// heights returns the height of every column in the chunk column at x, z.
func (t Terrain) heights(noise *perlin.Perlin, x, z uint32, scale float64) [chunk.Size][chunk.Size]int {
	var heights [chunk.Size][chunk.Size]int
	origin := mgl64.Vec2{float64(x * chunk.Size), float64(z * chunk.Size)}
	for lx := 0; lx < chunk.Size; lx++ {
		for lz := 0; lz < chunk.Size; lz++ {
			p := origin.Add(mgl64.Vec2{float64(lx), float64(lz)}).Mul(1 / scale)
			heights[lx][lz] = int(math.Round(t.BaseHeight + t.Amplitude*noise.Noise2D(p.X(), p.Y())))
		}
	}
	return heights
}

// fillChunk fills the chunk at height y of a chunk column with the heights passed.
func (t Terrain) fillChunk(c *chunk.Chunk, heights *[chunk.Size][chunk.Size]int, y uint32) error {
	base := int(y * chunk.Size)
	for lx := uint32(0); lx < chunk.Size; lx++ {
		for lz := uint32(0); lz < chunk.Size; lz++ {
			h := heights[lx][lz]
			for ly := uint32(0); ly < chunk.Size; ly++ {
				v := chunk.Air
				switch wy := base + int(ly); {
				case wy == h:
					v = t.Surface
				case wy < h:
					v = t.Filler
				}
				if err := c.SetVoxel(chunk.Pos{lx, ly, lz}, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
