package preview

import (
	"github.com/justtaldevelops/voxelmesh/chunk"
	"github.com/justtaldevelops/voxelmesh/world"
	"github.com/nfnt/resize"
	"image"
)

// renderVolume renders every chunk of a volume to an image.
func renderVolume(scale int, v *world.Volume) map[world.ChunkPos]image.Image {
	rendered := make(map[world.ChunkPos]image.Image)
	for pos, c := range v.Chunks() {
		rendered[pos] = RenderChunk(scale, c)
	}
	return rendered
}

// RenderChunk renders a top-down image of the chunk passed: every pixel has the colour of the highest solid
// voxel in its column. The image is scaled up by scale using nearest neighbour interpolation.
func RenderChunk(scale int, c *chunk.Chunk) image.Image {
	if scale <= 0 {
		scale = 1
	}
	img := image.NewRGBA(image.Rectangle{Max: image.Point{X: chunk.Size, Y: chunk.Size}})
	for x := uint32(0); x < chunk.Size; x++ {
		for z := uint32(0); z < chunk.Size; z++ {
			if _, v, ok := c.HighestVoxel(x, z); ok {
				img.Set(int(x), int(z), Colour(v))
			}
		}
	}
	if scale == 1 {
		return img
	}
	return resize.Resize(uint(scale*chunk.Size), uint(scale*chunk.Size), img, resize.NearestNeighbor)
}
