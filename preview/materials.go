package preview

import (
	"github.com/justtaldevelops/voxelmesh/chunk"
	"image/color"
)

// materialColours holds the colour of the first few voxel IDs. IDs past the end of the slice get a colour
// derived from the ID itself.
var materialColours = []color.RGBA{
	{},                               // air
	{R: 127, G: 178, B: 56, A: 255},  // grass
	{R: 151, G: 109, B: 77, A: 255},  // dirt
	{R: 112, G: 112, B: 112, A: 255}, // stone
	{R: 247, G: 233, B: 163, A: 255}, // sand
	{R: 64, G: 64, B: 255, A: 255},   // water
	{R: 143, G: 119, B: 72, A: 255},  // wood
	{R: 0, G: 124, B: 0, A: 255},     // leaves
	{R: 255, G: 255, B: 255, A: 255}, // snow
}

// Colour returns the colour a voxel is drawn with in a preview. Air is fully transparent.
func Colour(v chunk.Voxel) color.RGBA {
	if int(v) < len(materialColours) {
		return materialColours[v]
	}
	h := uint32(v) * 0x9e3779b1
	return color.RGBA{R: uint8(h >> 24), G: uint8(h >> 16), B: uint8(h >> 8), A: 255}
}
