package chunk

import (
	"github.com/go-gl/mathgl/mgl32"
)

// halfVoxel is the distance from the centre of a voxel to each of its faces. A chunk is one unit wide, so a
// single voxel is 1/Size wide.
const halfVoxel = 1.0 / (Size * 2)

// corners holds the offsets of the eight corners of a voxel from its centre.
//
//	   0--------------1
//	  /|             /|
//	 / |            / |
//	3--+-----------2  |
//	|  |           |  |
//	|  4-----------+--5
//	| /            | /
//	|/             |/
//	7--------------6
var corners = [8]mgl32.Vec3{
	{-halfVoxel, halfVoxel, halfVoxel},
	{halfVoxel, halfVoxel, halfVoxel},
	{halfVoxel, halfVoxel, -halfVoxel},
	{-halfVoxel, halfVoxel, -halfVoxel},
	{-halfVoxel, -halfVoxel, halfVoxel},
	{halfVoxel, -halfVoxel, halfVoxel},
	{halfVoxel, -halfVoxel, -halfVoxel},
	{-halfVoxel, -halfVoxel, -halfVoxel},
}

// face is one of the six faces of a voxel.
type face struct {
	// neighbour is the offset of the voxel sharing the face.
	neighbour [3]int
	// quad holds the corners of the two triangles that make up the face. Every triangle is wound clockwise
	// when seen from outside the voxel, so its right-hand normal points into the voxel.
	quad [6]uint8
}

// faces holds the faces of a voxel in the order they are emitted: +X, -X, +Y, -Y, +Z, -Z.
var faces = [6]face{
	{neighbour: [3]int{1, 0, 0}, quad: [6]uint8{5, 1, 2, 5, 2, 6}},
	{neighbour: [3]int{-1, 0, 0}, quad: [6]uint8{7, 3, 4, 4, 3, 0}},
	{neighbour: [3]int{0, 1, 0}, quad: [6]uint8{2, 1, 0, 3, 2, 0}},
	{neighbour: [3]int{0, -1, 0}, quad: [6]uint8{7, 4, 5, 7, 5, 6}},
	{neighbour: [3]int{0, 0, 1}, quad: [6]uint8{5, 4, 0, 1, 5, 0}},
	{neighbour: [3]int{0, 0, -1}, quad: [6]uint8{6, 2, 3, 7, 6, 3}},
}

// maxVoxelVertices is the amount of vertices a single voxel produces when all of its faces are visible.
const maxVoxelVertices = len(faces) * 6

// Mesher generates the visible faces of every solid voxel in the chunk passed and appends them to into. If
// into is nil, a new Mesh is created. A face is visible if the voxel next to it is air or lies outside of the
// chunk: neighbouring chunks are not taken into account, so faces on the border of a chunk are always
// produced.
//
// Voxels are visited in z, y, x order and their faces in the order +X, -X, +Y, -Y, +Z, -Z, so the same chunk
// always produces the same mesh. Mesher does not lock the chunk: the caller must make sure it is not
// modified during the call. Chunk.Remesh takes care of this.
func Mesher(c *Chunk, into *Mesh) *Mesh {
	if into == nil {
		into = NewMesh()
	}
	for z := uint32(0); z < Size; z++ {
		for y := uint32(0); y < Size; y++ {
			for x := uint32(0); x < Size; x++ {
				v := c.voxels[index(x, y, z)]
				if !v.Solid() {
					continue
				}
				into.Reserve(maxVoxelVertices)

				centre := mgl32.Vec3{
					float32(x+1) / Size,
					float32(y+1) / Size,
					float32(z+1) / Size,
				}
				for _, f := range faces {
					if !c.exposed(x, y, z, f.neighbour) {
						continue
					}
					for _, corner := range f.quad {
						into.Push(centre.Add(corners[corner]), v)
					}
				}
			}
		}
	}
	return into
}

// exposed checks if the voxel at the offset passed from x, y, z is air or outside the chunk.
func (c *Chunk) exposed(x, y, z uint32, offset [3]int) bool {
	nx, ny, nz := int(x)+offset[0], int(y)+offset[1], int(z)+offset[2]
	if nx < 0 || ny < 0 || nz < 0 || nx >= Size || ny >= Size || nz >= Size {
		return true
	}
	return !c.voxels[index(uint32(nx), uint32(ny), uint32(nz))].Solid()
}
