package chunk

// Voxel is the identifier of the material filling one unit cube of a chunk. Every non-air voxel is treated
// as an opaque, axis-aligned cube.
type Voxel uint32

// Air is the empty voxel. Faces bordering air are visible.
const Air Voxel = 0

// Solid checks if the voxel holds any material.
func (v Voxel) Solid() bool {
	return v != Air
}

// Pos holds the position of a voxel inside a chunk. Each component is valid in the range [0, Size).
type Pos [3]uint32

// X returns the X coordinate of the position.
func (p Pos) X() uint32 {
	return p[0]
}

// Y returns the Y coordinate of the position.
func (p Pos) Y() uint32 {
	return p[1]
}

// Z returns the Z coordinate of the position.
func (p Pos) Z() uint32 {
	return p[2]
}

// inBounds checks if every component of the position lies inside a chunk.
func (p Pos) inBounds() bool {
	return p[0] < Size && p[1] < Size && p[2] < Size
}

// clamp returns the position with every out of range component moved to the last valid index.
func (p Pos) clamp() Pos {
	for i, v := range p {
		if v >= Size {
			p[i] = Size - 1
		}
	}
	return p
}
