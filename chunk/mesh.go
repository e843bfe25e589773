package chunk

import (
	"errors"
	"fmt"
	"github.com/go-gl/mathgl/mgl32"
	"slices"
)

// ErrBufferNotUploaded is returned by Mesh.Handles if the mesh was never uploaded to a Device.
var ErrBufferNotUploaded = errors.New("mesh buffer not uploaded")

// Handles holds the names of the device side buffers a mesh was uploaded to. They are owned by the Device
// that returned them.
type Handles struct {
	Positions uint32
	Tags      uint32
}

// Device is implemented by graphics backends that copy mesh data into device memory. Upload must copy the
// slices passed before returning: they are only valid for the duration of the call.
type Device interface {
	Upload(positions []mgl32.Vec3, tags []Voxel) (Handles, error)
}

// Mesh holds the geometry generated for a chunk. Every vertex has a position and the voxel it was generated
// for, stored in two parallel slices of equal length. Every three vertices form one triangle.
//
// A Mesh tracks whether its content changed since it was last uploaded to a Device. Mesh is not safe for
// concurrent use: the Chunk that owns it guards it.
type Mesh struct {
	positions []mgl32.Vec3
	tags      []Voxel

	dirty    bool
	uploaded bool
	handles  Handles
}

// NewMesh returns a new, empty mesh. The mesh starts out dirty, as it was never uploaded.
func NewMesh() *Mesh {
	return &Mesh{dirty: true}
}

// Push adds one vertex to the mesh and marks it dirty.
func (m *Mesh) Push(pos mgl32.Vec3, tag Voxel) {
	m.dirty = true
	m.positions = append(m.positions, pos)
	m.tags = append(m.tags, tag)
}

// Append adds every vertex of other to the mesh, with its position translated by offset.
func (m *Mesh) Append(other *Mesh, offset mgl32.Vec3) {
	m.Reserve(other.Len())
	for _, pos := range other.positions {
		m.positions = append(m.positions, pos.Add(offset))
	}
	m.tags = append(m.tags, other.tags...)
	m.dirty = true
}

// Reserve makes sure at least n more vertices can be pushed without the mesh growing its storage.
func (m *Mesh) Reserve(n int) {
	m.positions = slices.Grow(m.positions, n)
	m.tags = slices.Grow(m.tags, n)
}

// ShrinkToFit releases all storage of the mesh beyond its current length.
func (m *Mesh) ShrinkToFit() {
	m.positions = shrink(m.positions)
	m.tags = shrink(m.tags)
}

// shrink returns a copy of s with a capacity equal to its length. s is returned as is if it has no spare
// capacity.
func shrink[T any](s []T) []T {
	if cap(s) == len(s) {
		return s
	}
	trimmed := make([]T, len(s))
	copy(trimmed, s)
	return trimmed
}

// Reset removes all vertices from the mesh while keeping its storage, and marks it dirty.
func (m *Mesh) Reset() {
	m.positions = m.positions[:0]
	m.tags = m.tags[:0]
	m.dirty = true
}

// MarkDirty marks the mesh as changed, so that the next Upload copies it again.
func (m *Mesh) MarkDirty() {
	m.dirty = true
}

// Dirty checks if the mesh changed since it was last uploaded.
func (m *Mesh) Dirty() bool {
	return m.dirty
}

// Len returns the amount of vertices in the mesh.
func (m *Mesh) Len() int {
	return len(m.positions)
}

// Cap returns the amount of vertices the mesh can hold without growing its storage.
func (m *Mesh) Cap() int {
	return min(cap(m.positions), cap(m.tags))
}

// Positions returns the positions of all vertices in the mesh. The slice must not be modified.
func (m *Mesh) Positions() []mgl32.Vec3 {
	return m.positions
}

// Tags returns the voxel of every vertex in the mesh. The slice must not be modified.
func (m *Mesh) Tags() []Voxel {
	return m.tags
}

// Upload copies the mesh to the Device passed if it is dirty or was never uploaded. After a successful upload
// the mesh is clean until it is changed again.
func (m *Mesh) Upload(d Device) error {
	if m.uploaded && !m.dirty {
		return nil
	}
	h, err := d.Upload(m.positions, m.tags)
	if err != nil {
		return fmt.Errorf("upload mesh: %w", err)
	}
	m.handles, m.uploaded, m.dirty = h, true, false
	return nil
}

// Handles returns the device buffers the mesh was last uploaded to. If the mesh was never uploaded,
// ErrBufferNotUploaded is returned. The buffers may hold stale data if the mesh is dirty.
func (m *Mesh) Handles() (Handles, error) {
	if !m.uploaded {
		return Handles{}, ErrBufferNotUploaded
	}
	return m.handles, nil
}
