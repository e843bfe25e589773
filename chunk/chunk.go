package chunk

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
	"sync"
)

const (
	// Size is the length of a chunk along each axis, in voxels.
	Size = 32
	// Len is the total amount of voxels held by a chunk.
	Len = Size * Size * Size
)

// Chunk is a cubic region of Size*Size*Size voxels. It is the unit in which voxels are stored and meshed.
// A Chunk owns the Mesh generated from its voxels, which is regenerated by calling Remesh.
// Chunk is safe for concurrent use.
type Chunk struct {
	mu sync.RWMutex
	// voxels holds every voxel in the chunk, indexed by ((x*Size)+y)*Size+z.
	voxels [Len]Voxel
	// used is the amount of non-air voxels currently in the chunk.
	used int

	dirty *atomic.Bool
	mesh  *Mesh
	// generation is bumped every time the mesh is regenerated.
	generation *atomic.Uint64

	bounds BoundsMode
	log    logrus.FieldLogger
}

// New creates a new chunk filled with air. The chunk is not dirty, as there is nothing to mesh yet.
func New(conf Config) *Chunk {
	return &Chunk{
		dirty:      atomic.NewBool(false),
		mesh:       NewMesh(),
		generation: atomic.NewUint64(0),
		bounds:     conf.Bounds,
		log:        conf.logger(),
	}
}

// NewFilled creates a new chunk with every voxel set to v. If v is solid, the chunk starts out dirty.
func NewFilled(conf Config, v Voxel) *Chunk {
	c := New(conf)
	if v.Solid() {
		c.fill(v)
	}
	return c
}

// index returns the index of a position in the voxels array.
func index(x, y, z uint32) uint32 {
	return ((x*Size)+y)*Size + z
}

// Voxel returns the voxel at the position passed. The position is validated according to the BoundsMode the
// chunk was created with.
func (c *Chunk) Voxel(pos Pos) (Voxel, error) {
	pos, err := c.resolve("get", pos)
	if err != nil {
		return Air, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.voxels[index(pos[0], pos[1], pos[2])], nil
}

// SetVoxel sets the voxel at the position passed to v. If the value stored changes, the chunk is marked
// dirty and needs to be remeshed.
func (c *Chunk) SetVoxel(pos Pos, v Voxel) error {
	pos, err := c.resolve("set", pos)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := index(pos[0], pos[1], pos[2])
	old := c.voxels[i]
	if old == v {
		return nil
	}
	c.voxels[i] = v
	switch {
	case !old.Solid() && v.Solid():
		c.used++
	case old.Solid() && !v.Solid():
		c.used--
	}
	c.dirty.Store(true)
	return nil
}

// Fill sets every voxel in the chunk to v and marks the chunk dirty.
func (c *Chunk) Fill(v Voxel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fill(v)
}

// fill sets every voxel to v. The caller must hold the write lock, or own the chunk exclusively.
func (c *Chunk) fill(v Voxel) {
	for i := range c.voxels {
		c.voxels[i] = v
	}
	c.used = 0
	if v.Solid() {
		c.used = Len
	}
	c.dirty.Store(true)
}

// HighestVoxel returns the highest solid voxel in the column at x, z. If the column holds only air, ok is
// false.
func (c *Chunk) HighestVoxel(x, z uint32) (uint32, Voxel, bool) {
	if x >= Size || z >= Size {
		return 0, Air, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for y := uint32(Size); y > 0; y-- {
		if v := c.voxels[index(x, y-1, z)]; v.Solid() {
			return y - 1, v, true
		}
	}
	return 0, Air, false
}

// Used returns the amount of solid voxels in the chunk.
func (c *Chunk) Used() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.used
}

// Empty checks if the chunk holds only air.
func (c *Chunk) Empty() bool {
	return c.Used() == 0
}

// Dirty checks if the voxels of the chunk changed since the last call to Remesh.
func (c *Chunk) Dirty() bool {
	return c.dirty.Load()
}

// Remesh regenerates the mesh of the chunk from its voxels. The existing mesh storage is reused, so that
// chunks that change frequently don't reallocate on every pass. The chunk is locked for the duration of the
// pass, and is only marked clean once the mesh has been fully written. The amount of vertices in the new mesh
// is returned.
func (c *Chunk) Remesh() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mesh.Reset()
	c.mesh = Mesher(c, c.mesh)
	c.generation.Inc()
	c.dirty.Store(false)
	return c.mesh.Len()
}

// Generation returns the amount of times the chunk was remeshed. Callers that keep a copy of the mesh may
// compare it to the value at the time of copying to find out if the copy is outdated.
func (c *Chunk) Generation() uint64 {
	return c.generation.Load()
}

// Mesh returns the mesh owned by the chunk. The mesh must not be modified while the chunk may be remeshed
// concurrently.
func (c *Chunk) Mesh() *Mesh {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mesh
}

// AppendMeshTo appends the mesh of the chunk to dst, with every position translated by offset. The chunk
// cannot be remeshed while its mesh is being copied. The generation of the mesh copied is returned.
func (c *Chunk) AppendMeshTo(dst *Mesh, offset mgl32.Vec3) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dst.Append(c.mesh, offset)
	return c.generation.Load()
}

// TrimStorage brings the mesh storage down to exactly what is needed, and nothing more. This should only be
// used for chunks that are rarely updated, as the next Remesh has to grow the storage again.
func (c *Chunk) TrimStorage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mesh.ShrinkToFit()
}

// Upload uploads the mesh of the chunk to the Device passed if it changed since the last upload. The chunk
// cannot be remeshed while the upload is in progress.
func (c *Chunk) Upload(d Device) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mesh.Upload(d)
}
