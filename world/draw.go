package world

import (
	"context"
	"fmt"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/justtaldevelops/voxelmesh/chunk"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"runtime"
)

// Remesh regenerates the mesh of every dirty chunk in the Volume and returns the amount of chunks meshed.
// Chunks are independent of each other, so up to workers chunks are meshed in parallel. If workers is 0 or
// less, GOMAXPROCS workers are used.
//
// Cancelling ctx stops Remesh from starting on more chunks, but chunks that are being meshed are always
// finished. The error returned is that of ctx in that case.
func (v *Volume) Remesh(ctx context.Context, workers int) (int, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	meshed := atomic.NewInt64(0)

	var g errgroup.Group
	g.SetLimit(workers)
	for _, e := range v.snapshot() {
		if !e.c.Dirty() {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			vertices := e.c.Remesh()
			meshed.Inc()
			v.metrics.observeMesh(vertices)
			return nil
		})
	}
	err := g.Wait()
	if n := meshed.Load(); n > 0 {
		v.mergeDirty.Store(true)
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return int(meshed.Load()), fmt.Errorf("remesh volume: %w", err)
	}
	return int(meshed.Load()), nil
}

// chunkOffset returns the translation of a chunk's mesh within the Volume. Every chunk spans one unit.
func chunkOffset(pos ChunkPos) mgl32.Vec3 {
	return mgl32.Vec3{float32(pos.X()), float32(pos.Y()), float32(pos.Z())}
}

// DrawBatches returns the meshes that should be drawn for the Volume, depending on its DrawStyle. For
// ChunkByChunk, the mesh of every chunk is returned in ascending order of position. For AllAtOnce, a single
// mesh is returned holding the meshes of all chunks, each translated to the position of its chunk. The
// merged mesh is only rebuilt if a chunk was remeshed, added or removed since the last call, including chunks
// remeshed directly through chunk.Chunk.Remesh.
//
// The meshes returned are owned by the Volume and its chunks and must not be modified.
func (v *Volume) DrawBatches() []*chunk.Mesh {
	entries := v.snapshot()
	if v.Style() == ChunkByChunk {
		batches := make([]*chunk.Mesh, 0, len(entries))
		for _, e := range entries {
			batches = append(batches, e.c.Mesh())
		}
		return batches
	}
	return []*chunk.Mesh{v.mergedMesh(entries)}
}

// mergedMesh returns the merged mesh of all entries passed, rebuilding it if needed.
func (v *Volume) mergedMesh(entries []entry) *chunk.Mesh {
	v.mergeMu.Lock()
	defer v.mergeMu.Unlock()

	if !v.mergeDirty.Swap(false) && !v.mergeOutdated(entries) {
		return v.merged
	}
	v.merged.Reset()
	v.mergedGens = v.mergedGens[:0]
	for _, e := range entries {
		v.mergedGens = append(v.mergedGens, e.c.AppendMeshTo(v.merged, chunkOffset(e.pos)))
	}
	return v.merged
}

// mergeOutdated checks if any of the entries passed was remeshed since the merged mesh was built. The caller
// must hold mergeMu.
func (v *Volume) mergeOutdated(entries []entry) bool {
	if len(entries) != len(v.mergedGens) {
		return true
	}
	for i, e := range entries {
		if e.c.Generation() != v.mergedGens[i] {
			return true
		}
	}
	return false
}

// Upload uploads the meshes of the Volume to the chunk.Device passed, following its DrawStyle. Meshes that did
// not change since their last upload are skipped.
func (v *Volume) Upload(d chunk.Device) error {
	entries := v.snapshot()
	if v.Style() == AllAtOnce {
		merged := v.mergedMesh(entries)

		v.mergeMu.Lock()
		defer v.mergeMu.Unlock()
		if err := merged.Upload(d); err != nil {
			return fmt.Errorf("upload merged volume mesh: %w", err)
		}
		return nil
	}
	for _, e := range entries {
		if err := e.c.Upload(d); err != nil {
			return fmt.Errorf("upload chunk %v: %w", e.pos, err)
		}
	}
	return nil
}
