package world

import (
	"errors"
	"fmt"
	"github.com/google/btree"
	"github.com/justtaldevelops/voxelmesh/chunk"
	"go.uber.org/atomic"
	"iter"
	"strings"
	"sync"
)

// ErrMissingChunk is returned when writing to a chunk that was never added to a Volume.
var ErrMissingChunk = errors.New("no chunk at position")

// DrawStyle decides how the chunks of a Volume are handed to a graphics backend. It does not affect how
// chunks are stored.
type DrawStyle uint8

const (
	// ChunkByChunk draws the mesh of every chunk separately.
	ChunkByChunk DrawStyle = iota
	// AllAtOnce merges the meshes of all chunks into one mesh, drawn at once.
	AllAtOnce
)

// String ...
func (s DrawStyle) String() string {
	switch s {
	case ChunkByChunk:
		return "chunk-by-chunk"
	case AllAtOnce:
		return "all-at-once"
	}
	return fmt.Sprintf("DrawStyle(%d)", uint8(s))
}

// ParseDrawStyle parses a draw style by the name returned from DrawStyle.String.
func ParseDrawStyle(s string) (DrawStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "chunk-by-chunk", "chunkbychunk":
		return ChunkByChunk, nil
	case "all-at-once", "allatonce":
		return AllAtOnce, nil
	}
	return 0, fmt.Errorf("unknown draw style %q", s)
}

// entry is a chunk stored in a Volume, ordered by its position.
type entry struct {
	pos ChunkPos
	c   *chunk.Chunk
}

// lessEntry orders entries by the numeric value of their position.
func lessEntry(a, b entry) bool {
	return a.pos < b.pos
}

// Volume is a sparse collection of chunks, keyed by their ChunkPos. Chunks are kept ordered by position, so
// iterating a Volume always visits chunks in the same order.
// Volume is safe for concurrent use.
type Volume struct {
	conf    chunk.Config
	metrics *Metrics

	mu     sync.RWMutex
	style  DrawStyle
	chunks *btree.BTreeG[entry]

	// mergeDirty is set whenever the merged mesh used for AllAtOnce no longer matches the chunk meshes.
	mergeDirty *atomic.Bool
	mergeMu    sync.Mutex
	merged     *chunk.Mesh
	// mergedGens holds the generation of every chunk mesh in merged, in the order they were appended.
	mergedGens []uint64
}

// New creates a new, empty Volume. Chunks added to the Volume are created with the chunk.Config passed.
func New(style DrawStyle, conf chunk.Config) *Volume {
	return &Volume{
		conf:       conf,
		style:      style,
		chunks:     btree.NewG[entry](8, lessEntry),
		mergeDirty: atomic.NewBool(true),
		merged:     chunk.NewMesh(),
	}
}

// UseMetrics makes the Volume report to the Metrics passed. Passing nil disables reporting. UseMetrics must
// be called before the Volume is remeshed concurrently.
func (v *Volume) UseMetrics(m *Metrics) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.metrics = m
	m.setChunks(v.chunks.Len())
}

// Style returns the DrawStyle of the Volume.
func (v *Volume) Style() DrawStyle {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.style
}

// SetStyle changes the DrawStyle of the Volume.
func (v *Volume) SetStyle(style DrawStyle) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.style != style {
		v.style = style
		v.mergeDirty.Store(true)
	}
}

// AddChunk adds a new, empty chunk at the position passed and returns it. If a chunk already exists at that
// position, it is left untouched and returned instead.
func (v *Volume) AddChunk(pos ChunkPos) *chunk.Chunk {
	v.mu.Lock()
	defer v.mu.Unlock()

	if e, ok := v.chunks.Get(entry{pos: pos}); ok {
		return e.c
	}
	c := chunk.New(v.conf)
	v.chunks.ReplaceOrInsert(entry{pos: pos, c: c})
	v.mergeDirty.Store(true)
	v.metrics.setChunks(v.chunks.Len())
	return c
}

// RemoveChunk removes the chunk at the position passed. It returns false if there was no chunk.
func (v *Volume) RemoveChunk(pos ChunkPos) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.chunks.Delete(entry{pos: pos}); !ok {
		return false
	}
	v.mergeDirty.Store(true)
	v.metrics.setChunks(v.chunks.Len())
	return true
}

// Chunk returns the chunk at the position passed, if one was added.
func (v *Volume) Chunk(pos ChunkPos) (*chunk.Chunk, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	e, ok := v.chunks.Get(entry{pos: pos})
	return e.c, ok
}

// Voxel returns the voxel at the local position in the chunk at pos. If there is no chunk at pos, chunk.Air
// is returned.
func (v *Volume) Voxel(pos ChunkPos, local chunk.Pos) (chunk.Voxel, error) {
	c, ok := v.Chunk(pos)
	if !ok {
		return chunk.Air, nil
	}
	return c.Voxel(local)
}

// SetVoxel sets the voxel at the local position in the chunk at pos. ErrMissingChunk is returned if there is
// no chunk at pos.
func (v *Volume) SetVoxel(pos ChunkPos, local chunk.Pos, vox chunk.Voxel) error {
	c, ok := v.Chunk(pos)
	if !ok {
		return fmt.Errorf("set voxel in chunk %v: %w", pos, ErrMissingChunk)
	}
	return c.SetVoxel(local, vox)
}

// Len returns the amount of chunks in the Volume.
func (v *Volume) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.chunks.Len()
}

// Chunks returns an iterator over all chunks in the Volume in ascending order of their position. The Volume is
// read locked while iterating, so chunks must not be added or removed from within the loop.
func (v *Volume) Chunks() iter.Seq2[ChunkPos, *chunk.Chunk] {
	return func(yield func(ChunkPos, *chunk.Chunk) bool) {
		v.mu.RLock()
		defer v.mu.RUnlock()
		v.chunks.Ascend(func(e entry) bool {
			return yield(e.pos, e.c)
		})
	}
}

// snapshot returns all entries of the Volume, so that they may be processed without holding the lock.
func (v *Volume) snapshot() []entry {
	v.mu.RLock()
	defer v.mu.RUnlock()
	entries := make([]entry, 0, v.chunks.Len())
	v.chunks.Ascend(func(e entry) bool {
		entries = append(entries, e)
		return true
	})
	return entries
}
