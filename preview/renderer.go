package preview

import (
	"github.com/justtaldevelops/voxelmesh/world"
	"image"
	"sync"
)

// Renderer keeps a preview image of every chunk in a world.Volume, re-rendering images only when asked to.
type Renderer struct {
	scale int
	vol   *world.Volume

	renderMu      sync.Mutex
	needsRerender bool
	renderCache   map[world.ChunkPos]image.Image
}

// NewRenderer creates a new Renderer for the volume passed and renders all of its chunks.
func NewRenderer(scale int, v *world.Volume) *Renderer {
	return &Renderer{scale: scale, vol: v, renderCache: renderVolume(scale, v)}
}

// Images returns the preview image of every chunk in the volume. If Rerender was called, or chunks were
// added or removed since the last render, all images are rendered again first.
func (r *Renderer) Images() map[world.ChunkPos]image.Image {
	r.renderMu.Lock()
	defer r.renderMu.Unlock()

	if r.needsRerender || r.cacheOutdated() {
		r.renderCache = renderVolume(r.scale, r.vol)
		r.needsRerender = false
	}
	images := make(map[world.ChunkPos]image.Image, len(r.renderCache))
	for pos, img := range r.renderCache {
		images[pos] = img
	}
	return images
}

// cacheOutdated checks if the render cache holds a different set of chunks than the volume. The caller must
// hold renderMu.
func (r *Renderer) cacheOutdated() bool {
	n := 0
	for pos := range r.vol.Chunks() {
		if _, ok := r.renderCache[pos]; !ok {
			return true
		}
		n++
	}
	return n != len(r.renderCache)
}

// SetScale changes the scale images are rendered at. All images are rendered again on the next call to
// Images.
func (r *Renderer) SetScale(scale int) {
	r.renderMu.Lock()
	defer r.renderMu.Unlock()
	if scale <= 0 {
		scale = 1
	}
	if scale != r.scale {
		r.scale = scale
		r.needsRerender = true
	}
}

// Rerender makes the renderer render all chunks again on the next call to Images.
func (r *Renderer) Rerender() {
	r.renderMu.Lock()
	defer r.renderMu.Unlock()
	r.needsRerender = true
}

// RerenderChunk renders the chunk at the given position again. If the chunk no longer exists, its image is
// dropped.
func (r *Renderer) RerenderChunk(pos world.ChunkPos) {
	c, ok := r.vol.Chunk(pos)

	r.renderMu.Lock()
	defer r.renderMu.Unlock()
	if !ok {
		delete(r.renderCache, pos)
		return
	}
	r.renderCache[pos] = RenderChunk(r.scale, c)
}
