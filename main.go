package main

import (
	"context"
	"fmt"
	"github.com/justtaldevelops/voxelmesh/chunk"
	"github.com/justtaldevelops/voxelmesh/gen"
	"github.com/justtaldevelops/voxelmesh/preview"
	"github.com/justtaldevelops/voxelmesh/world"
	"github.com/kr/pretty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// main generates a volume of terrain, meshes it and reports what would be handed to a graphics backend.
func main() {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}
	log.Level = logrus.InfoLevel

	conf, err := readConfig("config.toml")
	if err != nil {
		log.Fatal(err)
	}
	if lvl, err := logrus.ParseLevel(conf.Log.Level); err == nil {
		log.Level = lvl
	} else {
		log.Warnf("unknown log level %q, using %v", conf.Log.Level, log.Level)
	}
	log.Debugf("config: %# v", pretty.Formatter(conf))

	vol, err := newVolume(log, conf)
	if err != nil {
		log.Fatal(err)
	}
	reg := prometheus.NewRegistry()
	vol.UseMetrics(world.NewMetrics(reg))

	terrain := gen.Terrain{
		Seed:       conf.Terrain.Seed,
		BaseHeight: conf.Terrain.BaseHeight,
		Amplitude:  conf.Terrain.Amplitude,
		Scale:      conf.Terrain.Scale,
		Surface:    chunk.Voxel(conf.Terrain.Surface),
		Filler:     chunk.Voxel(conf.Terrain.Filler),
	}
	start := time.Now()
	if err := terrain.Fill(vol, conf.Terrain.ChunksX, conf.Terrain.ChunksY, conf.Terrain.ChunksZ); err != nil {
		log.Fatal(err)
	}
	log.Infof("generated %d chunks in %v", vol.Len(), time.Since(start))

	start = time.Now()
	n, err := vol.Remesh(context.Background(), conf.Mesher.Workers)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("meshed %d chunks in %v", n, time.Since(start))

	for pos, c := range vol.Chunks() {
		log.WithFields(logrus.Fields{
			"chunk":    pos,
			"voxels":   c.Used(),
			"vertices": c.Mesh().Len(),
		}).Debug("chunk meshed")
	}
	batches := vol.DrawBatches()
	vertices := 0
	for _, m := range batches {
		vertices += m.Len()
	}
	log.Infof("draw style %v: %d draw calls, %d vertices (%d quads)", vol.Style(), len(batches), vertices, vertices/6)

	logMetrics(log, reg)

	if conf.Preview.OutputDirectory != "" {
		if err := writePreviews(conf.Preview.OutputDirectory, preview.NewRenderer(conf.Preview.Scale, vol)); err != nil {
			log.Errorf("error writing previews: %v", err)
		} else {
			log.Infof("wrote chunk previews to %s", conf.Preview.OutputDirectory)
		}
	}
}

// newVolume creates an empty volume following the configuration passed.
func newVolume(log *logrus.Logger, conf config) (*world.Volume, error) {
	style, err := world.ParseDrawStyle(conf.Volume.DrawStyle)
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	bounds, err := chunk.ParseBoundsMode(conf.Volume.Bounds)
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return world.New(style, chunk.Config{Bounds: bounds, Log: log}), nil
}

// logMetrics logs the current value of every counter and gauge in the registry passed.
func logMetrics(log *logrus.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.Errorf("error gathering metrics: %v", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				log.Infof("%s = %v", mf.GetName(), m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				log.Infof("%s = %v", mf.GetName(), m.GetGauge().GetValue())
			}
		}
	}
}

// writePreviews writes the preview image of every chunk to a PNG file in dir.
func writePreviews(dir string, r *preview.Renderer) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for pos, img := range r.Images() {
		x, y, z := pos.Unpack()
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("chunk_%d_%d_%d.png", x, y, z)))
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return fmt.Errorf("error encoding preview of chunk %v: %w", pos, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
