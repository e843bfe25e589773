package main

import (
	"github.com/justtaldevelops/voxelmesh/chunk"
	"github.com/justtaldevelops/voxelmesh/world"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestReadConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	c, err := readConfig(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), c)
	assert.FileExists(t, path)

	again, err := readConfig(path)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestReadConfigDecodesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[Volume]
DrawStyle = "all-at-once"
Bounds = "strict"

[Mesher]
Workers = 3

[Terrain]
ChunksX = 2
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c, err := readConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "all-at-once", c.Volume.DrawStyle)
	assert.Equal(t, "strict", c.Volume.Bounds)
	assert.Equal(t, 3, c.Mesher.Workers)
	assert.Equal(t, uint32(2), c.Terrain.ChunksX)
	assert.Equal(t, uint32(4), c.Terrain.ChunksZ, "missing keys keep their default")

	vol, err := newVolume(logrus.New(), c)
	require.NoError(t, err)
	assert.Equal(t, world.AllAtOnce, vol.Style())

	ch := vol.AddChunk(world.MustPack(0, 0, 0))
	assert.ErrorIs(t, ch.SetVoxel(chunk.Pos{32, 0, 0}, 1), chunk.ErrOutOfRange)
}

func TestNewVolumeRejectsUnknownSettings(t *testing.T) {
	c := defaultConfig()
	c.Volume.Bounds = "loose"
	_, err := newVolume(logrus.New(), c)
	assert.Error(t, err)

	c = defaultConfig()
	c.Volume.DrawStyle = "diagonal"
	_, err = newVolume(logrus.New(), c)
	assert.Error(t, err)
}
