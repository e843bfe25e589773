package chunk

import (
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestNewChunkIsEmptyAndClean(t *testing.T) {
	c := New(Config{})

	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.Used())
	assert.False(t, c.Dirty(), "a chunk without voxels has nothing to mesh")

	v, err := c.Voxel(Pos{31, 0, 17})
	require.NoError(t, err)
	assert.Equal(t, Air, v)
}

func TestNewFilled(t *testing.T) {
	c := NewFilled(Config{}, 4)

	assert.Equal(t, Len, c.Used())
	assert.True(t, c.Dirty())
	for _, pos := range []Pos{{0, 0, 0}, {31, 31, 31}, {5, 20, 9}} {
		v, err := c.Voxel(pos)
		require.NoError(t, err)
		assert.Equal(t, Voxel(4), v, "voxel at %v", pos)
	}

	air := NewFilled(Config{}, Air)
	assert.True(t, air.Empty())
	assert.False(t, air.Dirty())
}

func TestSetVoxelTracksUsedAndDirty(t *testing.T) {
	c := New(Config{})

	require.NoError(t, c.SetVoxel(Pos{1, 2, 3}, 7))
	assert.Equal(t, 1, c.Used())
	assert.True(t, c.Dirty())

	v, err := c.Voxel(Pos{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, Voxel(7), v)

	// Replacing one solid voxel with another doesn't change the count.
	require.NoError(t, c.SetVoxel(Pos{1, 2, 3}, 9))
	assert.Equal(t, 1, c.Used())

	require.NoError(t, c.SetVoxel(Pos{1, 2, 3}, Air))
	assert.Equal(t, 0, c.Used())
	assert.True(t, c.Empty())
}

func TestSetSameValueKeepsChunkClean(t *testing.T) {
	c := New(Config{})
	require.NoError(t, c.SetVoxel(Pos{0, 0, 0}, 1))
	c.Remesh()
	require.False(t, c.Dirty())

	require.NoError(t, c.SetVoxel(Pos{0, 0, 0}, 1))
	assert.False(t, c.Dirty())

	require.NoError(t, c.SetVoxel(Pos{0, 0, 0}, 2))
	assert.True(t, c.Dirty())
}

func TestBoundsClampLogsDiagnostic(t *testing.T) {
	log, hook := test.NewNullLogger()
	c := New(Config{Bounds: BoundsClamp, Log: log})

	require.NoError(t, c.SetVoxel(Pos{40, 3, 31}, 5))
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, Pos{31, 3, 31}, hook.LastEntry().Data["clamped"])

	v, err := c.Voxel(Pos{31, 3, 31})
	require.NoError(t, err)
	assert.Equal(t, Voxel(5), v)

	v, err = c.Voxel(Pos{31, 3, 100})
	require.NoError(t, err)
	assert.Equal(t, Voxel(5), v)
	assert.Len(t, hook.AllEntries(), 2)
}

func TestBoundsStrictRejects(t *testing.T) {
	c := New(Config{Bounds: BoundsStrict})

	err := c.SetVoxel(Pos{0, 32, 0}, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.True(t, c.Empty())
	assert.False(t, c.Dirty())

	_, err = c.Voxel(Pos{32, 0, 0})
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.NoError(t, c.SetVoxel(Pos{31, 31, 31}, 1))
}

func TestBoundsUncheckedInRange(t *testing.T) {
	c := New(Config{Bounds: BoundsUnchecked})
	require.NoError(t, c.SetVoxel(Pos{31, 31, 31}, 3))

	v, err := c.Voxel(Pos{31, 31, 31})
	require.NoError(t, err)
	assert.Equal(t, Voxel(3), v)
}

func TestParseBoundsMode(t *testing.T) {
	for in, want := range map[string]BoundsMode{
		"":          BoundsClamp,
		"checked":   BoundsClamp,
		"Clamp":     BoundsClamp,
		"strict":    BoundsStrict,
		"unchecked": BoundsUnchecked,
	} {
		got, err := ParseBoundsMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseBoundsMode("sometimes")
	assert.Error(t, err)

	for _, m := range []BoundsMode{BoundsClamp, BoundsStrict, BoundsUnchecked} {
		got, err := ParseBoundsMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestHighestVoxel(t *testing.T) {
	c := New(Config{})
	_, _, ok := c.HighestVoxel(4, 4)
	assert.False(t, ok)

	require.NoError(t, c.SetVoxel(Pos{4, 2, 4}, 1))
	require.NoError(t, c.SetVoxel(Pos{4, 19, 4}, 6))

	y, v, ok := c.HighestVoxel(4, 4)
	require.True(t, ok)
	assert.Equal(t, uint32(19), y)
	assert.Equal(t, Voxel(6), v)

	_, _, ok = c.HighestVoxel(32, 0)
	assert.False(t, ok)
}

func TestFill(t *testing.T) {
	c := New(Config{})
	c.Fill(2)
	assert.Equal(t, Len, c.Used())
	assert.True(t, c.Dirty())

	c.Remesh()
	c.Fill(Air)
	assert.True(t, c.Empty())
	assert.True(t, c.Dirty())
}

func TestRemeshClearsDirtyAndReusesStorage(t *testing.T) {
	c := New(Config{})
	require.NoError(t, c.SetVoxel(Pos{0, 0, 0}, 1))
	require.NoError(t, c.SetVoxel(Pos{2, 0, 0}, 1))
	assert.Equal(t, uint64(0), c.Generation())
	assert.Equal(t, 72, c.Remesh())
	assert.Equal(t, uint64(1), c.Generation())

	assert.False(t, c.Dirty())
	m := c.Mesh()
	assert.Equal(t, 72, m.Len())
	capacity := m.Cap()

	require.NoError(t, c.SetVoxel(Pos{2, 0, 0}, Air))
	assert.True(t, c.Dirty())
	c.Remesh()

	assert.Equal(t, 36, c.Mesh().Len())
	assert.Equal(t, capacity, c.Mesh().Cap(), "remeshing must not release the mesh storage")

	c.TrimStorage()
	assert.Equal(t, 36, c.Mesh().Cap())
	assert.Equal(t, 36, c.Mesh().Len())
}
