package chunk

import (
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"io"
	"strings"
)

// ErrOutOfRange is returned when a voxel position lies outside of the chunk in BoundsStrict mode.
var ErrOutOfRange = errors.New("position out of range")

// BoundsMode controls how a Chunk treats positions that lie outside of it.
type BoundsMode uint8

const (
	// BoundsClamp moves every out of range component to the last valid index and logs a warning.
	BoundsClamp BoundsMode = iota
	// BoundsStrict rejects out of range positions with ErrOutOfRange.
	BoundsStrict
	// BoundsUnchecked skips validation entirely. Passing an out of range position in this mode is a
	// programming error: the access panics or hits a different voxel than intended.
	BoundsUnchecked
)

// String ...
func (m BoundsMode) String() string {
	switch m {
	case BoundsClamp:
		return "clamp"
	case BoundsStrict:
		return "strict"
	case BoundsUnchecked:
		return "unchecked"
	}
	return fmt.Sprintf("BoundsMode(%d)", uint8(m))
}

// ParseBoundsMode parses a bounds mode by the name returned from BoundsMode.String. "checked" is accepted as
// an alias of "clamp".
func ParseBoundsMode(s string) (BoundsMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamp", "checked":
		return BoundsClamp, nil
	case "strict":
		return BoundsStrict, nil
	case "unchecked":
		return BoundsUnchecked, nil
	}
	return 0, fmt.Errorf("unknown bounds mode %q", s)
}

// Config holds the settings a Chunk is created with.
type Config struct {
	// Bounds is the policy applied to positions passed to Voxel and SetVoxel.
	Bounds BoundsMode
	// Log receives diagnostics, such as clamped positions. If nil, diagnostics are discarded.
	Log logrus.FieldLogger
}

// logger returns the logger of the config, or a logger that discards everything if none was set.
func (conf Config) logger() logrus.FieldLogger {
	if conf.Log != nil {
		return conf.Log
	}
	l := logrus.New()
	l.Out = io.Discard
	return l
}

// resolve applies the bounds mode of the chunk to the position passed. It returns the position that should
// be accessed.
func (c *Chunk) resolve(op string, pos Pos) (Pos, error) {
	switch c.bounds {
	case BoundsUnchecked:
		return pos, nil
	case BoundsStrict:
		if !pos.inBounds() {
			return pos, fmt.Errorf("%v %v: %w", op, pos, ErrOutOfRange)
		}
		return pos, nil
	}
	if pos.inBounds() {
		return pos, nil
	}
	clamped := pos.clamp()
	c.log.WithFields(logrus.Fields{
		"op":      op,
		"pos":     pos,
		"clamped": clamped,
	}).Warn("chunk: voxel position out of range, clamping")
	return clamped, nil
}
