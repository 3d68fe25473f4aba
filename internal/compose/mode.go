package compose

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedMode is returned for page-size modes other than compact
// and poster.
var ErrUnsupportedMode = errors.New("unsupported page size mode")

// Mode is a page-size profile. Its value is the paper name used in output
// file names.
type Mode string

const (
	// ModeCompact prints one month per A4 landscape page.
	ModeCompact Mode = "A4"
	// ModePoster prints all twelve months on one A0 landscape page.
	ModePoster Mode = "A0"
)

// Modes lists the supported modes in output order.
var Modes = []Mode{ModeCompact, ModePoster}

// ParseMode accepts "A4"/"compact" and "A0"/"poster", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a4", "compact":
		return ModeCompact, nil
	case "a0", "poster":
		return ModePoster, nil
	default:
		return "", fmt.Errorf("%w: %q (want A4/compact or A0/poster)", ErrUnsupportedMode, s)
	}
}

const pointsPerInch = 72

// Profile holds the fixed page geometry of a mode.
type Profile struct {
	Mode Mode
	// Width and Height of the page in points.
	Width, Height float64
	Margin        float64
	// Scale multiplies font sizes; grid topology is unaffected.
	Scale     float64
	WrapWidth int
	// Rows and Cols of months on a page.
	Rows, Cols int
	// WSpace and HSpace separate months, as fractions of a month frame.
	WSpace, HSpace float64
}

// ProfileFor returns the default profile of m.
func ProfileFor(m Mode) (Profile, error) {
	switch m {
	case ModeCompact:
		return Profile{
			Mode:      ModeCompact,
			Width:     11.7 * pointsPerInch,
			Height:    8.3 * pointsPerInch,
			Margin:    36,
			Scale:     1.0,
			WrapWidth: 20,
			Rows:      1,
			Cols:      1,
		}, nil
	case ModePoster:
		return Profile{
			Mode:      ModePoster,
			Width:     60 * pointsPerInch,
			Height:    33.1 * pointsPerInch,
			Margin:    72,
			Scale:     1.3,
			WrapWidth: 24,
			Rows:      3,
			Cols:      4,
			WSpace:    0.05,
			HSpace:    0.2,
		}, nil
	default:
		return Profile{}, fmt.Errorf("%w: %q", ErrUnsupportedMode, string(m))
	}
}
