// Package layout computes the geometry of a single day cell.
//
// A cell with n events is split into n equal horizontal bands, one per
// event, in the order the event index returns them. The font size shrinks
// as n grows and every description is wrapped to a fixed character width.
// The result is a plain value; nothing here draws.
//
// All positions are in the units of Geometry, measured from the top-left
// corner of the cell with y growing downwards.
package layout

import (
	"strconv"
	"time"

	"wallcal/internal/grid"
	"wallcal/internal/index"
	"wallcal/internal/model"
)

// Font sizing, in points before scaling. A day with Pivot events uses
// BaseFont; each further event costs Penalty points, down to MinFont.
const (
	BaseFont     = 7.0
	MinFont      = 3.0
	Pivot        = 3
	Penalty      = 0.5
	DayLabelFont = 9.0
)

const (
	// BandAlpha is the opacity of event backgrounds and weekend shading.
	// It keeps the black day number readable on every band color.
	BandAlpha = 0.5

	// DefaultWrapWidth is the description wrap width in characters.
	DefaultWrapWidth = 20

	// LabelInset is the day number offset from the top-left corner, as a
	// fraction of the cell size.
	LabelInset = 0.05
)

// WeekendColor shades weekend cells without events.
const WeekendColor model.Color = "#808080"

// DayLabelColor is the color of the day number.
const DayLabelColor model.Color = "#000000"

// Shade is the background treatment of a cell without events.
type Shade int

const (
	ShadeNone Shade = iota
	ShadeWeekend
)

func (s Shade) String() string {
	switch s {
	case ShadeWeekend:
		return "weekend"
	default:
		return "none"
	}
}

// Geometry describes the cell being laid out.
type Geometry struct {
	Width, Height float64
	// Scale multiplies every font size.
	Scale float64
	// WrapWidth is the description wrap width in characters. Zero means
	// DefaultWrapWidth.
	WrapWidth int
}

func (g Geometry) scale() float64 {
	if g.Scale <= 0 {
		return 1
	}
	return g.Scale
}

func (g Geometry) wrapWidth() int {
	if g.WrapWidth <= 0 {
		return DefaultWrapWidth
	}
	return g.WrapWidth
}

// Band is the slice of a cell given to one event.
type Band struct {
	Text       string
	Lines      []string
	Category   model.Category
	Background model.Color
	TextColor  model.Color
	Top        float64
	Height     float64
	// CenterX/CenterY anchor the wrapped lines, centered both ways.
	CenterX float64
	CenterY float64
}

// Label is the day number drawn in the top-left corner.
type Label struct {
	Text  string
	X, Y  float64
	Size  float64
	Bold  bool
	Color model.Color
}

// Cell is the finished layout of one day.
type Cell struct {
	Date     time.Time
	Column   int
	Width    float64
	Height   float64
	Shade    Shade
	Alpha    float64
	Bands    []Band
	FontSize float64
	DayLabel Label
}

// LayoutDay lays out the cell of date, drawn in week column col. It reads
// events from idx and never fails; an empty or nil index yields a plain
// (or weekend-shaded) numbered cell.
func LayoutDay(date time.Time, col int, idx *index.Index, g Geometry) Cell {
	var events []model.Event
	if idx != nil {
		events = idx.ForDay(index.DateOf(date))
	}
	return layoutEvents(date, col, events, g)
}

func layoutEvents(date time.Time, col int, events []model.Event, g Geometry) Cell {
	s := g.scale()
	c := Cell{
		Date:   date,
		Column: col,
		Width:  g.Width,
		Height: g.Height,
		Alpha:  BandAlpha,
		DayLabel: Label{
			Text:  strconv.Itoa(date.Day()),
			X:     LabelInset * g.Width,
			Y:     LabelInset * g.Height,
			Size:  DayLabelFont * s,
			Bold:  true,
			Color: DayLabelColor,
		},
	}

	n := len(events)
	if n == 0 {
		if grid.Weekend(col) {
			c.Shade = ShadeWeekend
		}
		return c
	}

	c.FontSize = FontSize(n, s)
	h := g.Height / float64(n)
	// Centers the band group; zero while the bands split the full height.
	offset := (g.Height - float64(n)*h) / 2
	width := g.wrapWidth()

	c.Bands = make([]Band, n)
	for i, ev := range events {
		top := offset + float64(i)*h
		c.Bands[i] = Band{
			Text:       ev.Description,
			Lines:      Wrap(ev.Description, width),
			Category:   ev.Category,
			Background: ev.Background,
			TextColor:  ev.Text,
			Top:        top,
			Height:     h,
			CenterX:    g.Width / 2,
			CenterY:    top + h/2,
		}
	}
	return c
}

// FontSize is the event text size for a cell holding n events.
// It does not increase with n and never drops below MinFont*scale.
func FontSize(n int, scale float64) float64 {
	return max(MinFont*scale, BaseFont*scale-float64(n-Pivot)*Penalty)
}
