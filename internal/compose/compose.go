// Package compose arranges month grids on pages.
//
// Compact mode yields twelve pages with one month each; poster mode yields
// a single page holding a 3×4 grid of months. Cell contents come from the
// layout package; the composer adds titles, weekday headers and grid lines.
package compose

import (
	"fmt"

	"wallcal/internal/grid"
	"wallcal/internal/index"
	"wallcal/internal/layout"
	"wallcal/internal/model"
)

// Weekdays is the fixed header row, Monday first.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Base font sizes before profile scaling.
const (
	TitleFont  = 20.0
	HeaderFont = 14.0
)

// Month frames reserve this share of their height for the title.
const titleShare = 0.12

// Grid area rows: the weekday header plus the longest possible month.
const frameRows = 1 + 6

// Style is the rendering configuration passed down to every page.
type Style struct {
	FontFamily    string
	TitleColor    model.Color
	HeaderColor   model.Color
	WeekendHeader model.Color
	WeekendShade  model.Color
	GridColor     model.Color
	GridLineWidth float64
	BandAlpha     float64
}

// DefaultStyle matches the printed calendar: black text, gray weekend
// headers and thin gray grid lines.
func DefaultStyle() Style {
	return Style{
		FontFamily:    "Times",
		TitleColor:    "#000000",
		HeaderColor:   "#000000",
		WeekendHeader: "#808080",
		WeekendShade:  layout.WeekendColor,
		GridColor:     "#808080",
		GridLineWidth: 0.2,
		BandAlpha:     layout.BandAlpha,
	}
}

// Compose builds the pages of year for profile p.
func Compose(p Profile, year int, idx *index.Index, st Style) ([]Page, error) {
	months := grid.Year(year)
	switch p.Mode {
	case ModeCompact:
		return ComposeCompactPages(year, months, idx, p, st), nil
	case ModePoster:
		return []Page{ComposePosterPage(year, months, idx, p, st)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, string(p.Mode))
	}
}

// ComposeCompactPages puts each month on its own page.
func ComposeCompactPages(year int, months []grid.Month, idx *index.Index, p Profile, st Style) []Page {
	pages := make([]Page, 0, len(months))
	for _, m := range months {
		pg := Page{Width: p.Width, Height: p.Height}
		frame := box{
			x: p.Margin,
			y: p.Margin,
			w: p.Width - 2*p.Margin,
			h: p.Height - 2*p.Margin,
		}
		composeMonth(&pg, frame, year, m, idx, p, st)
		pages = append(pages, pg)
	}
	return pages
}

// ComposePosterPage puts all months on one page, p.Rows × p.Cols, filled
// row by row.
func ComposePosterPage(year int, months []grid.Month, idx *index.Index, p Profile, st Style) Page {
	pg := Page{Width: p.Width, Height: p.Height}
	rows, cols := max(p.Rows, 1), max(p.Cols, 1)

	availW := p.Width - 2*p.Margin
	availH := p.Height - 2*p.Margin
	mw := availW / (float64(cols) + float64(cols-1)*p.WSpace)
	mh := availH / (float64(rows) + float64(rows-1)*p.HSpace)

	for i, m := range months {
		r, c := i/cols, i%cols
		if r >= rows {
			break
		}
		frame := box{
			x: p.Margin + float64(c)*mw*(1+p.WSpace),
			y: p.Margin + float64(r)*mh*(1+p.HSpace),
			w: mw,
			h: mh,
		}
		composeMonth(&pg, frame, year, m, idx, p, st)
	}
	return pg
}

type box struct {
	x, y, w, h float64
}

func composeMonth(pg *Page, f box, year int, m grid.Month, idx *index.Index, p Profile, st Style) {
	s := p.Scale
	titleH := f.h * titleShare
	gridTop := f.y + titleH
	colW := f.w / 7
	rowH := (f.h - titleH) / frameRows

	pg.add(Text{
		X:      f.x + f.w/2,
		Y:      f.y + titleH/2,
		Lines:  []string{fmt.Sprintf("%s %d", m.Month, year)},
		Size:   TitleFont * s,
		Color:  st.TitleColor,
		Align:  AlignCenter,
		VAlign: VAlignMiddle,
	})

	for c, name := range Weekdays {
		color := st.HeaderColor
		if grid.Weekend(c) {
			color = st.WeekendHeader
		}
		pg.add(Text{
			X:      f.x + (float64(c)+0.5)*colW,
			Y:      gridTop + rowH/2,
			Lines:  []string{name},
			Size:   HeaderFont * s,
			Bold:   true,
			Color:  color,
			Align:  AlignCenter,
			VAlign: VAlignMiddle,
		})
	}

	geom := layout.Geometry{Width: colW, Height: rowH, Scale: s, WrapWidth: p.WrapWidth}
	for r := range m.Weeks {
		y := gridTop + float64(r+1)*rowH
		for c := 0; c < 7; c++ {
			day := m.Cell(r, c)
			if day == 0 {
				continue
			}
			cell := layout.LayoutDay(m.Date(day), c, idx, geom)
			addCell(pg, f.x+float64(c)*colW, y, cell, st)
		}
	}

	// Grid lines go last so they stay visible over every background.
	bottom := gridTop + float64(1+len(m.Weeks))*rowH
	for c := 0; c <= 7; c++ {
		x := f.x + float64(c)*colW
		pg.add(Line{X1: x, Y1: gridTop, X2: x, Y2: bottom, Color: st.GridColor, Width: st.GridLineWidth})
	}
	for r := 0; r <= 1+len(m.Weeks); r++ {
		y := gridTop + float64(r)*rowH
		pg.add(Line{X1: f.x, Y1: y, X2: f.x + f.w, Y2: y, Color: st.GridColor, Width: st.GridLineWidth})
	}
}

func addCell(pg *Page, x, y float64, cell layout.Cell, st Style) {
	alpha := cell.Alpha
	if st.BandAlpha > 0 {
		alpha = st.BandAlpha
	}

	for _, b := range cell.Bands {
		pg.add(Rect{X: x, Y: y + b.Top, W: cell.Width, H: b.Height, Fill: b.Background, Alpha: alpha})
	}
	if cell.Shade == layout.ShadeWeekend {
		shade := st.WeekendShade
		if shade == "" {
			shade = layout.WeekendColor
		}
		pg.add(Rect{X: x, Y: y, W: cell.Width, H: cell.Height, Fill: shade, Alpha: alpha})
	}

	l := cell.DayLabel
	pg.add(Text{
		X:      x + l.X,
		Y:      y + l.Y,
		Lines:  []string{l.Text},
		Size:   l.Size,
		Bold:   l.Bold,
		Color:  l.Color,
		Align:  AlignLeft,
		VAlign: VAlignTop,
	})

	for _, b := range cell.Bands {
		if len(b.Lines) == 0 {
			continue
		}
		pg.add(Text{
			X:      x + b.CenterX,
			Y:      y + b.CenterY,
			Lines:  b.Lines,
			Size:   cell.FontSize,
			Color:  b.TextColor,
			Align:  AlignCenter,
			VAlign: VAlignMiddle,
		})
	}
}
