// Package render writes composed pages as a PDF document.
package render

import (
	"errors"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"wallcal/internal/compose"
	appLog "wallcal/internal/log"
	"wallcal/internal/model"
)

// Text placement relative to the font size. fpdf places text by baseline;
// these approximate the ascent and the optical center of a line for the
// core fonts.
const (
	leading      = 1.2
	ascentShare  = 0.75
	centerOffset = 0.33
)

// Options controls document metadata and fonts.
type Options struct {
	// FontFamily is a core PDF font family: Times, Helvetica or Courier.
	FontFamily string
	Title      string
	// Created is stored as the document creation date. Zero means now.
	Created time.Time
}

// Write renders pages into one PDF document on w. Nothing is written when
// an error is returned.
func Write(w io.Writer, pages []compose.Page, opt Options) error {
	if len(pages) == 0 {
		return errors.New("render: no pages")
	}
	family := opt.FontFamily
	if family == "" {
		family = "Times"
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pages[0].Width, Ht: pages[0].Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreator("wallcal", false)
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	created := opt.Created
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)

	r := &pageRenderer{
		pdf:    pdf,
		family: family,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}
	for _, pg := range pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: pg.Width, Ht: pg.Height})
		// Graphics state is per page; force the first SetAlpha.
		r.alpha = -1
		for _, s := range pg.Shapes {
			r.draw(s)
		}
		if pdf.Err() {
			return pdf.Error()
		}
	}
	appLog.Debug("pdf rendered", "pages", len(pages), "font", family)
	return pdf.Output(w)
}

type pageRenderer struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
	alpha  float64
}

func (r *pageRenderer) draw(s compose.Shape) {
	switch s := s.(type) {
	case compose.Rect:
		r.rect(s)
	case compose.Text:
		r.text(s)
	case compose.Line:
		r.line(s)
	}
}

func (r *pageRenderer) setAlpha(a float64) {
	if a <= 0 || a > 1 {
		a = 1
	}
	if a == r.alpha {
		return
	}
	r.pdf.SetAlpha(a, "Normal")
	r.alpha = a
}

func (r *pageRenderer) rect(s compose.Rect) {
	c, ok := s.Fill.RGB()
	if !ok {
		return
	}
	r.setAlpha(s.Alpha)
	r.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	r.pdf.Rect(s.X, s.Y, s.W, s.H, "F")
}

func (r *pageRenderer) line(s compose.Line) {
	c, ok := s.Color.RGB()
	if !ok {
		c = model.RGB{}
	}
	r.setAlpha(1)
	r.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	r.pdf.SetLineWidth(s.Width)
	r.pdf.Line(s.X1, s.Y1, s.X2, s.Y2)
}

func (r *pageRenderer) text(s compose.Text) {
	if len(s.Lines) == 0 || s.Size <= 0 {
		return
	}
	c, ok := s.Color.RGB()
	if !ok {
		c = model.RGB{}
	}
	style := ""
	if s.Bold {
		style = "B"
	}
	r.setAlpha(1)
	r.pdf.SetFont(r.family, style, s.Size)
	r.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))

	lh := s.Size * leading
	var baseline float64
	switch s.VAlign {
	case compose.VAlignMiddle:
		block := lh * float64(len(s.Lines))
		baseline = s.Y - block/2 + lh/2 + centerOffset*s.Size
	default:
		baseline = s.Y + ascentShare*s.Size
	}

	for i, line := range s.Lines {
		txt := r.tr(line)
		x := s.X
		if s.Align == compose.AlignCenter {
			x -= r.pdf.GetStringWidth(txt) / 2
		}
		r.pdf.Text(x, baseline+float64(i)*lh, txt)
	}
}
