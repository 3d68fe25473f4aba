package compose

import "wallcal/internal/model"

// Page is a finished, render-agnostic page description. Coordinates are
// points from the top-left corner of the page, y growing downwards.
// Shapes are listed in paint order.
type Page struct {
	Width  float64
	Height float64
	Shapes []Shape
}

// Shape is one of Rect, Text or Line.
type Shape interface {
	shape()
}

// Rect is a filled rectangle.
type Rect struct {
	X, Y, W, H float64
	Fill       model.Color
	Alpha      float64
}

// Align is the horizontal anchor of a Text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// VAlign is the vertical anchor of a Text.
type VAlign int

const (
	// VAlignTop puts the top of the first line at Y.
	VAlignTop VAlign = iota
	// VAlignMiddle centers the whole block of lines on Y.
	VAlignMiddle
)

// Text is one or more lines of text sharing font size and color.
type Text struct {
	X, Y   float64
	Lines  []string
	Size   float64
	Bold   bool
	Color  model.Color
	Align  Align
	VAlign VAlign
}

// Line is a stroked segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          model.Color
	Width          float64
}

func (Rect) shape() {}
func (Text) shape() {}
func (Line) shape() {}

func (p *Page) add(s ...Shape) {
	p.Shapes = append(p.Shapes, s...)
}
