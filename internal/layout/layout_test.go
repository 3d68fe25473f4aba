package layout

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"wallcal/internal/grid"
	"wallcal/internal/index"
	"wallcal/internal/model"
)

var cellGeom = Geometry{Width: 100, Height: 80, Scale: 1, WrapWidth: 20}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func col(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func TestNewYearScenario(t *testing.T) {
	idx := index.Build([]model.Row{{
		Date: "01.01.2025", Description: "New Year's Day", GridColor: "#FF5C5C", TextColor: "#000000",
	}}, nil, nil, nil)

	d := day(2025, time.January, 1)
	if col(d) != grid.Wednesday {
		t.Fatalf("1 January 2025 column = %d, want Wednesday", col(d))
	}
	c := LayoutDay(d, col(d), idx, cellGeom)

	want := []Band{{
		Text:       "New Year's Day",
		Lines:      []string{"New Year's Day"},
		Category:   model.Holiday,
		Background: "#FF5C5C",
		TextColor:  "#000000",
		Top:        0,
		Height:     80,
		CenterX:    50,
		CenterY:    40,
	}}
	if diff := cmp.Diff(want, c.Bands); diff != "" {
		t.Errorf("bands (-want +got):\n%s", diff)
	}
	if c.Shade != ShadeNone {
		t.Errorf("Shade = %v", c.Shade)
	}
	if c.DayLabel.Text != "1" || !c.DayLabel.Bold || c.DayLabel.Color != DayLabelColor {
		t.Errorf("DayLabel = %+v", c.DayLabel)
	}
	if c.Alpha != BandAlpha {
		t.Errorf("Alpha = %v", c.Alpha)
	}
}

func TestEmptyCells(t *testing.T) {
	idx := index.Build(nil, nil, nil, nil)
	tests := []struct {
		date time.Time
		want Shade
	}{
		{day(2025, time.January, 4), ShadeWeekend}, // Saturday
		{day(2025, time.January, 5), ShadeWeekend}, // Sunday
		{day(2025, time.January, 6), ShadeNone},    // Monday
		{day(2025, time.January, 10), ShadeNone},   // Friday
	}
	for _, tt := range tests {
		c := LayoutDay(tt.date, col(tt.date), idx, cellGeom)
		if c.Shade != tt.want {
			t.Errorf("%s: Shade = %v, want %v", tt.date.Format("Mon 02"), c.Shade, tt.want)
		}
		if len(c.Bands) != 0 || c.FontSize != 0 {
			t.Errorf("%s: empty cell has bands %v, font %v", tt.date.Format("Mon 02"), c.Bands, c.FontSize)
		}
		if c.DayLabel.Text == "" {
			t.Errorf("%s: empty cell lost its day number", tt.date.Format("Mon 02"))
		}
	}

	// A nil index behaves like an empty one.
	if c := LayoutDay(day(2025, time.January, 4), grid.Saturday, nil, cellGeom); c.Shade != ShadeWeekend {
		t.Errorf("nil index: Shade = %v", c.Shade)
	}
}

func TestWeekendWithEventIsNotShaded(t *testing.T) {
	idx := index.Build(nil, []model.Row{{
		Date: "08.03.2025", Description: "International Women's Day", GridColor: "#FFD700", TextColor: "#000000",
	}}, nil, nil)
	d := day(2025, time.March, 8)
	c := LayoutDay(d, col(d), idx, cellGeom)
	if c.Shade != ShadeNone || len(c.Bands) != 1 {
		t.Errorf("Shade = %v, bands = %d", c.Shade, len(c.Bands))
	}
	if diff := cmp.Diff([]string{"International", "Women's Day"}, c.Bands[0].Lines); diff != "" {
		t.Errorf("wrapped lines (-want +got):\n%s", diff)
	}
}

func TestBandsFillCell(t *testing.T) {
	prevFont := math.Inf(1)
	for n := 1; n <= 12; n++ {
		rows := make([]model.Row, n)
		for i := range rows {
			rows[i] = model.Row{Date: "12.06.2025", Description: fmt.Sprintf("Leave %d", i), GridColor: "#98FB98", TextColor: "#000000"}
		}
		idx := index.Build(nil, nil, nil, rows)
		d := day(2025, time.June, 12)
		c := LayoutDay(d, col(d), idx, cellGeom)

		if len(c.Bands) != n {
			t.Fatalf("n=%d: %d bands", n, len(c.Bands))
		}
		sum := 0.0
		for i, b := range c.Bands {
			sum += b.Height
			if i > 0 {
				prev := c.Bands[i-1]
				if math.Abs(prev.Top+prev.Height-b.Top) > 1e-9 {
					t.Errorf("n=%d: band %d overlaps or leaves a gap", n, i)
				}
			}
			if b.Text != fmt.Sprintf("Leave %d", i) {
				t.Errorf("n=%d: band %d is %q", n, i, b.Text)
			}
		}
		if math.Abs(sum-cellGeom.Height) > 1e-9 {
			t.Errorf("n=%d: band heights sum to %v, want %v", n, sum, cellGeom.Height)
		}
		if c.FontSize > prevFont {
			t.Errorf("n=%d: font size grew from %v to %v", n, prevFont, c.FontSize)
		}
		if c.FontSize < MinFont {
			t.Errorf("n=%d: font size %v below minimum", n, c.FontSize)
		}
		prevFont = c.FontSize
	}
}

func TestHolidayAndBirthdayStack(t *testing.T) {
	idx := index.Build(
		[]model.Row{{Date: "10.04.2025", Description: "Holiday", GridColor: "#FF5C5C", TextColor: "#000000"}},
		nil,
		[]model.Row{{Date: "10.04.1995", Description: "Ahmet's Birthday", GridColor: "#87CEFA", TextColor: "#000000"}},
		nil,
	)
	d := day(2025, time.April, 10)
	c := LayoutDay(d, col(d), idx, cellGeom)
	if len(c.Bands) != 2 {
		t.Fatalf("%d bands, want 2", len(c.Bands))
	}
	if c.Bands[0].Category != model.Holiday || c.Bands[1].Category != model.Birthday {
		t.Errorf("order = %v, %v; want holiday then birthday", c.Bands[0].Category, c.Bands[1].Category)
	}
	if c.Bands[0].Top != 0 || c.Bands[1].Top != 40 || c.Bands[1].CenterY != 60 {
		t.Errorf("band geometry = %+v", c.Bands)
	}
}

func TestBirthdayAndSpecialDayDoNotCollide(t *testing.T) {
	idx := index.Build(nil,
		[]model.Row{{Date: "05.06.2025", Description: "Environment Day", GridColor: "#FFD700", TextColor: "#000000"}},
		[]model.Row{{Date: "20.07.2025", Description: "Buse's Birthday", GridColor: "#87CEFA", TextColor: "#000000"}},
		nil,
	)
	july := LayoutDay(day(2025, time.July, 20), grid.Sunday, idx, cellGeom)
	if len(july.Bands) != 1 || july.Bands[0].Text != "Buse's Birthday" {
		t.Errorf("20 July: %+v", july.Bands)
	}
	june := LayoutDay(day(2025, time.June, 5), grid.Thursday, idx, cellGeom)
	if len(june.Bands) != 1 || june.Bands[0].Text != "Environment Day" {
		t.Errorf("5 June: %+v", june.Bands)
	}
}

func TestLayoutDayIsPure(t *testing.T) {
	idx := index.Build(
		[]model.Row{{Date: "29.10.2025", Description: "Republic Day", GridColor: "#FF5C5C", TextColor: "#000000"}},
		nil, nil,
		[]model.Row{{Date: "29.10.2025", Description: "Annual Leave", GridColor: "#98FB98", TextColor: "#000000"}},
	)
	d := day(2025, time.October, 29)
	a := LayoutDay(d, col(d), idx, cellGeom)
	b := LayoutDay(d, col(d), idx, cellGeom)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("two calls differ (-first +second):\n%s", diff)
	}
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		n     int
		scale float64
		want  float64
	}{
		{1, 1, 8},
		{3, 1, 7},
		{5, 1, 6},
		{11, 1, 3},
		{40, 1, 3},
		{3, 1.3, 9.1},
		{40, 1.3, 3.9},
	}
	for _, tt := range tests {
		if got := FontSize(tt.n, tt.scale); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("FontSize(%d, %v) = %v, want %v", tt.n, tt.scale, got, tt.want)
		}
	}
}

func TestScaleAffectsFontsOnly(t *testing.T) {
	idx := index.Build([]model.Row{{Date: "30.08.2025", Description: "Victory Day", GridColor: "#FF5C5C", TextColor: "#000000"}}, nil, nil, nil)
	d := day(2025, time.August, 30)
	small := LayoutDay(d, col(d), idx, Geometry{Width: 100, Height: 80, Scale: 1})
	big := LayoutDay(d, col(d), idx, Geometry{Width: 100, Height: 80, Scale: 1.3})
	if big.FontSize <= small.FontSize || big.DayLabel.Size <= small.DayLabel.Size {
		t.Errorf("scale did not grow fonts: %v/%v", small.FontSize, big.FontSize)
	}
	if diff := cmp.Diff(small.Bands, big.Bands); diff != "" {
		t.Errorf("scale changed band geometry:\n%s", diff)
	}
}
