package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedRow is wrapped by ParseRow for every row it rejects.
var ErrMalformedRow = errors.New("malformed event row")

// DateLayout is the table date format (DD.MM.YYYY).
const DateLayout = "02.01.2006"

// Category identifies which table an event came from.
type Category string

const (
	Holiday  Category = "holiday"
	Special  Category = "special"
	Leave    Category = "leave"
	Birthday Category = "birthday"
)

// Categories lists every category in per-day precedence order.
var Categories = []Category{Holiday, Special, Leave, Birthday}

// Table returns the name of the data table holding events of c.
func (c Category) Table() string {
	switch c {
	case Holiday:
		return "Public_Holidays"
	case Special:
		return "Special_Days"
	case Leave:
		return "Leave_Days"
	case Birthday:
		return "Birthdays"
	default:
		return ""
	}
}

// Precedence is the position of c when a day's events are stacked.
// Lower values are drawn first (topmost band).
func (c Category) Precedence() int {
	for i, cc := range Categories {
		if cc == c {
			return i
		}
	}
	return len(Categories)
}

// Recurring reports whether events of c repeat every year on the same
// month and day.
func (c Category) Recurring() bool {
	return c == Birthday
}

// Row is a raw table row as read from a data source.
type Row struct {
	Date        string
	Description string
	GridColor   string
	TextColor   string
}

// Event is a single, validated calendar annotation.
type Event struct {
	Category    Category
	Date        time.Time // UTC midnight; the year is meaningless for birthdays
	Description string
	Background  Color
	Text        Color
}

// Key returns the lookup key of the event: DD.MM.YYYY for exact-date
// events and DD.MM for recurring ones.
func (e Event) Key() string {
	if e.Category.Recurring() {
		return e.Date.Format("02.01")
	}
	return e.Date.Format(DateLayout)
}

// ParseRow validates a raw row of the given category.
func ParseRow(c Category, r Row) (Event, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	desc := strings.TrimSpace(r.Description)
	if desc == "" {
		return Event{}, fmt.Errorf("%w: %s: empty description", ErrMalformedRow, r.Date)
	}
	bg := Color(strings.TrimSpace(r.GridColor))
	if _, ok := bg.RGB(); !ok {
		return Event{}, fmt.Errorf("%w: %s: bad grid color %q", ErrMalformedRow, r.Date, r.GridColor)
	}
	fg := Color(strings.TrimSpace(r.TextColor))
	if _, ok := fg.RGB(); !ok {
		return Event{}, fmt.Errorf("%w: %s: bad text color %q", ErrMalformedRow, r.Date, r.TextColor)
	}
	return Event{
		Category:    c,
		Date:        date,
		Description: desc,
		Background:  bg,
		Text:        fg,
	}, nil
}

// ParseDate parses a DD.MM.YYYY string into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want DD.MM.YYYY", s)
	}
	return t, nil
}

// Color is an opaque paint value: "#RRGGBB", "#RGB" or a named color.
type Color string

// RGB holds 8-bit color channels.
type RGB struct {
	R, G, B uint8
}

var namedColors = map[string]RGB{
	"white":     {0xFF, 0xFF, 0xFF},
	"black":     {0x00, 0x00, 0x00},
	"gray":      {0x80, 0x80, 0x80},
	"grey":      {0x80, 0x80, 0x80},
	"lightgray": {0xD3, 0xD3, 0xD3},
	"lightgrey": {0xD3, 0xD3, 0xD3},
	"red":       {0xFF, 0x00, 0x00},
	"green":     {0x00, 0x80, 0x00},
	"blue":      {0x00, 0x00, 0xFF},
	"gold":      {0xFF, 0xD7, 0x00},
	"skyblue":   {0x87, 0xCE, 0xEB},
	"palegreen": {0x98, 0xFB, 0x98},
}

// RGB resolves c for painting. ok is false when c is neither a hex value
// nor a known color name.
func (c Color) RGB() (RGB, bool) {
	s := strings.ToLower(strings.TrimSpace(string(c)))
	if v, ok := namedColors[s]; ok {
		return v, true
	}
	if !strings.HasPrefix(s, "#") {
		return RGB{}, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, true
}
