package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "wallcal/internal/log"
	"wallcal/internal/model"
)

// Feed is an ICS calendar whose VEVENTs become rows of one table.
// Exactly one of URL and Path is set.
type Feed struct {
	ID        string
	Table     string
	URL       string
	Path      string
	GridColor string
	TextColor string
}

// Entry is a VEVENT reduced to what a table row needs.
type Entry struct {
	Date    time.Time
	Summary string
}

// Feeds serves tables assembled from ICS feeds. A feed that cannot be
// loaded is logged and contributes no rows.
type Feeds struct {
	feeds   []Feed
	fetcher *Fetcher
}

// NewFeeds returns a source over feeds. fetcher may be nil when every
// feed is a local file.
func NewFeeds(feeds []Feed, fetcher *Fetcher) *Feeds {
	return &Feeds{feeds: feeds, fetcher: fetcher}
}

func (s *Feeds) Table(ctx context.Context, name string) ([]model.Row, error) {
	var rows []model.Row
	for _, fd := range s.feeds {
		if fd.Table != name {
			continue
		}
		body, err := s.load(ctx, fd)
		if err != nil {
			appLog.Error("feed unavailable", err, "id", fd.ID, "table", fd.Table)
			continue
		}
		entries, err := ParseICS(body)
		if err != nil {
			appLog.Error("feed parse failed", err, "id", fd.ID, "table", fd.Table)
			continue
		}
		for _, e := range entries {
			rows = append(rows, model.Row{
				Date:        e.Date.Format(model.DateLayout),
				Description: e.Summary,
				GridColor:   fd.GridColor,
				TextColor:   fd.TextColor,
			})
		}
		appLog.Info("feed loaded", "id", fd.ID, "table", fd.Table, "rows", len(entries))
	}
	return rows, nil
}

func (s *Feeds) load(ctx context.Context, fd Feed) ([]byte, error) {
	switch {
	case fd.Path != "":
		return os.ReadFile(fd.Path)
	case fd.URL != "":
		if s.fetcher == nil {
			return nil, errors.New("no fetcher configured for remote feed")
		}
		body, _, err := s.fetcher.Fetch(ctx, fd.URL)
		return body, err
	default:
		return nil, errors.New("feed has neither url nor path")
	}
}

// ParseICS extracts dated entries from an ICS payload. VEVENTs without a
// summary or a readable DTSTART are skipped.
func ParseICS(body []byte) ([]Entry, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, ve := range cal.Events() {
		e, err := parseVEvent(ve)
		if err != nil {
			appLog.Warn("skipping vevent", "reason", err.Error())
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func parseVEvent(ve *ical.VEvent) (Entry, error) {
	var e Entry
	p := ve.GetProperty(ical.ComponentPropertySummary)
	if p == nil || strings.TrimSpace(p.Value) == "" {
		return e, errors.New("missing SUMMARY")
	}
	e.Summary = unescapeText(strings.TrimSpace(p.Value))

	dt := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dt == nil {
		return e, fmt.Errorf("%s: missing DTSTART", e.Summary)
	}
	date, err := parseICSDate(dt.Value)
	if err != nil {
		return e, fmt.Errorf("%s: %w", e.Summary, err)
	}
	e.Date = date
	return e, nil
}

// parseICSDate keeps the calendar date of a DATE or DATE-TIME value as
// written, without timezone conversion.
func parseICSDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if len(v) < 8 {
		return time.Time{}, fmt.Errorf("bad DTSTART %q", v)
	}
	t, err := time.Parse("20060102", v[:8])
	if err != nil {
		return time.Time{}, fmt.Errorf("bad DTSTART %q", v)
	}
	return t, nil
}

var textUnescaper = strings.NewReplacer(`\,`, ",", `\;`, ";", `\n`, " ", `\N`, " ", `\\`, `\`)

func unescapeText(s string) string {
	return textUnescaper.Replace(s)
}
