// Package index groups validated events by the day they annotate.
//
// Exact-date events (public holidays, special days, leave days) are keyed
// by civil date. Birthdays recur every year and are keyed by month and day
// only. Each key holds an ordered list, since a day may carry any number of
// events; the order is the stacking order inside a day cell.
package index

import (
	"cmp"
	"context"
	"slices"
	"time"

	appLog "wallcal/internal/log"
	"wallcal/internal/model"
	"wallcal/internal/source"
)

// Date is a civil calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// MonthDay is the key of a yearly recurring event.
type MonthDay struct {
	Month time.Month
	Day   int
}

// Index is the read-only lookup structure built from the four event
// tables. The zero value is an empty index.
type Index struct {
	byExactDate map[Date][]model.Event
	byMonthDay  map[MonthDay][]model.Event
	skipped     int
}

// Build validates and groups raw rows. Holiday, special-day and leave
// rows are appended to their date in that order; birthday rows are
// re-keyed by month and day. Malformed rows are skipped.
func Build(holidays, specials, birthdays, leaves []model.Row) *Index {
	idx := &Index{
		byExactDate: make(map[Date][]model.Event),
		byMonthDay:  make(map[MonthDay][]model.Event),
	}
	idx.addExact(model.Holiday, holidays)
	idx.addExact(model.Special, specials)
	idx.addExact(model.Leave, leaves)

	for _, r := range birthdays {
		ev, ok := idx.parse(model.Birthday, r)
		if !ok {
			continue
		}
		key := MonthDay{Month: ev.Date.Month(), Day: ev.Date.Day()}
		idx.byMonthDay[key] = append(idx.byMonthDay[key], ev)
		appLog.Debug("event indexed", "key", ev.Key(), "category", string(model.Birthday))
	}
	return idx
}

func (idx *Index) addExact(c model.Category, rows []model.Row) {
	for _, r := range rows {
		ev, ok := idx.parse(c, r)
		if !ok {
			continue
		}
		key := DateOf(ev.Date)
		idx.byExactDate[key] = append(idx.byExactDate[key], ev)
		appLog.Debug("event indexed", "key", ev.Key(), "category", string(c))
	}
}

func (idx *Index) parse(c model.Category, r model.Row) (model.Event, bool) {
	ev, err := model.ParseRow(c, r)
	if err != nil {
		idx.skipped++
		appLog.Warn("skipping event row", "table", c.Table(), "reason", err.Error())
		return model.Event{}, false
	}
	return ev, true
}

// Load reads the four tables from src and builds the index. When any
// table cannot be read the calendar degrades to no events at all; this is
// logged, never returned.
func Load(ctx context.Context, src source.Tables) *Index {
	tables := make(map[model.Category][]model.Row, len(model.Categories))
	for _, c := range model.Categories {
		rows, err := src.Table(ctx, c.Table())
		if err != nil {
			appLog.Warn("event data unavailable, rendering without events", "table", c.Table(), "reason", err.Error())
			return Build(nil, nil, nil, nil)
		}
		tables[c] = rows
	}
	idx := Build(tables[model.Holiday], tables[model.Special], tables[model.Birthday], tables[model.Leave])
	appLog.Info("event index built", "events", idx.Len(), "skipped", idx.Skipped())
	return idx
}

// Exact returns the exact-date events of d in precedence order.
func (idx *Index) Exact(d Date) []model.Event {
	if idx == nil {
		return nil
	}
	return clone(idx.byExactDate[d])
}

// Recurring returns the yearly events on month/day.
func (idx *Index) Recurring(m time.Month, day int) []model.Event {
	if idx == nil {
		return nil
	}
	return clone(idx.byMonthDay[MonthDay{Month: m, Day: day}])
}

// ForDay returns every event shown on d: holidays, special days and leave
// days for that exact date, then birthdays falling on its month and day.
// A nil index has no events.
func (idx *Index) ForDay(d Date) []model.Event {
	out := append(idx.Exact(d), idx.Recurring(d.Month, d.Day)...)
	if len(out) == 0 {
		return nil
	}
	slices.SortStableFunc(out, func(a, b model.Event) int {
		return cmp.Compare(a.Category.Precedence(), b.Category.Precedence())
	})
	return out
}

// Len is the number of indexed events.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	n := 0
	for _, l := range idx.byExactDate {
		n += len(l)
	}
	for _, l := range idx.byMonthDay {
		n += len(l)
	}
	return n
}

// Skipped is the number of malformed rows dropped by Build.
func (idx *Index) Skipped() int {
	if idx == nil {
		return 0
	}
	return idx.skipped
}

// Year lists every event shown in year, day by day in calendar order.
// Birthdays are returned with their date moved into year; a 29 February
// birthday is omitted in common years.
func (idx *Index) Year(year int) []model.Event {
	var out []model.Event
	for d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == year; d = d.AddDate(0, 0, 1) {
		for _, ev := range idx.ForDay(DateOf(d)) {
			ev.Date = d
			out = append(out, ev)
		}
	}
	return out
}

func clone(evs []model.Event) []model.Event {
	if len(evs) == 0 {
		return nil
	}
	return append([]model.Event(nil), evs...)
}
