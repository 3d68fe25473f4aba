// Package source reads the four event tables (Public_Holidays,
// Special_Days, Birthdays, Leave_Days) from the configured data sources.
//
// Every source satisfies Tables. A source that has no table of a given name
// returns an empty result, not an error; only an unreadable backing store is
// reported, and callers degrade to an empty calendar in that case.
package source

import (
	"context"
	"errors"

	"wallcal/internal/model"
)

// ErrUnavailable reports a backing data store that could not be read.
var ErrUnavailable = errors.New("data source unavailable")

// Tables is a tabular data source with named tables of event rows.
type Tables interface {
	// Table returns the rows of the named table in source order.
	// A missing table yields nil, nil.
	Table(ctx context.Context, name string) ([]model.Row, error)
}

// Empty is a source without any tables.
type Empty struct{}

func (Empty) Table(context.Context, string) ([]model.Row, error) { return nil, nil }

// Merge concatenates tables of the same name across sources, in order.
func Merge(sources ...Tables) Tables {
	return merged(sources)
}

type merged []Tables

func (m merged) Table(ctx context.Context, name string) ([]model.Row, error) {
	var out []model.Row
	for _, s := range m {
		rows, err := s.Table(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}
