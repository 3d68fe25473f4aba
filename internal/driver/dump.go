package driver

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"wallcal/internal/index"
)

// Dump prints every event shown in year as a table, one row per event in
// calendar order.
func Dump(w io.Writer, year int, idx *index.Index) error {
	events := idx.Year(year)
	if len(events) == 0 {
		_, err := fmt.Fprintf(w, "no events in %d\n", year)
		return err
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.AddRow(
		bold.Sprint("Date"),
		bold.Sprint("Day"),
		bold.Sprint("Category"),
		bold.Sprint("Description"),
		bold.Sprint("Grid"),
		bold.Sprint("Text"),
	)
	for _, ev := range events {
		tbl.AddRow(
			ev.Date.Format("2006-01-02"),
			ev.Date.Format("Mon"),
			string(ev.Category),
			ev.Description,
			string(ev.Background),
			string(ev.Text),
		)
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}
