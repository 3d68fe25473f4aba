// Package export writes the events of a calendar year in interchange
// formats.
package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"wallcal/internal/index"
	"wallcal/internal/model"
)

const productID = "-//wallcal//yearly calendar//EN"

// WriteICS writes every event shown in year as an all-day VEVENT.
// Birthdays are placed on their date in year as single occurrences, so
// exports of different years never overlap. UIDs depend only on the
// date, category and position, so re-exporting the same data yields the
// same UIDs. stamp is used as DTSTAMP.
func WriteICS(w io.Writer, year int, idx *index.Index, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(fmt.Sprintf("Calendar %d", year))

	seq := map[string]int{}
	for _, ev := range idx.Year(year) {
		day := ev.Date.Format("20060102")
		k := day + "-" + string(ev.Category)
		seq[k]++

		ve := cal.AddEvent(fmt.Sprintf("%s-%d@wallcal", k, seq[k]))
		ve.SetDtStampTime(stamp.UTC())
		ve.SetAllDayStartAt(ev.Date)
		ve.SetAllDayEndAt(ev.Date.AddDate(0, 0, 1))
		ve.SetSummary(ev.Description)
		ve.SetProperty(ical.ComponentPropertyCategories, categoryName(ev.Category))
		ve.SetProperty(ical.ComponentPropertyColor, string(ev.Background))
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

func categoryName(c model.Category) string {
	switch c {
	case model.Holiday:
		return "PUBLIC HOLIDAY"
	case model.Special:
		return "SPECIAL DAY"
	case model.Leave:
		return "LEAVE"
	case model.Birthday:
		return "BIRTHDAY"
	default:
		return string(c)
	}
}
