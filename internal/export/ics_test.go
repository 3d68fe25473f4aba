package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/go-cmp/cmp"

	"wallcal/internal/index"
	"wallcal/internal/model"
)

func TestWriteICS(t *testing.T) {
	idx := index.Build(
		[]model.Row{
			{Date: "01.01.2025", Description: "New Year's Day", GridColor: "#FF5C5C", TextColor: "#000000"},
			{Date: "01.01.2024", Description: "Last year", GridColor: "#FF5C5C", TextColor: "#000000"},
		},
		[]model.Row{{Date: "01.01.2025", Description: "Fresh start", GridColor: "#FFD700", TextColor: "#000000"}},
		[]model.Row{{Date: "20.07.1990", Description: "Buse's Birthday", GridColor: "#87CEFA", TextColor: "#000000"}},
		nil,
	)
	stamp := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteICS(&buf, 2025, idx, stamp); err != nil {
		t.Fatal(err)
	}

	cal, err := ical.ParseCalendar(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}

	type got struct{ UID, Start, Summary string }
	var events []got
	for _, ve := range cal.Events() {
		g := got{UID: ve.Id()}
		if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil {
			g.Start = p.Value
		}
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			g.Summary = p.Value
		}
		events = append(events, g)
	}
	want := []got{
		{"20250101-holiday-1@wallcal", "20250101", "New Year's Day"},
		{"20250101-special-1@wallcal", "20250101", "Fresh start"},
		{"20250720-birthday-1@wallcal", "20250720", "Buse's Birthday"},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	for _, ve := range cal.Events() {
		if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
			t.Errorf("%s carries RRULE %q", ve.Id(), p.Value)
		}
	}

	var again bytes.Buffer
	if err := WriteICS(&again, 2025, idx, stamp); err != nil {
		t.Fatal(err)
	}
	if again.String() != buf.String() {
		t.Error("export is not reproducible")
	}
}

func TestWriteICSEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteICS(&buf, 2025, nil, time.Now()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "BEGIN:VCALENDAR") || strings.Contains(buf.String(), "BEGIN:VEVENT") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
