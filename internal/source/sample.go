package source

import (
	"fmt"
	"os"
	"path/filepath"

	"wallcal/internal/model"
)

// Category colors of the demo dataset.
const (
	SampleHolidayColor  = "#FF5C5C"
	SampleSpecialColor  = "#FFD700"
	SampleBirthdayColor = "#87CEFA"
	SampleLeaveColor    = "#98FB98"
	SampleTextColor     = "#000000"
)

type sampleDay struct {
	day, month int
	desc       string
}

var sampleDays = map[model.Category][]sampleDay{
	model.Holiday: {
		{1, 1, "New Year's Day"},
		{23, 4, "National Sovereignty and Children's Day"},
		{19, 5, "Atatürk Memorial, Youth and Sports Day"},
		{30, 8, "Victory Day"},
		{29, 10, "Republic Day"},
	},
	model.Special: {
		{14, 2, "Valentine's Day"},
		{8, 3, "International Women's Day"},
		{5, 6, "Environment Day"},
		{1, 9, "World Peace Day"},
	},
	model.Birthday: {
		{10, 4, "Ahmet's Birthday"},
		{20, 7, "Buse's Birthday"},
		{15, 9, "Mehmet's Birthday"},
	},
	model.Leave: {
		{12, 6, "Annual Leave"},
		{25, 12, "Christmas Holiday"},
	},
}

var sampleColors = map[model.Category]string{
	model.Holiday:  SampleHolidayColor,
	model.Special:  SampleSpecialColor,
	model.Birthday: SampleBirthdayColor,
	model.Leave:    SampleLeaveColor,
}

// Sample returns the demo dataset with every date placed in year, keyed
// by table name.
func Sample(year int) map[string][]model.Row {
	out := make(map[string][]model.Row, len(sampleDays))
	for _, c := range model.Categories {
		for _, d := range sampleDays[c] {
			out[c.Table()] = append(out[c.Table()], model.Row{
				Date:        fmt.Sprintf("%02d.%02d.%04d", d.day, d.month, year),
				Description: d.desc,
				GridColor:   sampleColors[c],
				TextColor:   SampleTextColor,
			})
		}
	}
	return out
}

// WriteSample writes the demo dataset for year to path as YAML. Existing
// files are not overwritten.
func WriteSample(path string, year int) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	order := []string{
		model.Holiday.Table(),
		model.Special.Table(),
		model.Birthday.Table(),
		model.Leave.Table(),
	}
	data, err := marshalTables(order, Sample(year))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
