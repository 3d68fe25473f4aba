// Package grid builds Monday-first month matrices.
package grid

import "time"

// Columns of a week row.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Week is one calendar row. Zero marks a day of an adjacent month.
type Week [7]int

// Month is the calendar matrix of one month. It has 4 to 6 weeks.
type Month struct {
	Year  int
	Month time.Month
	Weeks []Week
}

// BuildMonth lays out year/month in Monday-first weeks. The first week
// holds day 1, padded on the left with blanks; the last week is padded on
// the right.
func BuildMonth(year int, month time.Month) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// time.Weekday counts from Sunday.
	col := (int(first.Weekday()) + 6) % 7
	n := DaysIn(year, month)

	m := Month{Year: year, Month: month}
	var w Week
	for day := 1; day <= n; day++ {
		w[col] = day
		col++
		if col == 7 {
			m.Weeks = append(m.Weeks, w)
			w = Week{}
			col = 0
		}
	}
	if col > 0 {
		m.Weeks = append(m.Weeks, w)
	}
	return m
}

// DaysIn returns the number of days in year/month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysIn returns the number of days of m.
func (m Month) DaysIn() int {
	return DaysIn(m.Year, m.Month)
}

// Cell returns the day number at row/col, or 0 for blanks and positions
// outside the matrix.
func (m Month) Cell(row, col int) int {
	if row < 0 || row >= len(m.Weeks) || col < 0 || col > 6 {
		return 0
	}
	return m.Weeks[row][col]
}

// Date returns the date of a day of m.
func (m Month) Date(day int) time.Time {
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC)
}

// Weekend reports whether col is the Saturday or Sunday column.
func Weekend(col int) bool {
	return col == Saturday || col == Sunday
}

// Year builds all twelve months of year.
func Year(year int) []Month {
	out := make([]Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, BuildMonth(year, m))
	}
	return out
}
