package flow

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayCell is one cell of a month grid. Date is empty for padding cells.
type DayCell struct {
	Date    string
	Day     int
	Weekday int
}

// MonthID formats t's month as "<mmm>-<yyyy>", e.g. "jan-2024".
func MonthID(t time.Time) string {
	return fmt.Sprintf("%s-%04d", strings.ToLower(t.Month().String()[:3]), t.Year())
}

// ParseMonthID returns the first day of the identified month in UTC.
func ParseMonthID(id string) (time.Time, error) {
	name, yearStr, ok := strings.Cut(id, "-")
	if !ok || len(name) != 3 || len(yearStr) != 4 {
		return time.Time{}, fmt.Errorf("invalid month id %q", id)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month id %q: %w", id, err)
	}
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()[:3]) == name {
			return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid month id %q", id)
}

// ShiftMonth moves a month id by delta months.
func ShiftMonth(id string, delta int) (string, error) {
	t, err := ParseMonthID(id)
	if err != nil {
		return "", err
	}
	return MonthID(t.AddDate(0, delta, 0)), nil
}

// MonthLabel renders a month id for display, e.g. "January 2024".
func MonthLabel(id string) string {
	t, err := ParseMonthID(id)
	if err != nil {
		return id
	}
	return t.Format("January 2006")
}

// MonthGrid lays out a month in Monday-first weeks. The first and last
// rows are padded with blank cells so every row has seven columns.
func MonthGrid(id string) ([][]DayCell, error) {
	first, err := ParseMonthID(id)
	if err != nil {
		return nil, err
	}

	var rows [][]DayCell
	week := make([]DayCell, MondayFirst(first.Weekday()))

	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		wd := MondayFirst(d.Weekday())
		if wd == 0 && d.Day() != 1 {
			rows = append(rows, week)
			week = nil
		}
		week = append(week, DayCell{Date: d.Format(DateLayout), Day: d.Day(), Weekday: wd})
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, DayCell{})
		}
		rows = append(rows, week)
	}
	return rows, nil
}

// monthOf returns the month id of a yyyy-MM-dd date, or "" if malformed.
func monthOf(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return MonthID(t)
}

// datesInMonthOn lists the dates of a month that fall on the given weekdays.
func datesInMonthOn(id string, weekdays []int) []string {
	first, err := ParseMonthID(id)
	if err != nil {
		return nil
	}
	want := make(map[int]bool, len(weekdays))
	for _, w := range weekdays {
		want[w] = true
	}
	var out []string
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if want[MondayFirst(d.Weekday())] {
			out = append(out, d.Format(DateLayout))
		}
	}
	return out
}
