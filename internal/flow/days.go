package flow

import (
	"sort"
	"strconv"
	"time"

	"github.com/natindo/FamilyFlow/internal/models"
)

// DateLayout is the format of every selected date.
const DateLayout = "2006-01-02"

var dayLabels = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// MondayFirst converts a time.Weekday (Sunday = 0) to a Monday-first index.
func MondayFirst(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// DayLabel returns the English name of a Monday-first weekday index.
func DayLabel(index int) string {
	if index < 0 || index > 6 {
		return ""
	}
	return dayLabels[index]
}

// DayOfWeek returns the Monday-first weekday of a yyyy-MM-dd date.
func DayOfWeek(date string) (int, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, err
	}
	return MondayFirst(t.Weekday()), nil
}

func isDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// GroupByDay buckets dates by Monday-first weekday. Malformed dates are skipped.
func GroupByDay(dates []string) map[int][]string {
	out := make(map[int][]string)
	for _, d := range dates {
		wd, err := DayOfWeek(d)
		if err != nil {
			continue
		}
		out[wd] = append(out[wd], d)
	}
	return out
}

// UniqueDays returns the weekdays present in dates, sorted Monday first.
func UniqueDays(dates []string) []models.DayInfo {
	groups := GroupByDay(dates)
	out := make([]models.DayInfo, 0, len(groups))
	for idx, ds := range groups {
		out = append(out, models.DayInfo{Index: idx, Label: DayLabel(idx), Count: len(ds)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// DetectPattern reports the weekdays of a plausible recurring series.
// All dates on one weekday always count. Otherwise at most three weekdays
// are allowed and there must be at least two dates per weekday on average.
func DetectPattern(dates []string) ([]int, bool) {
	if len(dates) < 2 {
		return nil, false
	}
	days := UniqueDays(dates)
	if len(days) == 0 {
		return nil, false
	}
	if len(days) == 1 || (len(days) <= 3 && len(dates) >= len(days)*2) {
		out := make([]int, 0, len(days))
		for _, d := range days {
			out = append(out, d.Index)
		}
		return out, true
	}
	return nil, false
}

func dayKey(index int) string {
	return strconv.Itoa(index)
}

func parseDayKey(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 0 || n > 6 {
		return 0, false
	}
	return n, true
}

func sortedDates(dates []string) []string {
	out := append([]string(nil), dates...)
	sort.Strings(out)
	return out
}
