package flow

import (
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/natindo/FamilyFlow/internal/models"
)

const weeklyCount = 4

var rruleDays = [7]rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

// QuickDates returns the date shortcuts offered next to the month grid.
func QuickDates(today string) []models.Option {
	out := []models.Option{
		{ID: "today", Label: "Today"},
		{ID: "tomorrow", Label: "Tomorrow"},
		{ID: "this-weekend", Label: "This weekend"},
	}
	if wd, err := DayOfWeek(today); err == nil {
		out = append(out, models.Option{
			ID:          prefixWeek + dayKey(wd),
			Label:       "Every " + DayLabel(wd),
			Description: "Next 4 weeks",
		})
	}
	return out
}

// quickDateValues expands a quick-date id relative to today.
func quickDateValues(id, today string) ([]string, bool) {
	start, err := time.Parse(DateLayout, today)
	if err != nil {
		return nil, false
	}

	switch {
	case id == "today":
		return []string{today}, true
	case id == "tomorrow":
		return []string{start.AddDate(0, 0, 1).Format(DateLayout)}, true
	case id == "this-weekend":
		return ruleDates(rrule.ROption{
			Freq:      rrule.DAILY,
			Count:     2,
			Dtstart:   start,
			Byweekday: []rrule.Weekday{rrule.SA, rrule.SU},
		})
	case strings.HasPrefix(id, prefixWeek):
		wd, ok := parseDayKey(strings.TrimPrefix(id, prefixWeek))
		if !ok {
			return nil, false
		}
		return ruleDates(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Count:     weeklyCount,
			Dtstart:   start,
			Byweekday: []rrule.Weekday{rruleDays[wd]},
		})
	}
	return nil, false
}

func ruleDates(opt rrule.ROption) ([]string, bool) {
	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, false
	}
	var out []string
	for _, t := range r.All() {
		out = append(out, t.Format(DateLayout))
	}
	return out, len(out) > 0
}
