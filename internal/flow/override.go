package flow

import "github.com/natindo/FamilyFlow/internal/models"

// Override supplies a per-date value for time or location.
type Override interface {
	Lookup(date string, weekday int) (string, bool)
}

// ByExactDate overrides single dates.
type ByExactDate map[string]string

func (o ByExactDate) Lookup(date string, _ int) (string, bool) {
	v, ok := o[date]
	return v, ok && v != ""
}

// ByWeekday overrides every date on a Monday-first weekday.
type ByWeekday map[int]string

func (o ByWeekday) Lookup(_ string, weekday int) (string, bool) {
	v, ok := o[weekday]
	return v, ok && v != ""
}

// resolve returns the first override hit for date, else base.
func resolve(date, base string, chain ...Override) string {
	wd, err := DayOfWeek(date)
	if err != nil {
		wd = -1
	}
	for _, o := range chain {
		if v, ok := o.Lookup(date, wd); ok {
			return v
		}
	}
	return base
}

// timeOverrides splits the mixed DayBasedTimes map into its two views and
// orders them by the active pattern.
func timeOverrides(p models.EventPreview) []Override {
	if p.CurrentTimePattern == models.PatternSame {
		return nil
	}
	byDate := ByExactDate{}
	byDay := ByWeekday{}
	for k, v := range p.DayBasedTimes {
		if idx, ok := parseDayKey(k); ok {
			byDay[idx] = v
			continue
		}
		byDate[k] = v
	}
	return []Override{byDate, byDay}
}

func locationOverrides(p models.EventPreview) []Override {
	if p.CurrentLocationPattern == models.PatternSame {
		return nil
	}
	return []Override{ByExactDate(p.DateBasedLocations), ByWeekday(p.DayBasedLocations)}
}
