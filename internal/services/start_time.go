package services

import (
	"strings"
	"time"

	"github.com/natindo/FamilyFlow/internal/models"
)

const dateLayout = "2006-01-02"

var clockLayouts = []string{"3:04 PM", "3:04PM", "3 PM", "3PM", "15:04"}

// StartTime combines a record's date and clock text in loc. A record
// without a date has no start; an unreadable time falls back to midnight.
func StartTime(rec models.EventRecord, loc *time.Location) *time.Time {
	day, err := time.ParseInLocation(dateLayout, rec.Date, loc)
	if err != nil {
		return nil
	}
	if clock, ok := ParseClock(rec.Time); ok {
		day = day.Add(clock)
	}
	return &day
}

// ParseClock reads "4:00 PM" style or 24h text as an offset from midnight.
func ParseClock(text string) (time.Duration, bool) {
	text = strings.ToUpper(strings.TrimSpace(text))
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, text)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
		}
	}
	return 0, false
}

// dateArg maps a record date to a DATE parameter, NULL when absent.
func dateArg(date string, loc *time.Location) any {
	t, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return nil
	}
	return t
}
