package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/spf13/afero"

	"github.com/natindo/FamilyFlow/internal/models"
	"github.com/natindo/FamilyFlow/internal/services"
)

const (
	productID       = "-//FamilyFlow//Family Scheduler//EN"
	defaultDuration = time.Hour
	dateLayout      = "2006-01-02"
)

// Calendar builds a VCALENDAR with one VEVENT per stored event. Events
// without a date are skipped; events without a readable time are all-day.
func Calendar(events []models.Event, loc *time.Location, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName("FamilyFlow")
	cal.SetXWRTimezone(loc.String())

	for _, ev := range events {
		day, err := time.ParseInLocation(dateLayout, ev.Date, loc)
		if err != nil {
			continue
		}

		ve := cal.AddEvent(UID(ev))
		ve.SetDtStampTime(now.UTC())
		if !ev.CreatedAt.IsZero() {
			ve.SetCreatedTime(ev.CreatedAt.UTC())
		}
		ve.SetSummary(Summary(ev))
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if desc := Description(ev); desc != "" {
			ve.SetDescription(desc)
		}
		if ev.WebsiteURL != "" {
			ve.SetURL(ev.WebsiteURL)
		}

		if clock, ok := services.ParseClock(ev.Time); ok {
			start := day.Add(clock)
			ve.SetStartAt(start.UTC())
			ve.SetEndAt(start.Add(defaultDuration).UTC())
		} else {
			ve.SetAllDayStartAt(day)
			ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}
	}
	return cal
}

// UID is stable per stored row so re-exports update calendar entries.
func UID(ev models.Event) string {
	if ev.SeriesID == "" {
		return fmt.Sprintf("event-%d@familyflow", ev.ID)
	}
	return fmt.Sprintf("%s-%d@familyflow", strings.ToLower(ev.SeriesID), ev.ID)
}

func Summary(ev models.Event) string {
	if ev.ChildName == "" {
		return ev.EventName
	}
	return ev.EventName + " (" + ev.ChildName + ")"
}

// Description joins notes and contact details, one per line.
func Description(ev models.Event) string {
	var lines []string
	if ev.Notes != "" {
		lines = append(lines, ev.Notes)
	}
	if ev.ContactName != "" {
		lines = append(lines, "Contact: "+ev.ContactName)
	}
	if ev.PhoneNumber != "" {
		lines = append(lines, "Phone: "+ev.PhoneNumber)
	}
	if ev.Email != "" {
		lines = append(lines, "Email: "+ev.Email)
	}
	return strings.Join(lines, "\n")
}

// Render serializes events as an .ics document.
func Render(events []models.Event, loc *time.Location, now time.Time) []byte {
	return []byte(Calendar(events, loc, now).Serialize())
}

// WriteFile renders events into path on fs, creating parent directories.
func WriteFile(fs afero.Fs, path string, events []models.Event, loc *time.Location, now time.Time) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := afero.WriteFile(fs, path, Render(events, loc, now), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// FileName is the export name for a chat, e.g. "familyflow-42.ics".
func FileName(chatID int64) string {
	return fmt.Sprintf("familyflow-%d.ics", chatID)
}
