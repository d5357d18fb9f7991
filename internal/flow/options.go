package flow

import "github.com/natindo/FamilyFlow/internal/models"

// Option ids the engine reacts to beyond table entries.
const (
	ActionNext        = "flow:next"
	ActionBack        = "flow:back"
	ActionDatesDone   = "dates-done"
	ActionGridDone    = "grid-done"
	ActionCreateEvent = "create-event"
	ActionDone        = "done"
	ActionBackToNotes = "back"
	ActionEventNext   = "event-next"
	ActionEventPrev   = "event-prev"

	SameTimeYes       = "same-time-yes"
	SameTimeByDay     = "same-time-by-day"
	SameTimeNo        = "same-time-no"
	SameLocationYes   = "same-location-yes"
	SameLocationByDay = "same-location-by-day"
	SameLocationNo    = "same-location-no"

	prefixDay   = "day-"
	prefixDate  = "date-"
	prefixMonth = "month-"
	prefixWeek  = "weekly-"
)

func KindOptions() []models.Option {
	return []models.Option{
		{ID: models.KindEvent, Label: "Event", Description: "Something on the calendar"},
		{ID: models.KindKeeper, Label: "Keeper", Description: "A reminder or task to keep track of"},
	}
}

func EventCategories() []models.Option {
	return []models.Option{
		{ID: "sports", Label: "Sports"},
		{ID: "school", Label: "School"},
		{ID: "medical", Label: "Medical"},
		{ID: "social", Label: "Social"},
		{ID: "activities", Label: "Activities"},
	}
}

func KeeperCategories() []models.Option {
	return []models.Option{
		{ID: "reminder", Label: "Reminder"},
		{ID: "task", Label: "Task"},
		{ID: "payment", Label: "Payment"},
		{ID: "form", Label: "Form to sign"},
	}
}

func Sports() []models.Option {
	return []models.Option{
		{ID: "soccer", Label: "Soccer"},
		{ID: "basketball", Label: "Basketball"},
		{ID: "baseball", Label: "Baseball"},
		{ID: "swimming", Label: "Swimming"},
		{ID: "tennis", Label: "Tennis"},
		{ID: "hockey", Label: "Hockey"},
	}
}

// SportEventTypes are the kinds of sports events.
func SportEventTypes() []models.Option {
	return []models.Option{
		{ID: "practice", Label: "Practice"},
		{ID: "game", Label: "Game"},
		{ID: "tournament", Label: "Tournament"},
		{ID: "tryout", Label: "Tryout"},
	}
}

var subtypes = map[string][]models.Option{
	"school": {
		{ID: "field-trip", Label: "Field trip"},
		{ID: "parent-teacher-conference", Label: "Parent-teacher conference"},
		{ID: "school-play", Label: "School play"},
		{ID: "early-dismissal", Label: "Early dismissal"},
	},
	"medical": {
		{ID: "doctor", Label: "Doctor"},
		{ID: "dentist", Label: "Dentist"},
		{ID: "therapy", Label: "Therapy"},
	},
	"social": {
		{ID: "birthday-party", Label: "Birthday party"},
		{ID: "playdate", Label: "Playdate"},
		{ID: "sleepover", Label: "Sleepover"},
	},
	"activities": {
		{ID: "music-lesson", Label: "Music lesson"},
		{ID: "art-class", Label: "Art class"},
		{ID: "tutoring", Label: "Tutoring"},
		{ID: "scouts", Label: "Scouts"},
	},
}

// SubtypesFor returns the subtypes offered for a non-sports category.
func SubtypesFor(category string) []models.Option {
	return append([]models.Option(nil), subtypes[category]...)
}

// TimePeriods are the preset start times. Option ids are the time strings.
func TimePeriods() []models.Option {
	times := []string{
		"7:00 AM", "8:00 AM", "9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
		"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM", "6:00 PM", "7:00 PM",
	}
	out := make([]models.Option, 0, len(times))
	for _, t := range times {
		out = append(out, models.Option{ID: t, Label: t})
	}
	return out
}

// Locations is the built-in location directory.
func Locations() []models.Option {
	return []models.Option{
		{ID: "home", Label: "Home", Description: "Our house"},
		{ID: "school", Label: "School", Description: "Main campus"},
		{ID: "community-center", Label: "Community Center", Description: "Recreation and classes"},
		{ID: "sports-complex", Label: "Sports Complex", Description: "Fields and courts"},
		{ID: "pool", Label: "Aquatic Center", Description: "Indoor pool"},
		{ID: "library", Label: "Public Library", Description: "Downtown branch"},
		{ID: "clinic", Label: "Pediatric Clinic", Description: "Family medicine"},
		{ID: "park", Label: "City Park", Description: "Playground and picnic area"},
	}
}

// DateOptionID is the id that toggles date on the date step, or picks it on
// a per-date step.
func DateOptionID(date string) string { return prefixDate + date }
