package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natindo/FamilyFlow/internal/models"
)

func newTestEngine() *Engine {
	return NewEngine([]models.Child{
		{ID: "c1", Name: "Emma", Role: "daughter"},
		{ID: "c2", Name: "Liam", Role: "son"},
	}, nil)
}

func contextAt(step models.Step, p models.EventPreview) models.FlowContext {
	return models.FlowContext{
		Step:       step,
		Selections: make(map[models.Step]string),
		Today:      "2024-01-01",
		Preview:    p,
	}
}

func TestTransition_Classification(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name     string
		step     models.Step
		preview  models.EventPreview
		option   string
		wantStep models.Step
		check    func(t *testing.T, p models.EventPreview)
	}{
		{
			name:     "event",
			step:     models.StepInitial,
			option:   "event",
			wantStep: models.StepEventCategory,
			check:    func(t *testing.T, p models.EventPreview) { assert.Equal(t, "event", p.Type) },
		},
		{
			name:     "keeper",
			step:     models.StepInitial,
			option:   "keeper",
			wantStep: models.StepKeeperCategory,
			check:    func(t *testing.T, p models.EventPreview) { assert.Equal(t, "keeper", p.Type) },
		},
		{
			name:     "sports category",
			step:     models.StepEventCategory,
			option:   "sports",
			wantStep: models.StepSportsType,
			check:    func(t *testing.T, p models.EventPreview) { assert.Equal(t, "sports", p.Category) },
		},
		{
			name:     "other category",
			step:     models.StepEventCategory,
			option:   "school",
			wantStep: models.StepEventSubtype,
		},
		{
			name:     "sport",
			step:     models.StepSportsType,
			option:   "soccer",
			wantStep: models.StepEventType,
			check:    func(t *testing.T, p models.EventPreview) { assert.Equal(t, "soccer", p.Subtype) },
		},
		{
			name:     "sport event type",
			step:     models.StepEventType,
			option:   "practice",
			wantStep: models.StepWhichChild,
			check:    func(t *testing.T, p models.EventPreview) { assert.Equal(t, "practice", p.EventType) },
		},
		{
			name:     "subtype",
			step:     models.StepEventSubtype,
			preview:  models.EventPreview{Category: "school"},
			option:   "field-trip",
			wantStep: models.StepWhichChild,
		},
		{
			name:     "subtype of another category",
			step:     models.StepEventSubtype,
			preview:  models.EventPreview{Category: "school"},
			option:   "dentist",
			wantStep: models.StepEventSubtype,
		},
		{
			name:     "keeper category",
			step:     models.StepKeeperCategory,
			option:   "payment",
			wantStep: models.StepWhichChild,
			check: func(t *testing.T, p models.EventPreview) {
				assert.Equal(t, "payment", p.Category)
				assert.Equal(t, "payment", p.Subtype)
			},
		},
		{
			name:     "unknown initial id",
			step:     models.StepInitial,
			option:   "party",
			wantStep: models.StepInitial,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Transition(contextAt(tt.step, tt.preview), tt.step, tt.option)
			assert.Equal(t, tt.wantStep, got.Step)
			assert.Equal(t, tt.option, got.Selections[tt.step])
			if tt.check != nil {
				tt.check(t, got.Preview)
			}
		})
	}
}

func TestTransition_UnknownStepOnlyRecordsSelection(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.Step(99), models.EventPreview{Type: "event"})

	got := e.Transition(fc, models.Step(99), "anything")

	assert.Equal(t, models.Step(99), got.Step)
	assert.Equal(t, fc.Preview, got.Preview)
	assert.Equal(t, "anything", got.Selections[models.Step(99)])
}

func TestTransition_ChildToggle(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepWhichChild, models.EventPreview{SelectedChildren: []string{"c2"}, Child: "c2"})

	once := e.Transition(fc, models.StepWhichChild, "c1")
	assert.Equal(t, []string{"c2", "c1"}, once.Preview.SelectedChildren)
	assert.Equal(t, "c2", once.Preview.Child)
	assert.Equal(t, models.StepWhichChild, once.Step)

	twice := e.Transition(once, models.StepWhichChild, "c1")
	assert.Equal(t, fc.Preview.SelectedChildren, twice.Preview.SelectedChildren)

	cleared := e.Transition(twice, models.StepWhichChild, "c2")
	assert.Empty(t, cleared.Preview.SelectedChildren)
	assert.Empty(t, cleared.Preview.Child)

	assert.Equal(t, []string{"c2"}, fc.Preview.SelectedChildren, "input must not change")

	unknown := e.Transition(fc, models.StepWhichChild, "c9")
	assert.Equal(t, []string{"c2"}, unknown.Preview.SelectedChildren)
}

func TestTransition_DateSelection(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepWhenDate, models.EventPreview{})

	fc = e.Transition(fc, models.StepWhenDate, "dates-done")
	assert.Equal(t, models.StepWhenDate, fc.Step, "done without dates is a no-op")

	fc = e.Transition(fc, models.StepWhenDate, "date-2024-01-08")
	fc = e.Transition(fc, models.StepWhenDate, "date-2024-13-40")
	assert.Equal(t, []string{"2024-01-08"}, fc.Preview.SelectedDates)
	assert.Equal(t, "jan-2024", fc.Preview.SelectedMonth)

	single := e.Transition(fc, models.StepWhenDate, "dates-done")
	assert.Equal(t, models.StepWhenTimePeriod, single.Step)
	assert.False(t, single.Preview.IsRepeating)

	fc = e.Transition(fc, models.StepWhenDate, "date-2024-01-01")
	multi := e.Transition(fc, models.StepWhenDate, "dates-done")
	assert.Equal(t, models.StepRepeatingSameTime, multi.Step)
	assert.True(t, multi.Preview.IsRepeating)

	fc = e.Transition(fc, models.StepWhenDate, "date-2024-01-08")
	assert.Equal(t, []string{"2024-01-01"}, fc.Preview.SelectedDates)

	quick := e.Transition(fc, models.StepWhenDate, "tomorrow")
	assert.Equal(t, []string{"2024-01-02"}, quick.Preview.SelectedDates)
}

func TestTransition_MonthNavigationPreselectsPattern(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepWhenDate, models.EventPreview{
		SelectedDates: []string{"2024-01-01", "2024-01-08", "2024-01-15"},
		SelectedMonth: "jan-2024",
	})

	got := e.Transition(fc, models.StepWhenDate, "month-feb-2024")

	assert.Equal(t, "feb-2024", got.Preview.SelectedMonth)
	assert.Equal(t, []string{
		"2024-01-01", "2024-01-08", "2024-01-15",
		"2024-02-05", "2024-02-12", "2024-02-19", "2024-02-26",
	}, got.Preview.SelectedDates)
	assert.True(t, got.Preview.HasPatternPreselection)
	assert.True(t, got.Preview.IsComingFromOtherMonth)
	assert.Equal(t, "jan-2024", got.Preview.MonthToExclude)
	assert.Len(t, fc.Preview.SelectedDates, 3)
}

func TestTransition_MonthNavigationRoundTrip(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepWhenDate, models.EventPreview{
		SelectedDates: []string{"2024-01-01", "2024-01-08", "2024-01-15"},
		SelectedMonth: "jan-2024",
	})

	fc = e.Transition(fc, models.StepWhenDate, "month-feb-2024")
	fc = e.Transition(fc, models.StepWhenDate, "date-2024-02-26")
	fc = e.Transition(fc, models.StepWhenDate, "month-jan-2024")

	assert.Equal(t, "jan-2024", fc.Preview.SelectedMonth)
	assert.Equal(t, "jan-2024", fc.Preview.MonthToExclude)
	assert.Equal(t, []string{
		"2024-01-01", "2024-01-08", "2024-01-15",
		"2024-02-05", "2024-02-12", "2024-02-19",
	}, fc.Preview.SelectedDates, "january keeps its own dates")

	fc = e.Transition(fc, models.StepWhenDate, "month-feb-2024")
	assert.NotContains(t, fc.Preview.SelectedDates, "2024-02-26", "february keeps the deselection")
	assert.Len(t, fc.Preview.SelectedDates, 6)
}

func TestTransition_MonthNavigationWithoutPattern(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepWhenDate, models.EventPreview{
		SelectedDates: []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"},
		SelectedMonth: "jan-2024",
	})

	got := e.Transition(fc, models.StepWhenDate, "month-feb-2024")

	assert.Len(t, got.Preview.SelectedDates, 4)
	assert.False(t, got.Preview.HasPatternPreselection)

	bad := e.Transition(fc, models.StepWhenDate, "month-feb")
	assert.Equal(t, "jan-2024", bad.Preview.SelectedMonth)
}

func TestTransition_RepeatingSameTime(t *testing.T) {
	e := newTestEngine()
	p := models.EventPreview{
		SelectedDates: []string{"2024-01-01", "2024-01-03"},
		DayBasedTimes: map[string]string{"0": "old"},
	}

	tests := []struct {
		option      string
		wantStep    models.Step
		wantPattern models.Pattern
	}{
		{SameTimeYes, models.StepWhenTimePeriod, models.PatternSame},
		{SameTimeByDay, models.StepDayBasedTimeGrid, models.PatternDayBased},
		{SameTimeNo, models.StepCustomTimeSelection, models.PatternCustom},
	}
	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			got := e.Transition(contextAt(models.StepRepeatingSameTime, p), models.StepRepeatingSameTime, tt.option)
			assert.Equal(t, tt.wantStep, got.Step)
			assert.Equal(t, tt.wantPattern, got.Preview.CurrentTimePattern)
			if tt.option == SameTimeByDay {
				assert.Empty(t, got.Preview.DayBasedTimes)
			}
		})
	}
	assert.Equal(t, "old", p.DayBasedTimes["0"])
}

func TestTransition_DayBasedTimes(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepRepeatingSameTime, models.EventPreview{
		SelectedDates: []string{"2024-01-01", "2024-01-03", "2024-01-08"},
	})

	fc = e.Transition(fc, fc.Step, SameTimeByDay)
	require.Equal(t, models.StepDayBasedTimeGrid, fc.Step)

	stuck := e.Transition(fc, fc.Step, ActionGridDone)
	assert.Equal(t, models.StepDayBasedTimeGrid, stuck.Step, "grid-done needs every day set")

	absent := e.Transition(fc, fc.Step, "day-4")
	assert.Equal(t, models.StepDayBasedTimeGrid, absent.Step, "Friday has no dates")

	fc = e.Transition(fc, fc.Step, "day-0")
	require.Equal(t, models.StepDaySpecificTime, fc.Step)
	assert.Equal(t, "0", fc.Preview.CurrentDayForTime)

	fc = e.Transition(fc, fc.Step, "4:00 PM")
	require.Equal(t, models.StepDayBasedTimeSelection, fc.Step)
	assert.Equal(t, "2", fc.Preview.CurrentDayForTime)

	fc = e.Transition(fc, fc.Step, "day-2")
	fc = e.Transition(fc, fc.Step, "5:00 PM")
	assert.Equal(t, models.StepRepeatingSameLocation, fc.Step)
	assert.Equal(t, map[string]string{"0": "4:00 PM", "2": "5:00 PM"}, fc.Preview.DayBasedTimes)
}

func TestTransition_SingleDateTimeGoesToWhere(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepWhenTimePeriod, models.EventPreview{SelectedDates: []string{"2024-01-01"}})

	got := e.Transition(fc, fc.Step, "9:00 AM")

	assert.Equal(t, models.StepWhereLocation, got.Step)
	assert.Equal(t, "9:00 AM", got.Preview.Time)

	empty := e.Transition(fc, fc.Step, "  ")
	assert.Equal(t, models.StepWhenTimePeriod, empty.Step)
}

func TestTransition_DayBasedLocations(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepRepeatingSameLocation, models.EventPreview{
		SelectedDates:     []string{"2024-01-03", "2024-01-01", "2024-01-10"},
		DayBasedLocations: map[int]string{4: "stale"},
	})

	fc = e.Transition(fc, fc.Step, SameLocationByDay)
	require.Equal(t, models.StepDayBasedLocationSelection, fc.Step)
	assert.Equal(t, "0", fc.Preview.CurrentDayForLocation)
	assert.Empty(t, fc.Preview.DayBasedLocations)

	fc = e.Transition(fc, fc.Step, "day-2")
	fc = e.Transition(fc, fc.Step, "pool")
	require.Equal(t, models.StepDayBasedLocationSelection, fc.Step)
	assert.Equal(t, "0", fc.Preview.CurrentDayForLocation)

	fc = e.Transition(fc, fc.Step, "day-0")
	fc = e.Transition(fc, fc.Step, "Grandma's house")
	assert.Equal(t, models.StepEventNotes, fc.Step)
	assert.Equal(t, map[int]string{0: "Grandma's house", 2: "Aquatic Center"}, fc.Preview.DayBasedLocations)
}

func TestTransition_CustomTimesAndLocations(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepRepeatingSameTime, models.EventPreview{
		SelectedDates: []string{"2024-01-01", "2024-01-02"},
	})

	fc = e.Transition(fc, fc.Step, SameTimeNo)
	fc = e.Transition(fc, fc.Step, "date-2024-01-02")
	require.Equal(t, models.StepDaySpecificTime, fc.Step)
	fc = e.Transition(fc, fc.Step, "9:00 AM")
	require.Equal(t, models.StepCustomTimeSelection, fc.Step)
	assert.Equal(t, "2024-01-01", fc.Preview.CurrentDayForTime)

	unknown := e.Transition(fc, fc.Step, "date-2024-01-05")
	assert.Equal(t, models.StepCustomTimeSelection, unknown.Step)

	fc = e.Transition(fc, fc.Step, "date-2024-01-01")
	fc = e.Transition(fc, fc.Step, "10:00 AM")
	require.Equal(t, models.StepRepeatingSameLocation, fc.Step)

	fc = e.Transition(fc, fc.Step, SameLocationNo)
	require.Equal(t, models.StepCustomLocationSelection, fc.Step)
	fc = e.Transition(fc, fc.Step, "date-2024-01-01")
	fc = e.Transition(fc, fc.Step, "home")
	require.Equal(t, models.StepCustomLocationSelection, fc.Step)
	fc = e.Transition(fc, fc.Step, "date-2024-01-02")
	fc = e.Transition(fc, fc.Step, "Grandma's house")
	require.Equal(t, models.StepEventNotes, fc.Step)

	fc = e.Transition(fc, fc.Step, ActionCreateEvent)
	require.Len(t, fc.CreatedEvents, 2)
	assert.Equal(t, "10:00 AM", fc.CreatedEvents[0].Time)
	assert.Equal(t, "Home", fc.CreatedEvents[0].Location)
	assert.Equal(t, "9:00 AM", fc.CreatedEvents[1].Time)
	assert.Equal(t, "Grandma's house", fc.CreatedEvents[1].Location)
}

func TestTransition_EventNotesGuard(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepEventNotes, models.EventPreview{
		Type:          "event",
		SelectedDates: []string{"2024-01-01"},
		Time:          "9:00 AM",
	})
	fc.CreatedEvents = []models.EventRecord{
		{EventName: "Dentist", Date: "2023-12-30"},
		{EventName: "Dentist", Date: "2023-12-31"},
	}
	fc.CurrentEventIndex = 1

	for _, id := range []string{"", "create", "done", "Create-Event"} {
		got := e.Transition(fc, models.StepEventNotes, id)
		assert.Equal(t, models.StepEventNotes, got.Step, id)
		assert.Equal(t, fc.Preview, got.Preview, id)
		assert.Equal(t, fc.CreatedEvents, got.CreatedEvents, id)
		assert.Equal(t, 1, got.CurrentEventIndex, id)
	}
}

func TestTransition_FanOutOverridePrecedence(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepEventNotes, models.EventPreview{
		SelectedDates:      []string{"2024-01-01", "2024-01-08"},
		Location:           "Gym",
		DayBasedTimes:      map[string]string{"0": "9:00 AM"},
		DateBasedLocations: map[string]string{"2024-01-01": "Room A"},
	})

	got := e.Transition(fc, models.StepEventNotes, ActionCreateEvent)

	require.Equal(t, models.StepConfirmation, got.Step)
	require.Len(t, got.CreatedEvents, 2)
	assert.Equal(t, "Room A", got.CreatedEvents[0].Location)
	assert.Equal(t, "9:00 AM", got.CreatedEvents[0].Time)
	assert.Equal(t, "Gym", got.CreatedEvents[1].Location)
	assert.Equal(t, "9:00 AM", got.CreatedEvents[1].Time)
	assert.Equal(t, 0, got.CurrentEventIndex)
}

func TestTransition_FanOutExactDateBeatsWeekday(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepEventNotes, models.EventPreview{
		SelectedDates:     []string{"2024-01-01", "2024-01-08"},
		Time:              "7:00 AM",
		DayBasedTimes:     map[string]string{"0": "9:00 AM", "2024-01-08": "11:00 AM"},
		DayBasedLocations: map[int]string{0: "Field 2"},
	})

	got := e.Transition(fc, models.StepEventNotes, ActionCreateEvent)

	require.Len(t, got.CreatedEvents, 2)
	assert.Equal(t, "9:00 AM", got.CreatedEvents[0].Time)
	assert.Equal(t, "11:00 AM", got.CreatedEvents[1].Time)
	assert.Equal(t, "Field 2", got.CreatedEvents[1].Location)
}

func TestTransition_FanOutSamePatternIgnoresStaleOverrides(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepEventNotes, models.EventPreview{
		SelectedDates:          []string{"2024-01-01", "2024-01-08"},
		Time:                   "8:00 AM",
		Location:               "Home",
		CurrentTimePattern:     models.PatternSame,
		CurrentLocationPattern: models.PatternSame,
		DayBasedTimes:          map[string]string{"0": "9:00 AM"},
		DayBasedLocations:      map[int]string{0: "Gym"},
	})

	got := e.Transition(fc, models.StepEventNotes, ActionCreateEvent)

	for _, rec := range got.CreatedEvents {
		assert.Equal(t, "8:00 AM", rec.Time)
		assert.Equal(t, "Home", rec.Location)
	}
}

func TestTransition_FanOutSortsAndSnapshotsDetails(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepEventNotes, models.EventPreview{
		Type:             "event",
		Category:         "sports",
		Subtype:          "soccer",
		EventType:        "practice",
		SelectedChildren: []string{"c2", "c1"},
		SelectedDates:    []string{"2024-01-15", "2024-01-01", "2024-01-08"},
		Time:             "4:00 PM",
	})
	fc.Draft = models.Details{Notes: "Bring water", ContactName: "Coach Dan", Email: "dan@example.com"}

	got := e.Transition(fc, models.StepEventNotes, ActionCreateEvent)

	require.Len(t, got.CreatedEvents, 3)
	dates := []string{got.CreatedEvents[0].Date, got.CreatedEvents[1].Date, got.CreatedEvents[2].Date}
	assert.Equal(t, []string{"2024-01-01", "2024-01-08", "2024-01-15"}, dates)

	rec := got.CreatedEvents[0]
	assert.Equal(t, "Soccer Practice", rec.EventName)
	assert.Equal(t, "Liam, Emma", rec.ChildName)
	assert.Equal(t, "Bring water", rec.Notes)
	assert.Equal(t, "Coach Dan", rec.ContactName)
	assert.Equal(t, "dan@example.com", rec.Email)
	assert.Equal(t, "practice", rec.EventType)
	assert.Equal(t, "sports", rec.Category)
	assert.Equal(t, "event", rec.Kind)
	assert.Equal(t, "Bring water", got.Preview.Notes)
}

func TestTransition_FanOutWithoutDates(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepEventNotes, models.EventPreview{Type: "keeper", Category: "form", Subtype: "form"})

	got := e.Transition(fc, models.StepEventNotes, ActionCreateEvent)

	require.Len(t, got.CreatedEvents, 1)
	assert.Equal(t, "Form", got.CreatedEvents[0].EventName)
	assert.Empty(t, got.CreatedEvents[0].Date)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Event", displayName("", ""))
	assert.Equal(t, "Field Trip", displayName("field-trip", ""))
	assert.Equal(t, "Basketball Game", displayName("basketball", "game"))
}

func TestTransition_Confirmation(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepConfirmation, models.EventPreview{})
	fc.CreatedEvents = []models.EventRecord{{Date: "2024-01-01"}, {Date: "2024-01-08"}}

	next := e.Transition(fc, fc.Step, ActionEventNext)
	assert.Equal(t, 1, next.CurrentEventIndex)
	next = e.Transition(next, next.Step, ActionEventNext)
	assert.Equal(t, 1, next.CurrentEventIndex)
	next = e.Transition(next, next.Step, ActionEventPrev)
	assert.Equal(t, 0, next.CurrentEventIndex)

	assert.Equal(t, models.StepEventNotes, e.Transition(fc, fc.Step, ActionBackToNotes).Step)
	assert.Equal(t, models.StepComplete, e.Transition(fc, fc.Step, ActionDone).Step)
}
