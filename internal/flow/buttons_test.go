package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natindo/FamilyFlow/internal/models"
)

func optionIDs(opts []models.Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.ID)
	}
	return out
}

func TestButtons_ByDayGating(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name      string
		step      models.Step
		dates     []string
		byDay     string
		wantByDay bool
	}{
		{"time one weekday", models.StepRepeatingSameTime, []string{"2024-01-01", "2024-01-08"}, SameTimeByDay, false},
		{"time two weekdays", models.StepRepeatingSameTime, []string{"2024-01-01", "2024-01-03"}, SameTimeByDay, true},
		{"location one weekday", models.StepRepeatingSameLocation, []string{"2024-01-01", "2024-01-08"}, SameLocationByDay, false},
		{"location two weekdays", models.StepRepeatingSameLocation, []string{"2024-01-01", "2024-01-03"}, SameLocationByDay, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := optionIDs(e.Buttons(contextAt(tt.step, models.EventPreview{SelectedDates: tt.dates})))
			if tt.wantByDay {
				assert.Contains(t, ids, tt.byDay)
			} else {
				assert.NotContains(t, ids, tt.byDay)
			}
			assert.Len(t, ids, map[bool]int{true: 3, false: 2}[tt.wantByDay])
		})
	}
}

func TestButtons_WhichChild(t *testing.T) {
	e := newTestEngine()

	none := e.Buttons(contextAt(models.StepWhichChild, models.EventPreview{}))
	assert.Equal(t, []string{"c1", "c2"}, optionIDs(none))

	picked := e.Buttons(contextAt(models.StepWhichChild, models.EventPreview{SelectedChildren: []string{"c2"}}))
	assert.Equal(t, []string{"c1", "c2", ActionNext}, optionIDs(picked))
	assert.Equal(t, "✓ Liam", picked[1].Label)

	empty := NewEngine(nil, nil).Buttons(contextAt(models.StepWhichChild, models.EventPreview{}))
	require.Len(t, empty, 1)
	assert.Equal(t, ActionNext, empty[0].ID)
	assert.Equal(t, "Skip", empty[0].Label)
}

func TestButtons_WhenDate(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepWhenDate, models.EventPreview{})
	fc.Today = "2024-01-03"

	ids := optionIDs(e.Buttons(fc))
	assert.Equal(t, []string{"today", "tomorrow", "this-weekend", "weekly-2", "month-dec-2023", "month-feb-2024"}, ids)

	fc.Preview.SelectedDates = []string{"2024-03-04"}
	fc.Preview.SelectedMonth = "mar-2024"
	ids = optionIDs(e.Buttons(fc))
	assert.Contains(t, ids, "month-apr-2024")
	assert.Contains(t, ids, ActionDatesDone)
}

func TestButtons_DayGridAndSelection(t *testing.T) {
	e := newTestEngine()
	p := models.EventPreview{
		SelectedDates:      []string{"2024-01-01", "2024-01-03"},
		CurrentTimePattern: models.PatternDayBased,
		DayBasedTimes:      map[string]string{"0": "4:00 PM"},
	}

	grid := e.Buttons(contextAt(models.StepDayBasedTimeGrid, p))
	assert.Equal(t, []string{"day-0", "day-2"}, optionIDs(grid))
	assert.Equal(t, "Monday: 4:00 PM", grid[0].Label)

	sel := e.Buttons(contextAt(models.StepDayBasedTimeSelection, p))
	assert.Equal(t, []string{"day-2"}, optionIDs(sel))

	p.DayBasedTimes["2"] = "5:00 PM"
	grid = e.Buttons(contextAt(models.StepDayBasedTimeGrid, p))
	assert.Equal(t, []string{"day-0", "day-2", ActionGridDone}, optionIDs(grid))
}

func TestButtons_CustomSelectionListsUnsetDates(t *testing.T) {
	e := newTestEngine()
	p := models.EventPreview{
		SelectedDates:          []string{"2024-01-02", "2024-01-01"},
		CurrentLocationPattern: models.PatternCustom,
		DateBasedLocations:     map[string]string{"2024-01-02": "Home"},
	}

	opts := e.Buttons(contextAt(models.StepCustomLocationSelection, p))

	require.Len(t, opts, 1)
	assert.Equal(t, "date-2024-01-01", opts[0].ID)
	assert.Equal(t, "Mon, Jan 1", opts[0].Label)
}

func TestButtons_Confirmation(t *testing.T) {
	e := newTestEngine()
	fc := contextAt(models.StepConfirmation, models.EventPreview{})
	fc.CreatedEvents = []models.EventRecord{{}, {}}

	assert.Equal(t, []string{ActionEventNext, ActionDone, ActionBackToNotes}, optionIDs(e.Buttons(fc)))

	fc.CurrentEventIndex = 1
	assert.Equal(t, []string{ActionEventPrev, ActionDone, ActionBackToNotes}, optionIDs(e.Buttons(fc)))
}

func TestButtons_EveryStepHasTitle(t *testing.T) {
	for _, step := range models.Steps() {
		assert.NotEmpty(t, StepTitle(step, models.EventPreview{}, nil), step.String())
	}
}

func TestStepTitle_Interpolation(t *testing.T) {
	p := models.EventPreview{Subtype: "soccer", EventType: "game", CurrentDayForTime: "2", CurrentDayForLocation: "2024-01-08"}

	assert.Equal(t, "What kind of Soccer event?", StepTitle(models.StepEventType, p, nil))
	assert.Equal(t, "When is Emma's Soccer Game?", StepTitle(models.StepWhenDate, p, []string{"Emma"}))
	assert.Equal(t, "What time on Wednesdays?", StepTitle(models.StepDaySpecificTime, p, nil))
	assert.Equal(t, "Where is it on Mon, Jan 8?", StepTitle(models.StepDaySpecificLocation, p, nil))
}
