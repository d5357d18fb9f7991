package flow

import (
	"fmt"
	"time"

	"github.com/natindo/FamilyFlow/internal/models"
)

// Buttons lists the options offered on the session's current step.
func (e *Engine) Buttons(fc models.FlowContext) []models.Option {
	p := fc.Preview

	switch fc.Step {
	case models.StepInitial:
		return KindOptions()
	case models.StepEventCategory:
		return EventCategories()
	case models.StepKeeperCategory:
		return KeeperCategories()
	case models.StepSportsType:
		return Sports()
	case models.StepEventSubtype:
		return SubtypesFor(p.Category)
	case models.StepEventType:
		return SportEventTypes()

	case models.StepWhichChild:
		out := make([]models.Option, 0, len(e.children)+1)
		for _, c := range e.children {
			opt := models.Option{ID: c.ID, Label: c.Name, Description: c.Role}
			if contains(p.SelectedChildren, c.ID) {
				opt.Label = "✓ " + c.Name
			}
			out = append(out, opt)
		}
		switch {
		case len(e.children) == 0:
			out = append(out, models.Option{ID: ActionNext, Label: "Skip"})
		case len(p.SelectedChildren) > 0:
			out = append(out, models.Option{ID: ActionNext, Label: "Next"})
		}
		return out

	case models.StepWhenDate:
		out := QuickDates(fc.Today)
		month := p.SelectedMonth
		if month == "" {
			month = monthOf(fc.Today)
		}
		if prev, err := ShiftMonth(month, -1); err == nil {
			out = append(out, models.Option{ID: prefixMonth + prev, Label: "‹ " + MonthLabel(prev)})
		}
		if nxt, err := ShiftMonth(month, 1); err == nil {
			out = append(out, models.Option{ID: prefixMonth + nxt, Label: MonthLabel(nxt) + " ›"})
		}
		if len(p.SelectedDates) > 0 {
			out = append(out, models.Option{
				ID:          ActionDatesDone,
				Label:       "Done",
				Description: fmt.Sprintf("%d date(s) selected", len(p.SelectedDates)),
			})
		}
		return out

	case models.StepRepeatingSameTime:
		out := []models.Option{{ID: SameTimeYes, Label: "Yes, same time"}}
		if len(UniqueDays(p.SelectedDates)) > 1 {
			out = append(out, models.Option{ID: SameTimeByDay, Label: "Depends on the day"})
		}
		return append(out, models.Option{ID: SameTimeNo, Label: "No, set each date"})

	case models.StepDayBasedTimeGrid:
		pk := NewTimePicker(p)
		out := dayOptions(p, pk, false)
		if pk.AllSet() {
			out = append(out, models.Option{ID: ActionGridDone, Label: "Done"})
		}
		return out

	case models.StepDayBasedTimeSelection:
		return dayOptions(p, NewTimePicker(p), true)

	case models.StepCustomTimeSelection:
		return dateOptions(NewTimePicker(p).Remaining())

	case models.StepDaySpecificTime, models.StepWhenTimePeriod:
		return TimePeriods()

	case models.StepRepeatingSameLocation:
		out := []models.Option{{ID: SameLocationYes, Label: "Yes, same place"}}
		if len(UniqueDays(p.SelectedDates)) > 1 {
			out = append(out, models.Option{ID: SameLocationByDay, Label: "Depends on the day"})
		}
		return append(out, models.Option{ID: SameLocationNo, Label: "No, set each date"})

	case models.StepDayBasedLocationSelection:
		return dayOptions(p, NewLocationPicker(p), true)

	case models.StepCustomLocationSelection:
		return dateOptions(NewLocationPicker(p).Remaining())

	case models.StepDaySpecificLocation, models.StepWhereLocation:
		return e.Locations()

	case models.StepEventNotes:
		return []models.Option{{ID: ActionCreateEvent, Label: "Create event"}}

	case models.StepConfirmation:
		var out []models.Option
		if len(fc.CreatedEvents) > 1 {
			if fc.CurrentEventIndex > 0 {
				out = append(out, models.Option{ID: ActionEventPrev, Label: "‹ Previous"})
			}
			if fc.CurrentEventIndex+1 < len(fc.CreatedEvents) {
				out = append(out, models.Option{ID: ActionEventNext, Label: "Next ›"})
			}
		}
		return append(out,
			models.Option{ID: ActionDone, Label: "Save"},
			models.Option{ID: ActionBackToNotes, Label: "Back"},
		)
	}
	return nil
}

// dayOptions lists the weekdays present in the dates. Days already set on
// pk are skipped when unsetOnly, otherwise labelled with their value.
func dayOptions(p models.EventPreview, pk *Picker, unsetOnly bool) []models.Option {
	var out []models.Option
	for _, d := range UniqueDays(p.SelectedDates) {
		key := dayKey(d.Index)
		opt := models.Option{
			ID:          prefixDay + key,
			Label:       d.Label,
			Description: fmt.Sprintf("%d date(s)", d.Count),
		}
		if v, ok := pk.Value(key); ok {
			if unsetOnly {
				continue
			}
			opt.Label = d.Label + ": " + v
		}
		out = append(out, opt)
	}
	return out
}

func dateOptions(dates []string) []models.Option {
	out := make([]models.Option, 0, len(dates))
	for _, d := range dates {
		out = append(out, models.Option{ID: prefixDate + d, Label: formatDate(d)})
	}
	return out
}

// formatDate renders yyyy-MM-dd as e.g. "Mon, Jan 8".
func formatDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2")
}
