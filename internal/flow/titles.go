package flow

import (
	"fmt"
	"strings"

	"github.com/natindo/FamilyFlow/internal/models"
)

// StepTitle returns the prompt shown for step. childNames are the display
// names of the selected children.
func StepTitle(step models.Step, p models.EventPreview, childNames []string) string {
	switch step {
	case models.StepInitial:
		return "What would you like to add?"
	case models.StepEventCategory:
		return "What kind of event is it?"
	case models.StepKeeperCategory:
		return "What kind of keeper is it?"
	case models.StepSportsType:
		return "Which sport?"
	case models.StepEventType:
		return fmt.Sprintf("What kind of %s event?", optionLabel(Sports(), p.Subtype, "sports"))
	case models.StepEventSubtype:
		return fmt.Sprintf("What kind of %s event?", strings.ToLower(optionLabel(EventCategories(), p.Category, "")))
	case models.StepWhichChild:
		if len(childNames) > 0 {
			return "Who is this for? Selected: " + strings.Join(childNames, ", ")
		}
		return "Who is this for?"
	case models.StepWhenDate:
		what := displayName(p.Subtype, p.EventType)
		if len(childNames) > 0 {
			return fmt.Sprintf("When is %s's %s?", childNames[0], what)
		}
		return fmt.Sprintf("When is the %s?", what)
	case models.StepRepeatingSameTime:
		return fmt.Sprintf("Is it at the same time on all %d dates?", len(p.SelectedDates))
	case models.StepDayBasedTimeGrid:
		return "Set a time for each day."
	case models.StepDayBasedTimeSelection:
		return "Which day do you want to set a time for next?"
	case models.StepCustomTimeSelection:
		return "Which date do you want to set a time for?"
	case models.StepDaySpecificTime:
		return fmt.Sprintf("What time on %s?", cursorLabel(p.CurrentDayForTime))
	case models.StepWhenTimePeriod:
		return "What time does it start?"
	case models.StepRepeatingSameLocation:
		return "Is it at the same place every time?"
	case models.StepDayBasedLocationSelection:
		return "Which day do you want to set a place for?"
	case models.StepCustomLocationSelection:
		return "Which date do you want to set a place for?"
	case models.StepDaySpecificLocation:
		return fmt.Sprintf("Where is it on %s?", cursorLabel(p.CurrentDayForLocation))
	case models.StepWhereLocation:
		return "Where is it?"
	case models.StepEventNotes:
		return "Anything else? Type notes or contact details, then tap Create event."
	case models.StepConfirmation:
		return "Here is what will be saved:"
	case models.StepComplete:
		return "All set!"
	}
	return ""
}

// cursorLabel renders a per-day cursor: "Mondays" or "Mon, Jan 8".
func cursorLabel(cursor string) string {
	if idx, ok := parseDayKey(cursor); ok {
		return DayLabel(idx) + "s"
	}
	return formatDate(cursor)
}

func optionLabel(opts []models.Option, id, fallback string) string {
	for _, o := range opts {
		if o.ID == id {
			return o.Label
		}
	}
	return fallback
}
