package flow

import "github.com/natindo/FamilyFlow/internal/models"

// Back returns the session moved to the step before fc.Step. Answers stay
// in the preview so the earlier question shows what was chosen.
func (e *Engine) Back(fc models.FlowContext) models.FlowContext {
	next := fc.Clone()
	next.Step = previousStep(fc)
	return next
}

func previousStep(fc models.FlowContext) models.Step {
	p := fc.Preview
	multi := len(p.SelectedDates) > 1

	switch fc.Step {
	case models.StepEventCategory, models.StepKeeperCategory:
		return models.StepInitial
	case models.StepSportsType, models.StepEventSubtype:
		return models.StepEventCategory
	case models.StepEventType:
		return models.StepSportsType
	case models.StepWhichChild:
		switch {
		case p.Type == models.KindKeeper:
			return models.StepKeeperCategory
		case p.Category == "sports":
			return models.StepEventType
		default:
			return models.StepEventSubtype
		}
	case models.StepWhenDate:
		return models.StepWhichChild
	case models.StepRepeatingSameTime:
		return models.StepWhenDate
	case models.StepWhenTimePeriod:
		if multi {
			return models.StepRepeatingSameTime
		}
		return models.StepWhenDate
	case models.StepDayBasedTimeGrid, models.StepCustomTimeSelection:
		return models.StepRepeatingSameTime
	case models.StepDayBasedTimeSelection:
		return models.StepDayBasedTimeGrid
	case models.StepDaySpecificTime:
		if p.CurrentTimePattern == models.PatternCustom {
			return models.StepCustomTimeSelection
		}
		return models.StepDayBasedTimeGrid
	case models.StepRepeatingSameLocation:
		return lastTimeStep(p)
	case models.StepWhereLocation:
		if multi {
			return models.StepRepeatingSameLocation
		}
		return lastTimeStep(p)
	case models.StepDayBasedLocationSelection, models.StepCustomLocationSelection:
		return models.StepRepeatingSameLocation
	case models.StepDaySpecificLocation:
		if p.CurrentLocationPattern == models.PatternCustom {
			return models.StepCustomLocationSelection
		}
		return models.StepDayBasedLocationSelection
	case models.StepEventNotes:
		switch p.CurrentLocationPattern {
		case models.PatternDayBased:
			return models.StepDayBasedLocationSelection
		case models.PatternCustom:
			return models.StepCustomLocationSelection
		}
		return models.StepWhereLocation
	case models.StepConfirmation:
		return models.StepEventNotes
	case models.StepComplete:
		return models.StepConfirmation
	}
	return fc.Step
}

// lastTimeStep is the step that answered the time question.
func lastTimeStep(p models.EventPreview) models.Step {
	switch p.CurrentTimePattern {
	case models.PatternDayBased:
		return models.StepDayBasedTimeGrid
	case models.PatternCustom:
		return models.StepCustomTimeSelection
	}
	return models.StepWhenTimePeriod
}
