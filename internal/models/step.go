package models

// Step is a position in the event-creation dialog.
type Step int

const (
	StepInitial Step = iota
	StepEventCategory
	StepKeeperCategory
	StepSportsType
	StepEventSubtype
	StepEventType
	StepWhichChild
	StepWhenDate
	StepRepeatingSameTime
	StepDayBasedTimeGrid
	StepDayBasedTimeSelection
	StepCustomTimeSelection
	StepDaySpecificTime
	StepWhenTimePeriod
	StepRepeatingSameLocation
	StepDayBasedLocationSelection
	StepCustomLocationSelection
	StepDaySpecificLocation
	StepWhereLocation
	StepEventNotes
	StepConfirmation
	StepComplete
)

var stepNames = [...]string{
	StepInitial:                   "initial",
	StepEventCategory:             "eventCategory",
	StepKeeperCategory:            "keeperCategory",
	StepSportsType:                "sportsType",
	StepEventSubtype:              "eventSubtype",
	StepEventType:                 "eventType",
	StepWhichChild:                "whichChild",
	StepWhenDate:                  "whenDate",
	StepRepeatingSameTime:         "repeatingSameTime",
	StepDayBasedTimeGrid:          "dayBasedTimeGrid",
	StepDayBasedTimeSelection:     "dayBasedTimeSelection",
	StepCustomTimeSelection:       "customTimeSelection",
	StepDaySpecificTime:           "daySpecificTime",
	StepWhenTimePeriod:            "whenTimePeriod",
	StepRepeatingSameLocation:     "repeatingSameLocation",
	StepDayBasedLocationSelection: "dayBasedLocationSelection",
	StepCustomLocationSelection:   "customLocationSelection",
	StepDaySpecificLocation:       "daySpecificLocation",
	StepWhereLocation:             "whereLocation",
	StepEventNotes:                "eventNotes",
	StepConfirmation:              "confirmation",
	StepComplete:                  "complete",
}

// Steps returns every step in declaration order.
func Steps() []Step {
	out := make([]Step, 0, len(stepNames))
	for i := range stepNames {
		out = append(out, Step(i))
	}
	return out
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

// ParseStep returns the step with the given identifier.
func ParseStep(name string) (Step, bool) {
	for i, n := range stepNames {
		if n == name {
			return Step(i), true
		}
	}
	return 0, false
}

// Pattern records which override strategy is active for time or location.
type Pattern string

const (
	PatternNone     Pattern = ""
	PatternSame     Pattern = "same"
	PatternDayBased Pattern = "dayBased"
	PatternCustom   Pattern = "custom"
)

// Kinds chosen on the first step.
const (
	KindEvent  = "event"
	KindKeeper = "keeper"
)
