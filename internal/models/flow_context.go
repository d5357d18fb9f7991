package models

// FlowContext is one wizard session. It is owned by a single dialog and
// replaced as a whole on every transition.
type FlowContext struct {
	Step       Step
	Selections map[Step]string
	IsEditMode bool
	// EditingID is the stored event being revised when IsEditMode is set.
	EditingID int
	// Today is the session's clock reading (yyyy-MM-dd).
	Today   string
	Preview EventPreview
	// Draft holds free text typed on the notes step until create-event.
	Draft             Details
	CreatedEvents     []EventRecord
	CurrentEventIndex int
}

// EventPreview accumulates every answer given so far.
type EventPreview struct {
	Type      string
	Category  string
	Subtype   string
	EventType string

	Child            string
	SelectedChildren []string
	SelectedDates    []string

	SelectedMonth          string
	IsComingFromOtherMonth bool
	MonthToExclude         string
	HasPatternPreselection bool

	Time     string
	Location string

	// DayBasedTimes is keyed by Monday-first weekday ("0".."6") or by date.
	DayBasedTimes      map[string]string
	DayBasedLocations  map[int]string
	DateBasedLocations map[string]string

	CurrentTimePattern     Pattern
	CurrentLocationPattern Pattern
	// Cursors into the per-day sub-flows: a weekday index or a date.
	CurrentDayForTime     string
	CurrentDayForLocation string

	Details

	RepeatingSameTime     bool
	RepeatingSameLocation bool
	IsRepeating           bool
}

// Details are the free-text fields attached to every generated event.
type Details struct {
	Notes       string
	ContactName string
	PhoneNumber string
	Email       string
	WebsiteURL  string
}

// Clone returns a deep copy of the session.
func (fc FlowContext) Clone() FlowContext {
	out := fc
	out.Selections = make(map[Step]string, len(fc.Selections))
	for k, v := range fc.Selections {
		out.Selections[k] = v
	}
	out.Preview = fc.Preview.Clone()
	if fc.CreatedEvents != nil {
		out.CreatedEvents = append([]EventRecord(nil), fc.CreatedEvents...)
	}
	return out
}

// Clone returns a deep copy of the preview.
func (p EventPreview) Clone() EventPreview {
	out := p
	if p.SelectedChildren != nil {
		out.SelectedChildren = append([]string(nil), p.SelectedChildren...)
	}
	if p.SelectedDates != nil {
		out.SelectedDates = append([]string(nil), p.SelectedDates...)
	}
	if p.DayBasedTimes != nil {
		out.DayBasedTimes = make(map[string]string, len(p.DayBasedTimes))
		for k, v := range p.DayBasedTimes {
			out.DayBasedTimes[k] = v
		}
	}
	if p.DayBasedLocations != nil {
		out.DayBasedLocations = make(map[int]string, len(p.DayBasedLocations))
		for k, v := range p.DayBasedLocations {
			out.DayBasedLocations[k] = v
		}
	}
	if p.DateBasedLocations != nil {
		out.DateBasedLocations = make(map[string]string, len(p.DateBasedLocations))
		for k, v := range p.DateBasedLocations {
			out.DateBasedLocations[k] = v
		}
	}
	return out
}
