package flow

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/natindo/FamilyFlow/internal/models"
)

// Engine computes wizard transitions. It holds the read-only inputs a
// session consumes: the child roster and the location directory.
type Engine struct {
	children  []models.Child
	locations []models.Option
}

// NewEngine builds an engine. A nil directory falls back to Locations().
func NewEngine(children []models.Child, locations []models.Option) *Engine {
	if locations == nil {
		locations = Locations()
	}
	return &Engine{
		children:  append([]models.Child(nil), children...),
		locations: append([]models.Option(nil), locations...),
	}
}

func (e *Engine) Children() []models.Child { return append([]models.Child(nil), e.children...) }

func (e *Engine) Locations() []models.Option { return append([]models.Option(nil), e.locations...) }

// Transition applies optionID chosen on step and returns the new session.
// fc is never modified. Ids a step does not understand leave everything but
// the recorded selection unchanged.
func (e *Engine) Transition(fc models.FlowContext, step models.Step, optionID string) models.FlowContext {
	next := fc.Clone()
	next.Selections[step] = optionID
	p := &next.Preview

	switch step {
	case models.StepInitial:
		switch optionID {
		case models.KindEvent:
			p.Type = optionID
			next.Step = models.StepEventCategory
		case models.KindKeeper:
			p.Type = optionID
			next.Step = models.StepKeeperCategory
		}

	case models.StepEventCategory:
		if !hasOption(EventCategories(), optionID) {
			break
		}
		p.Category = optionID
		if optionID == "sports" {
			next.Step = models.StepSportsType
		} else {
			next.Step = models.StepEventSubtype
		}

	case models.StepKeeperCategory:
		if !hasOption(KeeperCategories(), optionID) {
			break
		}
		p.Category = optionID
		p.Subtype = optionID
		next.Step = models.StepWhichChild

	case models.StepSportsType:
		if !hasOption(Sports(), optionID) {
			break
		}
		p.Subtype = optionID
		next.Step = models.StepEventType

	case models.StepEventSubtype:
		if !hasOption(SubtypesFor(p.Category), optionID) {
			break
		}
		p.Subtype = optionID
		next.Step = models.StepWhichChild

	case models.StepEventType:
		if !hasOption(SportEventTypes(), optionID) {
			break
		}
		p.EventType = optionID
		next.Step = models.StepWhichChild

	case models.StepWhichChild:
		if !e.hasChild(optionID) {
			break
		}
		p.SelectedChildren = toggle(p.SelectedChildren, optionID)
		p.Child = ""
		if len(p.SelectedChildren) > 0 {
			p.Child = p.SelectedChildren[0]
		}

	case models.StepWhenDate:
		selectDate(&next, optionID)

	case models.StepRepeatingSameTime:
		switch optionID {
		case SameTimeYes:
			p.CurrentTimePattern = models.PatternSame
			p.RepeatingSameTime = true
			next.Step = models.StepWhenTimePeriod
		case SameTimeByDay:
			p.CurrentTimePattern = models.PatternDayBased
			p.RepeatingSameTime = false
			p.DayBasedTimes = make(map[string]string)
			next.Step = models.StepDayBasedTimeGrid
		case SameTimeNo:
			p.CurrentTimePattern = models.PatternCustom
			p.RepeatingSameTime = false
			next.Step = models.StepCustomTimeSelection
		}

	case models.StepDayBasedTimeGrid:
		if optionID == ActionGridDone {
			if NewTimePicker(*p).AllSet() {
				next.Step = afterTime(*p)
			}
			break
		}
		fallthrough

	case models.StepDayBasedTimeSelection:
		if key, ok := presentDay(*p, optionID); ok {
			p.CurrentDayForTime = key
			next.Step = models.StepDaySpecificTime
		}

	case models.StepCustomTimeSelection:
		if date, ok := presentDate(*p, optionID); ok {
			p.CurrentDayForTime = date
			next.Step = models.StepDaySpecificTime
		}

	case models.StepDaySpecificTime:
		pk := NewTimePicker(*p)
		if !pk.Set(p.CurrentDayForTime, strings.TrimSpace(optionID)) {
			break
		}
		pk.Commit(p)
		if rest := pk.Remaining(); len(rest) > 0 {
			p.CurrentDayForTime = rest[0]
			if pk.ByDate() {
				next.Step = models.StepCustomTimeSelection
			} else {
				next.Step = models.StepDayBasedTimeSelection
			}
			break
		}
		next.Step = afterTime(*p)

	case models.StepWhenTimePeriod:
		if t := strings.TrimSpace(optionID); t != "" {
			p.Time = t
			p.CurrentTimePattern = models.PatternSame
			next.Step = afterTime(*p)
		}

	case models.StepRepeatingSameLocation:
		switch optionID {
		case SameLocationYes:
			p.CurrentLocationPattern = models.PatternSame
			p.RepeatingSameLocation = true
			next.Step = models.StepWhereLocation
		case SameLocationByDay:
			p.CurrentLocationPattern = models.PatternDayBased
			p.RepeatingSameLocation = false
			p.DayBasedLocations = make(map[int]string)
			p.CurrentDayForLocation = ""
			if days := UniqueDays(p.SelectedDates); len(days) > 0 {
				p.CurrentDayForLocation = dayKey(days[0].Index)
			}
			next.Step = models.StepDayBasedLocationSelection
		case SameLocationNo:
			p.CurrentLocationPattern = models.PatternCustom
			p.RepeatingSameLocation = false
			p.DateBasedLocations = make(map[string]string)
			next.Step = models.StepCustomLocationSelection
		}

	case models.StepDayBasedLocationSelection:
		if key, ok := presentDay(*p, optionID); ok {
			p.CurrentDayForLocation = key
			next.Step = models.StepDaySpecificLocation
		}

	case models.StepCustomLocationSelection:
		if date, ok := presentDate(*p, optionID); ok {
			p.CurrentDayForLocation = date
			next.Step = models.StepDaySpecificLocation
		}

	case models.StepDaySpecificLocation:
		pk := NewLocationPicker(*p)
		if !pk.Set(p.CurrentDayForLocation, e.locationValue(optionID)) {
			break
		}
		pk.Commit(p)
		if rest := pk.Remaining(); len(rest) > 0 {
			p.CurrentDayForLocation = rest[0]
			if pk.ByDate() {
				next.Step = models.StepCustomLocationSelection
			} else {
				next.Step = models.StepDayBasedLocationSelection
			}
			break
		}
		next.Step = models.StepEventNotes

	case models.StepWhereLocation:
		if loc := e.locationValue(optionID); loc != "" {
			p.Location = loc
			p.CurrentLocationPattern = models.PatternSame
			next.Step = models.StepEventNotes
		}

	case models.StepEventNotes:
		if optionID != ActionCreateEvent {
			break
		}
		p.Details = next.Draft
		next.CreatedEvents = e.fanOut(*p)
		next.CurrentEventIndex = 0
		next.Step = models.StepConfirmation

	case models.StepConfirmation:
		switch optionID {
		case ActionDone:
			next.Step = models.StepComplete
		case ActionBackToNotes:
			next.Step = models.StepEventNotes
		case ActionEventNext:
			if next.CurrentEventIndex+1 < len(next.CreatedEvents) {
				next.CurrentEventIndex++
			}
		case ActionEventPrev:
			if next.CurrentEventIndex > 0 {
				next.CurrentEventIndex--
			}
		}
	}

	return next
}

// selectDate handles every answer of the date step.
func selectDate(fc *models.FlowContext, optionID string) {
	p := &fc.Preview
	switch {
	case optionID == ActionDatesDone:
		if len(p.SelectedDates) == 0 {
			return
		}
		p.IsRepeating = len(p.SelectedDates) > 1
		if p.IsRepeating {
			fc.Step = models.StepRepeatingSameTime
			return
		}
		// One date has a single time and place; per-day answers from an
		// earlier, longer selection no longer apply.
		p.CurrentTimePattern = models.PatternSame
		p.CurrentLocationPattern = models.PatternSame
		fc.Step = models.StepWhenTimePeriod

	case strings.HasPrefix(optionID, prefixDate):
		date := strings.TrimPrefix(optionID, prefixDate)
		if !isDate(date) {
			return
		}
		p.SelectedDates = toggle(p.SelectedDates, date)
		if p.SelectedMonth == "" {
			p.SelectedMonth = monthOf(date)
		}

	case strings.HasPrefix(optionID, prefixMonth):
		month := strings.TrimPrefix(optionID, prefixMonth)
		if _, err := ParseMonthID(month); err != nil {
			return
		}
		navigateMonth(p, fc.Today, month)

	default:
		dates, ok := quickDateValues(optionID, fc.Today)
		if !ok {
			return
		}
		p.SelectedDates = dates
		p.SelectedMonth = monthOf(dates[0])
		p.IsComingFromOtherMonth = false
		p.HasPatternPreselection = false
		p.MonthToExclude = ""
	}
}

// navigateMonth switches the grid to month. When the dates picked so far
// form a recurring pattern, the new month's matching dates from today on
// are preselected. The month the pattern came from and months that already
// hold a selected date are left as the user set them.
func navigateMonth(p *models.EventPreview, today, month string) {
	prev := p.SelectedMonth
	p.SelectedMonth = month

	p.IsComingFromOtherMonth = false
	for _, d := range p.SelectedDates {
		if monthOf(d) != month {
			p.IsComingFromOtherMonth = true
			break
		}
	}

	if month == prev || month == p.MonthToExclude || hasDateIn(p.SelectedDates, month) {
		return
	}
	pattern, ok := DetectPattern(p.SelectedDates)
	if !ok {
		return
	}
	for _, d := range datesInMonthOn(month, pattern) {
		if today != "" && d < today {
			continue
		}
		if !contains(p.SelectedDates, d) {
			p.SelectedDates = append(p.SelectedDates, d)
		}
	}
	p.HasPatternPreselection = true
	if p.MonthToExclude == "" {
		p.MonthToExclude = prev
	}
}

func hasDateIn(dates []string, month string) bool {
	for _, d := range dates {
		if monthOf(d) == month {
			return true
		}
	}
	return false
}

// fanOut expands the preview into one record per selected date.
func (e *Engine) fanOut(p models.EventPreview) []models.EventRecord {
	base := models.EventRecord{
		EventName:   displayName(p.Subtype, p.EventType),
		ChildName:   e.childNames(p.SelectedChildren),
		Time:        p.Time,
		Location:    p.Location,
		Notes:       p.Notes,
		ContactName: p.ContactName,
		PhoneNumber: p.PhoneNumber,
		Email:       p.Email,
		WebsiteURL:  p.WebsiteURL,
		EventType:   p.EventType,
		Category:    p.Category,
		Kind:        p.Type,
	}
	if len(p.SelectedDates) == 0 {
		return []models.EventRecord{base}
	}

	times := timeOverrides(p)
	places := locationOverrides(p)
	out := make([]models.EventRecord, 0, len(p.SelectedDates))
	for _, d := range p.SelectedDates {
		rec := base
		rec.Date = d
		rec.Time = resolve(d, base.Time, times...)
		rec.Location = resolve(d, base.Location, places...)
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func displayName(parts ...string) string {
	caser := cases.Title(language.English)
	var words []string
	for _, part := range parts {
		part = strings.TrimSpace(strings.ReplaceAll(part, "-", " "))
		if part == "" {
			continue
		}
		words = append(words, caser.String(part))
	}
	if len(words) == 0 {
		return "Event"
	}
	return strings.Join(words, " ")
}

func (e *Engine) childNames(ids []string) string {
	return strings.Join(e.childNameList(ids), ", ")
}

func (e *Engine) childName(id string) string {
	for _, c := range e.children {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

func (e *Engine) hasChild(id string) bool {
	for _, c := range e.children {
		if c.ID == id {
			return true
		}
	}
	return false
}

// locationValue maps a directory id to its label; anything else is free text.
func (e *Engine) locationValue(id string) string {
	for _, l := range e.locations {
		if l.ID == id {
			return l.Label
		}
	}
	return strings.TrimSpace(id)
}

func afterTime(p models.EventPreview) models.Step {
	if len(p.SelectedDates) > 1 {
		return models.StepRepeatingSameLocation
	}
	return models.StepWhereLocation
}

// presentDay accepts "day-<n>" only for weekdays present in the dates.
func presentDay(p models.EventPreview, optionID string) (string, bool) {
	if !strings.HasPrefix(optionID, prefixDay) {
		return "", false
	}
	idx, ok := parseDayKey(strings.TrimPrefix(optionID, prefixDay))
	if !ok {
		return "", false
	}
	if _, ok := GroupByDay(p.SelectedDates)[idx]; !ok {
		return "", false
	}
	return dayKey(idx), true
}

func presentDate(p models.EventPreview, optionID string) (string, bool) {
	if !strings.HasPrefix(optionID, prefixDate) {
		return "", false
	}
	date := strings.TrimPrefix(optionID, prefixDate)
	return date, contains(p.SelectedDates, date)
}

func toggle(list []string, id string) []string {
	out := make([]string, 0, len(list)+1)
	found := false
	for _, v := range list {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func hasOption(opts []models.Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}
