package flow

import (
	"strings"
	"time"

	"github.com/natindo/FamilyFlow/internal/models"
)

// Flow owns one wizard session and feeds it through the engine. A Flow is
// used by one dialog at a time and is not safe for concurrent use.
type Flow struct {
	engine *Engine
	fc     models.FlowContext
}

// New starts a session on the initial step. now fixes the session's today.
func New(engine *Engine, now time.Time) *Flow {
	return &Flow{engine: engine, fc: newContext(now.Format(DateLayout))}
}

// NewEdit starts a session revising a stored record, prefilled with its
// answers.
func NewEdit(engine *Engine, now time.Time, id int, rec models.EventRecord) *Flow {
	fc := newContext(now.Format(DateLayout))
	fc.IsEditMode = true
	fc.EditingID = id

	p := &fc.Preview
	p.Type = rec.Kind
	p.Category = rec.Category
	p.EventType = rec.EventType
	p.Time = rec.Time
	p.Location = rec.Location
	for _, name := range strings.Split(rec.ChildName, ", ") {
		if cid, ok := engine.childID(name); ok {
			p.SelectedChildren = append(p.SelectedChildren, cid)
		}
	}
	if len(p.SelectedChildren) > 0 {
		p.Child = p.SelectedChildren[0]
	}
	if isDate(rec.Date) {
		p.SelectedDates = []string{rec.Date}
		p.SelectedMonth = monthOf(rec.Date)
	}
	fc.Draft = rec.Details()
	return &Flow{engine: engine, fc: fc}
}

func newContext(today string) models.FlowContext {
	return models.FlowContext{
		Step:       models.StepInitial,
		Selections: make(map[models.Step]string),
		Today:      today,
	}
}

// Context returns a copy of the session.
func (f *Flow) Context() models.FlowContext { return f.fc.Clone() }

func (f *Flow) Step() models.Step { return f.fc.Step }

func (f *Flow) Preview() models.EventPreview { return f.fc.Preview.Clone() }

func (f *Flow) CurrentButtons() []models.Option { return f.engine.Buttons(f.fc) }

func (f *Flow) CurrentQuestion() string {
	return StepTitle(f.fc.Step, f.fc.Preview, f.engine.childNameList(f.fc.Preview.SelectedChildren))
}

// SelectOption applies a button press. The reserved ids ActionNext and
// ActionBack are navigation, everything else goes through the engine.
func (f *Flow) SelectOption(optionID string) {
	switch optionID {
	case ActionNext:
		f.Next()
	case ActionBack:
		f.Back()
	default:
		f.fc = f.engine.Transition(f.fc, f.fc.Step, optionID)
	}
}

// Next leaves the child step. It needs a selected child unless the
// roster is empty.
func (f *Flow) Next() bool {
	if f.fc.Step != models.StepWhichChild {
		return false
	}
	if len(f.fc.Preview.SelectedChildren) == 0 && len(f.engine.children) > 0 {
		return false
	}
	next := f.fc.Clone()
	next.Step = models.StepWhenDate
	if next.Preview.SelectedMonth == "" {
		next.Preview.SelectedMonth = monthOf(next.Today)
	}
	f.fc = next
	return true
}

func (f *Flow) Back() { f.fc = f.engine.Back(f.fc) }

// SetDetails records typed notes and contact fields for create-event.
func (f *Flow) SetDetails(text string) {
	next := f.fc.Clone()
	next.Draft = ParseDetails(text)
	f.fc = next
}

// Reset discards every answer and returns to the initial step.
func (f *Flow) Reset() { f.fc = newContext(f.fc.Today) }

// CreatedEvents returns the records produced by create-event.
func (f *Flow) CreatedEvents() []models.EventRecord {
	return append([]models.EventRecord(nil), f.fc.CreatedEvents...)
}

// CurrentEvent is the created record under the display cursor.
func (f *Flow) CurrentEvent() (models.EventRecord, bool) {
	i := f.fc.CurrentEventIndex
	if i < 0 || i >= len(f.fc.CreatedEvents) {
		return models.EventRecord{}, false
	}
	return f.fc.CreatedEvents[i], true
}

func (f *Flow) IsComplete() bool { return f.fc.Step == models.StepComplete }

func (e *Engine) childNameList(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, e.childName(id))
	}
	return out
}

func (e *Engine) childID(name string) (string, bool) {
	for _, c := range e.children {
		if c.Name == name {
			return c.ID, true
		}
	}
	return "", false
}
