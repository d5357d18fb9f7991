package flow

import "github.com/natindo/FamilyFlow/internal/models"

type pickerKind int

const (
	pickTime pickerKind = iota
	pickLocation
)

// Picker tracks a "set per day" or "set per date" sub-flow. Keys are the
// weekdays actually present in the selected dates, or the dates themselves
// when the custom pattern is active.
type Picker struct {
	kind   pickerKind
	byDate bool
	keys   []string
	values map[string]string
}

// NewTimePicker starts from the times already recorded on p.
func NewTimePicker(p models.EventPreview) *Picker {
	pk := newPicker(pickTime, p.CurrentTimePattern == models.PatternCustom, p.SelectedDates)
	for _, k := range pk.keys {
		if v, ok := p.DayBasedTimes[k]; ok {
			pk.values[k] = v
		}
	}
	return pk
}

// NewLocationPicker starts from the locations already recorded on p.
func NewLocationPicker(p models.EventPreview) *Picker {
	pk := newPicker(pickLocation, p.CurrentLocationPattern == models.PatternCustom, p.SelectedDates)
	for _, k := range pk.keys {
		var (
			v  string
			ok bool
		)
		if pk.byDate {
			v, ok = p.DateBasedLocations[k]
		} else if idx, isDay := parseDayKey(k); isDay {
			v, ok = p.DayBasedLocations[idx]
		}
		if ok {
			pk.values[k] = v
		}
	}
	return pk
}

func newPicker(kind pickerKind, byDate bool, dates []string) *Picker {
	pk := &Picker{kind: kind, byDate: byDate, values: make(map[string]string)}
	if byDate {
		pk.keys = sortedDates(dates)
	} else {
		for _, d := range UniqueDays(dates) {
			pk.keys = append(pk.keys, dayKey(d.Index))
		}
	}
	return pk
}

// ByDate reports whether keys are dates rather than weekdays.
func (pk *Picker) ByDate() bool { return pk.byDate }

func (pk *Picker) Keys() []string { return append([]string(nil), pk.keys...) }

// Set records value for key. Keys outside the picker are ignored.
func (pk *Picker) Set(key, value string) bool {
	if value == "" || !pk.has(key) {
		return false
	}
	pk.values[key] = value
	return true
}

func (pk *Picker) Value(key string) (string, bool) {
	v, ok := pk.values[key]
	return v, ok
}

// Remaining lists keys still without a value, in key order.
func (pk *Picker) Remaining() []string {
	var out []string
	for _, k := range pk.keys {
		if _, ok := pk.values[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

func (pk *Picker) AllSet() bool { return len(pk.Remaining()) == 0 }

// Commit merges the picked values into p.
func (pk *Picker) Commit(p *models.EventPreview) {
	switch pk.kind {
	case pickTime:
		if p.DayBasedTimes == nil {
			p.DayBasedTimes = make(map[string]string)
		}
		for k, v := range pk.values {
			p.DayBasedTimes[k] = v
		}
	case pickLocation:
		if pk.byDate {
			if p.DateBasedLocations == nil {
				p.DateBasedLocations = make(map[string]string)
			}
			for k, v := range pk.values {
				p.DateBasedLocations[k] = v
			}
			return
		}
		if p.DayBasedLocations == nil {
			p.DayBasedLocations = make(map[int]string)
		}
		for k, v := range pk.values {
			if idx, ok := parseDayKey(k); ok {
				p.DayBasedLocations[idx] = v
			}
		}
	}
}

func (pk *Picker) has(key string) bool {
	for _, k := range pk.keys {
		if k == key {
			return true
		}
	}
	return false
}
