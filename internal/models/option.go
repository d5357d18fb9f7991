package models

// Option is one selectable answer for a step.
type Option struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`
}

// Child is an entry of the family roster.
type Child struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Role string `yaml:"role,omitempty"`
}

// Place is a location search candidate.
type Place struct {
	Name    string
	Address string
}

// DayInfo describes one weekday present in a set of selected dates.
type DayInfo struct {
	Index int
	Label string
	Count int
}
