package models

import "time"

// EventRecord is one finalized event produced by the wizard.
type EventRecord struct {
	EventName string
	ChildName string
	Date      string
	Time      string
	Location  string
	Notes     string

	ContactName string
	PhoneNumber string
	Email       string
	WebsiteURL  string

	EventType string
	Category  string
	Kind      string
}

// Event is an EventRecord stored for a chat.
type Event struct {
	ID       int
	ChatID   int64
	SeriesID string
	EventRecord

	// StartTime is nil for records without a date.
	StartTime    *time.Time
	NotifyBefore int
	Notified     bool
	CreatedAt    time.Time
}

// Details returns the record's notes and contact fields.
func (r EventRecord) Details() Details {
	return Details{
		Notes:       r.Notes,
		ContactName: r.ContactName,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		WebsiteURL:  r.WebsiteURL,
	}
}
