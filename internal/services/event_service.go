package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/natindo/FamilyFlow/internal/models"
)

// ErrEventNotFound is returned when an event does not exist for the chat.
var ErrEventNotFound = errors.New("event not found")

const eventColumns = `id, chat_id, series_id, kind, event_name, child_name, event_date, event_time,
location, notes, contact_name, phone_number, email, website_url, event_type, category,
start_time, notify_before, notified, created_at`

// EventStore persists wizard output in Postgres.
type EventStore struct {
	pool         *pgxpool.Pool
	loc          *time.Location
	notifyBefore int

	mu      sync.Mutex
	entropy io.Reader
}

// NewEventStore builds a store. Times without a zone are read in loc;
// notifyBefore is the reminder lead in minutes given to new events.
func NewEventStore(pool *pgxpool.Pool, loc *time.Location, notifyBefore int) *EventStore {
	if loc == nil {
		loc = time.Local
	}
	return &EventStore{
		pool:         pool,
		loc:          loc,
		notifyBefore: notifyBefore,
		entropy:      ulid.Monotonic(rand.Reader, 0),
	}
}

// SaveEvents stores one fan-out under a fresh series id and returns the
// stored events in input order.
func (s *EventStore) SaveEvents(ctx context.Context, chatID int64, records []models.EventRecord) ([]models.Event, error) {
	if len(records) == 0 {
		return nil, nil
	}
	seriesID := s.newSeriesID()

	batch := &pgx.Batch{}
	events := make([]models.Event, len(records))
	for i, rec := range records {
		events[i] = models.Event{
			ChatID:       chatID,
			SeriesID:     seriesID,
			EventRecord:  rec,
			StartTime:    StartTime(rec, s.loc),
			NotifyBefore: s.notifyBefore,
		}
		ev := events[i]
		batch.Queue(`
INSERT INTO events (chat_id, series_id, kind, event_name, child_name, event_date, event_time,
    location, notes, contact_name, phone_number, email, website_url, event_type, category,
    start_time, notify_before, notified)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, false)
RETURNING id, created_at
`, ev.ChatID, ev.SeriesID, ev.Kind, ev.EventName, ev.ChildName, dateArg(ev.Date, s.loc), ev.Time,
			ev.Location, ev.Notes, ev.ContactName, ev.PhoneNumber, ev.Email, ev.WebsiteURL, ev.EventType, ev.Category,
			ev.StartTime, ev.NotifyBefore)
	}

	br := s.pool.SendBatch(ctx, batch)
	for i := range events {
		if err := br.QueryRow().Scan(&events[i].ID, &events[i].CreatedAt); err != nil {
			br.Close()
			return nil, fmt.Errorf("insert event %d of %d: %w", i+1, len(events), err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("insert events: %w", err)
	}
	return events, nil
}

// GetEvent returns the event if it belongs to chatID.
func (s *EventStore) GetEvent(ctx context.Context, chatID int64, id int) (*models.Event, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE chat_id = $1 AND id = $2`, chatID, id)
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return ev, nil
}

// DeleteEvent removes an event by id, only if chat_id matches.
func (s *EventStore) DeleteEvent(ctx context.Context, chatID int64, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM events WHERE chat_id = $1 AND id = $2`, chatID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

// EventsForDay returns events starting on the day containing now.
func (s *EventStore) EventsForDay(ctx context.Context, chatID int64, now time.Time) ([]models.Event, error) {
	start, end := dayBounds(now.In(s.loc))
	return s.query(ctx, `
SELECT `+eventColumns+`
FROM events
WHERE chat_id = $1
  AND start_time >= $2
  AND start_time <  $3
ORDER BY start_time
`, chatID, start, end)
}

// UpcomingEvents returns at most limit events starting after now.
func (s *EventStore) UpcomingEvents(ctx context.Context, chatID int64, now time.Time, limit int) ([]models.Event, error) {
	return s.query(ctx, `
SELECT `+eventColumns+`
FROM events
WHERE chat_id = $1
  AND start_time >= $2
ORDER BY start_time
LIMIT $3
`, chatID, now, limit)
}

// AllEvents returns every event of a chat, dated ones first.
func (s *EventStore) AllEvents(ctx context.Context, chatID int64) ([]models.Event, error) {
	return s.query(ctx, `
SELECT `+eventColumns+`
FROM events
WHERE chat_id = $1
ORDER BY start_time NULLS LAST, id
`, chatID)
}

// DeleteAllForDay removes the events starting on the day containing now.
func (s *EventStore) DeleteAllForDay(ctx context.Context, chatID int64, now time.Time) (int64, error) {
	start, end := dayBounds(now.In(s.loc))
	tag, err := s.pool.Exec(ctx, `
DELETE FROM events
WHERE chat_id = $1
  AND start_time >= $2
  AND start_time <  $3
`, chatID, start, end)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DueReminders finds events whose reminder lead has been reached.
func (s *EventStore) DueReminders(ctx context.Context, now time.Time) ([]models.Event, error) {
	return s.query(ctx, `
SELECT `+eventColumns+`
FROM events
WHERE notified = false
  AND start_time IS NOT NULL
  AND start_time > $1
  AND (start_time - $1) <= (notify_before * INTERVAL '1 minute')
`, now)
}

func (s *EventStore) MarkNotified(ctx context.Context, id int) error {
	_, err := s.pool.Exec(ctx, `UPDATE events SET notified = true WHERE id = $1`, id)
	return err
}

func (s *EventStore) query(ctx context.Context, sql string, args ...any) ([]models.Event, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ev)
	}
	return result, rows.Err()
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var (
		e    models.Event
		date *time.Time
	)
	err := row.Scan(
		&e.ID, &e.ChatID, &e.SeriesID, &e.Kind, &e.EventName, &e.ChildName, &date, &e.Time,
		&e.Location, &e.Notes, &e.ContactName, &e.PhoneNumber, &e.Email, &e.WebsiteURL, &e.EventType, &e.Category,
		&e.StartTime, &e.NotifyBefore, &e.Notified, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if date != nil {
		e.Date = date.Format(dateLayout)
	}
	return &e, nil
}

func (s *EventStore) newSeriesID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
