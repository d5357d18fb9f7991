package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"

	"github.com/natindo/FamilyFlow/internal/log"
	"github.com/natindo/FamilyFlow/internal/models"
)

// ReminderStore is the part of the event store the notifier reads.
type ReminderStore interface {
	DueReminders(ctx context.Context, now time.Time) ([]models.Event, error)
	MarkNotified(ctx context.Context, id int) error
}

// Messenger delivers a Telegram message.
type Messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier sends a reminder once an event's start is within its
// notify_before lead and flags the event so it is not sent twice.
type Notifier struct {
	store  ReminderStore
	sender Messenger
	loc    *time.Location
	now    func() time.Time
	cron   *cron.Cron
}

func NewNotifier(store ReminderStore, sender Messenger, loc *time.Location) *Notifier {
	if loc == nil {
		loc = time.Local
	}
	return &Notifier{
		store:  store,
		sender: sender,
		loc:    loc,
		now:    time.Now,
		cron:   cron.New(cron.WithLocation(loc)),
	}
}

// Start runs Tick on a cron schedule such as "@every 1m".
func (n *Notifier) Start(schedule string) error {
	if _, err := n.cron.AddFunc(schedule, func() {
		if _, err := n.Tick(context.Background()); err != nil {
			log.Error("reminder tick failed", err)
		}
	}); err != nil {
		return fmt.Errorf("notify schedule %q: %w", schedule, err)
	}
	n.cron.Start()
	log.Info("notifier started", "schedule", schedule)
	return nil
}

// Stop halts the schedule and waits for a running tick.
func (n *Notifier) Stop() {
	<-n.cron.Stop().Done()
}

// Tick sends every due reminder and returns how many were delivered.
// A failed send leaves the event pending for the next tick.
func (n *Notifier) Tick(ctx context.Context) (int, error) {
	now := n.now()
	events, err := n.store.DueReminders(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("find due reminders: %w", err)
	}

	sent := 0
	for _, ev := range events {
		msg := tgbotapi.NewMessage(ev.ChatID, ReminderText(ev, now, n.loc))
		if _, err := n.sender.Send(msg); err != nil {
			log.Error("send reminder", err, "event", ev.ID, "chat", ev.ChatID)
			continue
		}
		if err := n.store.MarkNotified(ctx, ev.ID); err != nil {
			log.Error("mark notified", err, "event", ev.ID)
			continue
		}
		sent++
	}
	if sent > 0 {
		log.Debug("reminders sent", "count", sent)
	}
	return sent, nil
}

// ReminderText renders the reminder for ev as seen at now.
func ReminderText(ev models.Event, now time.Time, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("Reminder!\n")
	b.WriteString(ev.EventName)
	if ev.ChildName != "" {
		b.WriteString(" for " + ev.ChildName)
	}
	b.WriteString("\n")
	if ev.StartTime != nil {
		mins := int(ev.StartTime.Sub(now).Round(time.Minute) / time.Minute)
		fmt.Fprintf(&b, "Starts in %d min at %s\n", mins, ev.StartTime.In(loc).Format("3:04 PM"))
	}
	if ev.Location != "" {
		b.WriteString("Where: " + ev.Location + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
