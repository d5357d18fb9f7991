package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/natindo/FamilyFlow/internal/export"
	"github.com/natindo/FamilyFlow/internal/flow"
	"github.com/natindo/FamilyFlow/internal/log"
	"github.com/natindo/FamilyFlow/internal/models"
	"github.com/natindo/FamilyFlow/internal/services"
)

const helpText = "/create - add an event or keeper step by step\n" +
	"/list - today's events\n" +
	"/upcoming - the next events\n" +
	"/edit <id> - change an event\n" +
	"/delete <id> - delete an event\n" +
	"/export - download your events as a calendar file\n" +
	"/cancel - abort the current wizard\n" +
	"/help - this help"

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	log.Debug("command", "chat", chatID, "cmd", msg.Command())

	switch msg.Command() {
	case "start":
		b.reply(chatID, "Hi! I keep track of your family's schedule.\n\n"+helpText)
	case "help":
		b.reply(chatID, helpText)
	case "create":
		b.cmdCreate(chatID)
	case "edit", "update":
		b.cmdEdit(ctx, chatID, msg.CommandArguments())
	case "list":
		b.cmdList(ctx, chatID)
	case "upcoming":
		b.cmdUpcoming(ctx, chatID)
	case "delete":
		b.cmdDelete(ctx, chatID, msg.CommandArguments())
	case "cancel":
		b.cmdCancel(chatID)
	case "export":
		b.cmdExport(ctx, chatID)
	default:
		b.reply(chatID, "Unknown command. Use /help")
	}
}

func (b *Bot) cmdCreate(chatID int64) {
	f := flow.New(b.engine, b.now().In(b.loc))
	b.sessions[chatID] = f
	b.send(stepMessage(chatID, f))
}

func (b *Bot) cmdEdit(ctx context.Context, chatID int64, args string) {
	id, ok := parseID(args)
	if !ok {
		b.reply(chatID, "Give the event id: /edit 123")
		return
	}

	ev, err := b.store.GetEvent(ctx, chatID, id)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			b.reply(chatID, "Event not found.")
			return
		}
		log.Error("get event", err, "chat", chatID, "id", id)
		b.reply(chatID, "Could not load the event.")
		return
	}

	f := flow.NewEdit(b.engine, b.now().In(b.loc), ev.ID, ev.EventRecord)
	b.sessions[chatID] = f
	b.reply(chatID, fmt.Sprintf("Editing #%d %s. Walk through the questions again; your earlier answers are kept.", ev.ID, ev.EventName))
	b.send(stepMessage(chatID, f))
}

func (b *Bot) cmdList(ctx context.Context, chatID int64) {
	evs, err := b.store.EventsForDay(ctx, chatID, b.now())
	if err != nil {
		log.Error("events for day", err, "chat", chatID)
		b.reply(chatID, "Could not load today's events.")
		return
	}
	if len(evs) == 0 {
		b.reply(chatID, "Nothing scheduled for today.")
		return
	}

	out := tgbotapi.NewMessage(chatID, "Today:\n"+formatEvents(evs))
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Delete all for today", callbackDeleteToday),
		),
	)
	b.send(out)
}

func (b *Bot) cmdUpcoming(ctx context.Context, chatID int64) {
	evs, err := b.store.UpcomingEvents(ctx, chatID, b.now(), upcomingLimit)
	if err != nil {
		log.Error("upcoming events", err, "chat", chatID)
		b.reply(chatID, "Could not load upcoming events.")
		return
	}
	if len(evs) == 0 {
		b.reply(chatID, "Nothing coming up.")
		return
	}
	b.reply(chatID, "Coming up:\n"+formatEvents(evs))
}

func (b *Bot) cmdDelete(ctx context.Context, chatID int64, args string) {
	id, ok := parseID(args)
	if !ok {
		b.reply(chatID, "Give the event id: /delete 123")
		return
	}
	if err := b.store.DeleteEvent(ctx, chatID, id); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			b.reply(chatID, "Event not found.")
			return
		}
		log.Error("delete event", err, "chat", chatID, "id", id)
		b.reply(chatID, "Could not delete the event.")
		return
	}
	b.reply(chatID, "Event deleted.")
}

func (b *Bot) cmdCancel(chatID int64) {
	if _, ok := b.sessions[chatID]; !ok {
		b.reply(chatID, "Nothing to cancel.")
		return
	}
	delete(b.sessions, chatID)
	b.reply(chatID, "Cancelled.")
}

func (b *Bot) cmdExport(ctx context.Context, chatID int64) {
	evs, err := b.store.AllEvents(ctx, chatID)
	if err != nil {
		log.Error("export events", err, "chat", chatID)
		b.reply(chatID, "Could not export events.")
		return
	}
	if len(evs) == 0 {
		b.reply(chatID, "No events to export yet.")
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  export.FileName(chatID),
		Bytes: export.Render(evs, b.loc, b.now()),
	})
	doc.Caption = fmt.Sprintf("%d event(s)", len(evs))
	b.send(doc)
}

// complete saves a finished session. In edit mode the original event is
// replaced by the new fan-out. A failed save returns the session to the
// confirmation step so Save can be pressed again.
func (b *Bot) complete(ctx context.Context, chatID int64, f *flow.Flow) {
	fc := f.Context()
	saved, err := b.store.SaveEvents(ctx, chatID, f.CreatedEvents())
	if err != nil {
		log.Error("save events", err, "chat", chatID)
		f.Back()
		b.reply(chatID, "Could not save the event. Press Save to try again.")
		b.send(stepMessage(chatID, f))
		return
	}
	delete(b.sessions, chatID)
	if fc.IsEditMode {
		if err := b.store.DeleteEvent(ctx, chatID, fc.EditingID); err != nil && !errors.Is(err, services.ErrEventNotFound) {
			log.Error("delete edited event", err, "chat", chatID, "id", fc.EditingID)
		}
	}
	log.Info("events saved", "chat", chatID, "count", len(saved), "edit", fc.IsEditMode)

	verb := "Saved"
	if fc.IsEditMode {
		verb = "Updated"
	}
	b.reply(chatID, fmt.Sprintf("%s %d event(s):\n%s", verb, len(saved), formatEvents(saved)))
}

func formatEvents(evs []models.Event) string {
	var sb strings.Builder
	for _, e := range evs {
		sb.WriteString(fmt.Sprintf("#%d %s", e.ID, e.EventName))
		if e.ChildName != "" {
			sb.WriteString(" (" + e.ChildName + ")")
		}
		if e.Date != "" {
			sb.WriteString(" - " + e.Date)
		}
		if e.Time != "" {
			sb.WriteString(" " + e.Time)
		}
		if e.Location != "" {
			sb.WriteString(" @ " + e.Location)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func parseID(args string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
