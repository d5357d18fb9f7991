package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/natindo/FamilyFlow/internal/flow"
	"github.com/natindo/FamilyFlow/internal/log"
	"github.com/natindo/FamilyFlow/internal/models"
	"github.com/natindo/FamilyFlow/internal/services"
)

// handleCallbackQuery handles inline button presses. Wizard buttons carry
// option ids and are fed to the chat's session.
func (b *Bot) handleCallbackQuery(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.Message.Chat == nil {
		b.answer(cq, "")
		return
	}
	chatID := cq.Message.Chat.ID

	switch cq.Data {
	case callbackNoop:
		b.answer(cq, "")
		return
	case callbackDeleteToday:
		b.answer(cq, "")
		b.deleteToday(ctx, chatID)
		return
	}

	f, ok := b.sessions[chatID]
	if !ok {
		b.answer(cq, "No active wizard. Use /create")
		return
	}
	b.answer(cq, "")

	before := f.Step()
	f.SelectOption(cq.Data)
	log.Debug("wizard step", "chat", chatID, "option", cq.Data, "from", before, "to", f.Step())

	if f.IsComplete() {
		b.send(tgbotapi.NewEditMessageText(chatID, cq.Message.MessageID, "Saving..."))
		b.complete(ctx, chatID, f)
		return
	}
	b.send(stepEdit(chatID, cq.Message.MessageID, f))
}

func (b *Bot) answer(cq *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, text)); err != nil {
		log.Error("answer callback", err)
	}
}

func (b *Bot) deleteToday(ctx context.Context, chatID int64) {
	n, err := b.store.DeleteAllForDay(ctx, chatID, b.now())
	if err != nil {
		log.Error("delete all for day", err, "chat", chatID)
		b.reply(chatID, "Could not delete today's events.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Deleted %d event(s) for today.", n))
}

// handleText routes typed answers by the session's step.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	f, ok := b.sessions[chatID]
	if !ok {
		b.reply(chatID, "Use /create to add an event, or /help.")
		return
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	switch f.Step() {
	case models.StepWhenDate:
		if _, err := time.Parse(flow.DateLayout, text); err != nil {
			b.reply(chatID, "Type the date as YYYY-MM-DD or tap it on the calendar.")
			return
		}
		f.SelectOption(flow.DateOptionID(text))

	case models.StepDaySpecificTime, models.StepWhenTimePeriod:
		clock, ok := services.ParseClock(text)
		if !ok {
			b.reply(chatID, "Type a time like 4:30 PM or 16:30.")
			return
		}
		f.SelectOption(time.Time{}.Add(clock).Format("3:04 PM"))

	case models.StepDaySpecificLocation, models.StepWhereLocation:
		if b.offerPlaces(ctx, chatID, text) {
			return
		}
		f.SelectOption(text)

	case models.StepEventNotes:
		f.SetDetails(text)

	default:
		b.reply(chatID, "Please pick one of the buttons above.")
		return
	}

	b.send(stepMessage(chatID, f))
}

// offerPlaces searches typed location text. A single hit is chosen
// directly; several are offered as buttons and the caller waits.
func (b *Bot) offerPlaces(ctx context.Context, chatID int64, text string) bool {
	places, err := b.searcher.Search(ctx, text)
	if err != nil {
		log.Error("location search", err, "query", text)
		return false
	}
	switch len(places) {
	case 0:
		return false
	case 1:
		b.sessions[chatID].SelectOption(places[0].Name)
		b.send(stepMessage(chatID, b.sessions[chatID]))
		return true
	}

	opts := make([]models.Option, 0, len(places)+1)
	for _, pl := range places {
		opts = append(opts, models.Option{ID: pl.Name, Label: pl.Name})
	}
	opts = append(opts, models.Option{ID: text, Label: "Use \"" + text + "\""})

	out := tgbotapi.NewMessage(chatID, "Did you mean one of these?")
	if rows := optionRows(opts, 1); len(rows) > 0 {
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	b.send(out)
	return true
}
