package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/natindo/FamilyFlow/internal/flow"
	"github.com/natindo/FamilyFlow/internal/log"
	"github.com/natindo/FamilyFlow/internal/models"
)

const upcomingLimit = 10

// Sender is the subset of *tgbotapi.BotAPI the bot talks through.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// EventStore is where finished wizard sessions are saved.
type EventStore interface {
	SaveEvents(ctx context.Context, chatID int64, records []models.EventRecord) ([]models.Event, error)
	GetEvent(ctx context.Context, chatID int64, id int) (*models.Event, error)
	DeleteEvent(ctx context.Context, chatID int64, id int) error
	EventsForDay(ctx context.Context, chatID int64, now time.Time) ([]models.Event, error)
	UpcomingEvents(ctx context.Context, chatID int64, now time.Time, limit int) ([]models.Event, error)
	AllEvents(ctx context.Context, chatID int64) ([]models.Event, error)
	DeleteAllForDay(ctx context.Context, chatID int64, now time.Time) (int64, error)
}

// Bot routes Telegram updates to per-chat wizard sessions. Updates are
// handled one at a time from Run, so sessions need no locking.
type Bot struct {
	api      Sender
	store    EventStore
	engine   *flow.Engine
	searcher flow.LocationSearcher
	loc      *time.Location
	now      func() time.Time

	sessions map[int64]*flow.Flow
}

func New(api Sender, store EventStore, engine *flow.Engine, searcher flow.LocationSearcher, loc *time.Location) *Bot {
	if loc == nil {
		loc = time.Local
	}
	if searcher == nil {
		searcher = flow.NewDirectorySearcher(engine.Locations())
	}
	return &Bot{
		api:      api,
		store:    store,
		engine:   engine,
		searcher: searcher,
		loc:      loc,
		now:      time.Now,
		sessions: make(map[int64]*flow.Flow),
	}
}

// NewAPI connects to Telegram and registers the command menu.
func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = false

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "help", Description: "Show help"},
		{Command: "create", Description: "Add an event or keeper"},
		{Command: "list", Description: "Today's events"},
		{Command: "upcoming", Description: "Next events"},
		{Command: "edit", Description: "Edit an event"},
		{Command: "delete", Description: "Delete an event"},
		{Command: "export", Description: "Download a calendar file"},
		{Command: "cancel", Description: "Abort the current wizard"},
	}
	if _, err := api.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		return nil, fmt.Errorf("set commands: %w", err)
	}
	log.Info("bot initialized", "user", api.Self.UserName)
	return api, nil
}

// Run handles updates until ctx is cancelled or the channel closes.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.Chat == nil {
		return
	}
	if update.Message.IsCommand() {
		b.handleCommand(ctx, update.Message)
		return
	}
	b.handleText(ctx, update.Message)
}

// Session returns the active wizard of a chat, if any.
func (b *Bot) Session(chatID int64) (*flow.Flow, bool) {
	f, ok := b.sessions[chatID]
	return f, ok
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Error("telegram send failed", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}
