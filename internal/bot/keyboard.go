package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/natindo/FamilyFlow/internal/flow"
	"github.com/natindo/FamilyFlow/internal/log"
	"github.com/natindo/FamilyFlow/internal/models"
)

const (
	callbackNoop        = "noop"
	callbackDeleteToday = "delete_all_today"

	// Telegram rejects callback data longer than this.
	maxCallbackData = 64
)

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

func stepMessage(chatID int64, f *flow.Flow) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, stepText(f))
	if kb, ok := keyboard(f); ok {
		msg.ReplyMarkup = kb
	}
	return msg
}

func stepEdit(chatID int64, messageID int, f *flow.Flow) tgbotapi.EditMessageTextConfig {
	kb, _ := keyboard(f)
	return tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, stepText(f), kb)
}

// stepText is the question plus whatever the user needs to see to answer it.
func stepText(f *flow.Flow) string {
	var sb strings.Builder
	sb.WriteString(f.CurrentQuestion())

	p := f.Preview()
	switch f.Step() {
	case models.StepWhenDate:
		if len(p.SelectedDates) > 0 {
			sb.WriteString("\nSelected: " + strings.Join(p.SelectedDates, ", "))
		}
		sb.WriteString("\nTap days on the calendar or type a date (YYYY-MM-DD).")
	case models.StepDaySpecificTime, models.StepWhenTimePeriod:
		sb.WriteString("\nPick a time or type one, e.g. 4:30 PM.")
	case models.StepDaySpecificLocation, models.StepWhereLocation:
		sb.WriteString("\nPick a place or type an address.")
	case models.StepEventNotes:
		if d := f.Context().Draft; d != (models.Details{}) {
			sb.WriteString("\n\n" + formatDetails(d))
		}
	case models.StepConfirmation:
		if rec, ok := f.CurrentEvent(); ok {
			total := len(f.CreatedEvents())
			if total > 1 {
				fmt.Fprintf(&sb, "\n\nEvent %d of %d", f.Context().CurrentEventIndex+1, total)
			}
			sb.WriteString("\n\n" + formatRecord(rec))
		}
	}
	return sb.String()
}

// keyboard renders the step's options. The date step gets a month grid.
func keyboard(f *flow.Flow) (tgbotapi.InlineKeyboardMarkup, bool) {
	opts := f.CurrentButtons()

	var rows [][]tgbotapi.InlineKeyboardButton
	if f.Step() == models.StepWhenDate {
		rows = dateRows(f, opts)
	} else {
		rows = optionRows(opts, columnsFor(f.Step(), len(opts)))
	}

	switch f.Step() {
	case models.StepInitial, models.StepConfirmation, models.StepComplete:
	default:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("‹ Back", flow.ActionBack),
		))
	}

	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func columnsFor(step models.Step, n int) int {
	switch {
	case step == models.StepDaySpecificTime || step == models.StepWhenTimePeriod:
		return 3
	case n > 6:
		return 2
	}
	return 1
}

func optionRows(opts []models.Option, cols int) [][]tgbotapi.InlineKeyboardButton {
	var (
		rows [][]tgbotapi.InlineKeyboardButton
		row  []tgbotapi.InlineKeyboardButton
	)
	for _, o := range opts {
		btn, ok := button(o.Label, o.ID)
		if !ok {
			continue
		}
		row = append(row, btn)
		if len(row) == cols {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func dateRows(f *flow.Flow, opts []models.Option) [][]tgbotapi.InlineKeyboardButton {
	var quick, nav, done []models.Option
	for _, o := range opts {
		switch {
		case o.ID == flow.ActionDatesDone:
			done = append(done, o)
		case strings.HasPrefix(o.ID, "month-"):
			nav = append(nav, o)
		default:
			quick = append(quick, o)
		}
	}

	rows := optionRows(quick, 2)

	p := f.Preview()
	month := p.SelectedMonth
	if month == "" {
		if t, err := time.Parse(flow.DateLayout, f.Context().Today); err == nil {
			month = flow.MonthID(t)
		}
	}
	grid, err := flow.MonthGrid(month)
	if err != nil {
		log.Warn("month grid", "month", month, "err", err)
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(flow.MonthLabel(month), callbackNoop),
		))
		header := make([]tgbotapi.InlineKeyboardButton, 0, len(weekdayHeader))
		for _, d := range weekdayHeader {
			header = append(header, tgbotapi.NewInlineKeyboardButtonData(d, callbackNoop))
		}
		rows = append(rows, header)

		selected := make(map[string]bool, len(p.SelectedDates))
		for _, d := range p.SelectedDates {
			selected[d] = true
		}
		for _, week := range grid {
			row := make([]tgbotapi.InlineKeyboardButton, 0, len(week))
			for _, cell := range week {
				if cell.Date == "" {
					row = append(row, tgbotapi.NewInlineKeyboardButtonData(" ", callbackNoop))
					continue
				}
				label := strconv.Itoa(cell.Day)
				if selected[cell.Date] {
					label = "•" + label
				}
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, flow.DateOptionID(cell.Date)))
			}
			rows = append(rows, row)
		}
	}

	rows = append(rows, optionRows(nav, 2)...)
	return append(rows, optionRows(done, 1)...)
}

func button(label, data string) (tgbotapi.InlineKeyboardButton, bool) {
	if len(data) > maxCallbackData {
		log.Warn("option id too long for callback data", "id", data)
		return tgbotapi.InlineKeyboardButton{}, false
	}
	return tgbotapi.NewInlineKeyboardButtonData(label, data), true
}

func formatRecord(rec models.EventRecord) string {
	lines := []string{rec.EventName}
	if rec.ChildName != "" {
		lines = append(lines, "For: "+rec.ChildName)
	}
	if rec.Date != "" {
		lines = append(lines, "Date: "+rec.Date)
	}
	if rec.Time != "" {
		lines = append(lines, "Time: "+rec.Time)
	}
	if rec.Location != "" {
		lines = append(lines, "Where: "+rec.Location)
	}
	if d := formatDetails(rec.Details()); d != "" {
		lines = append(lines, d)
	}
	return strings.Join(lines, "\n")
}

func formatDetails(d models.Details) string {
	var lines []string
	if d.Notes != "" {
		lines = append(lines, "Notes: "+d.Notes)
	}
	if d.ContactName != "" {
		lines = append(lines, "Contact: "+d.ContactName)
	}
	if d.PhoneNumber != "" {
		lines = append(lines, "Phone: "+d.PhoneNumber)
	}
	if d.Email != "" {
		lines = append(lines, "Email: "+d.Email)
	}
	if d.WebsiteURL != "" {
		lines = append(lines, "Website: "+d.WebsiteURL)
	}
	return strings.Join(lines, "\n")
}
