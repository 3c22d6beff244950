package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"home-organizer/internal/command"
	"home-organizer/internal/repository"
	"home-organizer/internal/schedule"
	"home-organizer/internal/service"
)

// Bot is the Telegram surface of the organizer. It turns /chore messages
// into tasks via the command parser and renders resolved occurrences.
type Bot struct {
	api         *tgbotapi.BotAPI
	personRepo  *repository.PersonRepository
	taskSvc     *service.TaskService
	reminderSvc *service.ReminderService
}

func New(token string, personRepo *repository.PersonRepository, taskSvc *service.TaskService, reminderSvc *service.ReminderService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:         api,
		personRepo:  personRepo,
		taskSvc:     taskSvc,
		reminderSvc: reminderSvc,
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil || update.Message.From == nil {
			continue
		}
		if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
			continue
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			log.Printf("handle message: %v", err)
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if !msg.IsCommand() {
		return b.sendText(msg.Chat.ID, "I only understand commands here. Try /chore or /help.")
	}

	log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())

	switch msg.Command() {
	case "start":
		return b.handleStart(msg)
	case "help":
		return b.handleHelp(msg)
	case "chore":
		return b.handleChore(ctx, msg)
	case "today":
		return b.handleToday(ctx, msg)
	case "month":
		return b.handleMonth(ctx, msg)
	case "done":
		return b.handleDone(ctx, msg)
	case "stop":
		return b.handleStop(ctx, msg)
	case "people":
		return b.handlePeople(ctx, msg)
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf(
		"👋 Hi %s!\n<b>I keep track of the household chores.</b>\n\nCommands:\n"+
			"• /chore &lt;text&gt; — add a chore, e.g. <code>/chore take out trash weekly mon assignee=Alex</code>\n"+
			"• /today — chores scheduled for today\n"+
			"• /month [YYYY-MM] — full month overview\n"+
			"• /done &lt;task id&gt; [date] — mark an occurrence done\n"+
			"• /stop &lt;task id&gt; [date] — stop a chore from a date forward\n"+
			"• /people — household members\n"+
			"• /help — hints",
		escape(name),
	)
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Hints</b>\n" +
		"• /chore water plants every 3 days\n" +
		"• /chore vacuum weekly mon,thu assignee=Sam\n" +
		"• /chore pay rent monthly day=1\n" +
		"• /done 3 — mark chore #3 done for today\n" +
		"• /done 3 2024-02-10 — mark it done for a specific date\n" +
		"• /stop 3 2024-03-01 — last occurrence will be the day before\n" +
		"Without a frequency a chore repeats weekly from today."
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleChore(ctx context.Context, msg *tgbotapi.Message) error {
	draft := command.ParseBody(msg.CommandArguments())
	if draft == nil {
		return b.sendText(msg.Chat.ID, "Tell me what the chore is: /chore wash dishes daily")
	}

	input := service.TaskInput{
		Title: draft.Title,
		Notes: strings.TrimSpace(msg.Text),
		Recurrence: service.RecurrenceInput{
			Freq:       draft.Freq,
			Interval:   draft.Interval,
			ByWeekday:  draft.ByWeekday,
			ByMonthday: draft.ByMonthday,
		},
	}
	if draft.Assignee != "" {
		person, err := b.personRepo.FindActiveByName(ctx, draft.Assignee)
		if err == nil {
			input.AssigneeID = &person.ID
		} else {
			log.Printf("[info] assignee hint %q did not match an active person", draft.Assignee)
		}
	}

	task, err := b.taskSvc.CreateTask(ctx, input)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not save the chore: %s", escape(err.Error())))
	}

	log.Printf("[info] chore created id=%d via chat=%d", task.ID, msg.Chat.ID)

	var summary strings.Builder
	summary.WriteString("✅ <b>Chore saved</b>\n")
	summary.WriteString(fmt.Sprintf("• <b>ID:</b> %d\n", task.ID))
	summary.WriteString(fmt.Sprintf("• <b>Title:</b> %s\n", escape(task.Title)))
	if input.AssigneeID != nil {
		summary.WriteString(fmt.Sprintf("• <b>Assignee:</b> %s\n", escape(draft.Assignee)))
	}
	freq := draft.Freq
	if freq == "" {
		freq = schedule.FreqWeekly
	}
	summary.WriteString(fmt.Sprintf("• <b>Repeats:</b> %s, every %d\n", freq, draft.Interval))
	return b.sendText(msg.Chat.ID, strings.TrimSpace(summary.String()))
}

func (b *Bot) handleToday(ctx context.Context, msg *tgbotapi.Message) error {
	text, err := b.reminderSvc.DailyDigest(ctx, time.Now())
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not build the digest: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleMonth(ctx context.Context, msg *tgbotapi.Message) error {
	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
		parsed, err := time.Parse("2006-01", args)
		if err != nil {
			return b.sendText(msg.Chat.ID, "Use /month or /month YYYY-MM, e.g. /month 2024-03")
		}
		year, month = parsed.Year(), int(parsed.Month())
	}

	text, err := b.reminderSvc.MonthDigest(ctx, year, month)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not build the overview: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleDone(ctx context.Context, msg *tgbotapi.Message) error {
	taskID, date, err := parseTaskAndDate(msg.CommandArguments())
	if err != nil {
		return b.sendText(msg.Chat.ID, "Usage: /done <task id> [YYYY-MM-DD]")
	}

	instance, err := b.taskSvc.SetOccurrenceStatus(ctx, taskID, date, "done", nil)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return b.sendText(msg.Chat.ID, "Chore not found.")
		case errors.Is(err, service.ErrValidation):
			return b.sendText(msg.Chat.ID, "That date does not parse. Use YYYY-MM-DD.")
		default:
			return b.sendText(msg.Chat.ID, fmt.Sprintf("Error: %s", escape(err.Error())))
		}
	}
	return b.sendText(msg.Chat.ID, fmt.Sprintf("✅ Chore #%d marked done for %s.", taskID, instance.Date))
}

func (b *Bot) handleStop(ctx context.Context, msg *tgbotapi.Message) error {
	taskID, date, err := parseTaskAndDate(msg.CommandArguments())
	if err != nil {
		return b.sendText(msg.Chat.ID, "Usage: /stop <task id> [YYYY-MM-DD]")
	}

	rule, err := b.taskSvc.StopRecurrence(ctx, taskID, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return b.sendText(msg.Chat.ID, "That chore has no recurrence rule.")
		case errors.Is(err, service.ErrValidation):
			return b.sendText(msg.Chat.ID, "That date does not parse. Use YYYY-MM-DD.")
		default:
			return b.sendText(msg.Chat.ID, fmt.Sprintf("Error: %s", escape(err.Error())))
		}
	}
	return b.sendText(msg.Chat.ID, fmt.Sprintf("🛑 Chore #%d now ends on %s.", taskID, *rule.EndDate))
}

func (b *Bot) handlePeople(ctx context.Context, msg *tgbotapi.Message) error {
	people, err := b.personRepo.ListActive(ctx)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not load people: %s", escape(err.Error())))
	}
	if len(people) == 0 {
		return b.sendText(msg.Chat.ID, "No household members yet. Add them through the web app.")
	}
	var builder strings.Builder
	builder.WriteString("👪 <b>Household</b>\n")
	for _, person := range people {
		builder.WriteString(fmt.Sprintf("• %s\n", escape(strings.TrimSpace(person.Name))))
	}
	return b.sendText(msg.Chat.ID, strings.TrimSpace(builder.String()))
}

// SendDigest pushes the daily digest to the configured chat. Wired to the
// cron scheduler in main.
func (b *Bot) SendDigest(ctx context.Context, chatID int64) error {
	text, err := b.reminderSvc.DailyDigest(ctx, time.Now())
	if err != nil {
		return err
	}
	return b.sendText(chatID, text)
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

func parseTaskAndDate(args string) (uint, string, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0, "", fmt.Errorf("task id is required")
	}
	id64, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("task id must be a number")
	}
	date := schedule.FormatDate(time.Now())
	if len(fields) > 1 {
		date = fields[1]
	}
	return uint(id64), date, nil
}

func escape(s string) string {
	return html.EscapeString(s)
}
