package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"home-organizer/internal/model"
	"home-organizer/internal/schedule"
)

// ReminderService builds human-readable chore digests for Telegram.
type ReminderService struct {
	planner *PlannerService
}

func NewReminderService(planner *PlannerService) *ReminderService {
	return &ReminderService{planner: planner}
}

// DailyDigest renders the chores falling on the given day.
func (s *ReminderService) DailyDigest(ctx context.Context, day time.Time) (string, error) {
	data, err := s.planner.MonthData(ctx, day.Year(), int(day.Month()))
	if err != nil {
		return "", err
	}

	date := schedule.FormatDate(day)
	var todays []schedule.Occurrence
	for _, occ := range data.Occurrences {
		if occ.Date == date {
			todays = append(todays, occ)
		}
	}

	var builder strings.Builder
	builder.WriteString("🧹 <b>Chores for today</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", date))

	if len(todays) == 0 {
		builder.WriteString("— nothing scheduled, enjoy the day")
		return builder.String(), nil
	}

	open := 0
	for _, occ := range todays {
		builder.WriteString(formatOccurrence(occ))
		if occ.Status != model.StatusDone {
			open++
		}
	}
	builder.WriteString(fmt.Sprintf("\n%d of %d still open", open, len(todays)))
	return strings.TrimSpace(builder.String()), nil
}

// MonthDigest renders a compact month overview grouped by date.
func (s *ReminderService) MonthDigest(ctx context.Context, year, month int) (string, error) {
	data, err := s.planner.MonthData(ctx, year, month)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("📅 <b>Chores %04d-%02d</b>\n\n", year, month))
	if len(data.Occurrences) == 0 {
		builder.WriteString("— no chores this month")
		return builder.String(), nil
	}

	lastDate := ""
	for _, occ := range data.Occurrences {
		if occ.Date != lastDate {
			builder.WriteString(fmt.Sprintf("<b>%s</b>\n", occ.Date))
			lastDate = occ.Date
		}
		builder.WriteString(formatOccurrence(occ))
	}
	return strings.TrimSpace(builder.String()), nil
}

func formatOccurrence(occ schedule.Occurrence) string {
	var sb strings.Builder

	icon := "🟢"
	if occ.Status == model.StatusDone {
		icon = "✅"
	}
	sb.WriteString(fmt.Sprintf("%s <b>#%d</b> %s", icon, occ.TaskID, html.EscapeString(strings.TrimSpace(occ.Title))))

	if occ.AssigneeName != "" {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(occ.AssigneeName)))
	} else if occ.AssigneeID != nil {
		// Assignee was deactivated; the id is still on record.
		sb.WriteString(fmt.Sprintf(" <i>(person #%d)</i>", *occ.AssigneeID))
	}
	if occ.Category != "" {
		sb.WriteString(fmt.Sprintf(" · %s", html.EscapeString(occ.Category)))
	}
	if occ.Notes != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(strings.TrimSpace(occ.Notes))))
	}
	sb.WriteByte('\n')
	return sb.String()
}
