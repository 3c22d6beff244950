// Package command turns free-text chat messages into draft chore rules.
// Its heuristics live here on purpose: the scheduling core consumes the
// resulting draft through the same construction path as any structured
// caller and never sees these regexes.
package command

import (
	"regexp"
	"strconv"
	"strings"
)

// Draft is the rule shape extracted from a "/chore ..." message. Empty
// fields fall back to the caller's defaults (weekly, interval 1, start
// today), exactly like structured input.
type Draft struct {
	Title      string
	Assignee   string
	Freq       string
	Interval   int
	ByWeekday  string
	ByMonthday string
}

var (
	chorePrefixRe = regexp.MustCompile(`(?i)^/chore\s*`)
	assigneeRe    = regexp.MustCompile(`(?i)assignee=(\S+)`)
	monthdayRe    = regexp.MustCompile(`(?i)day=(\d{1,2})`)
	weekdayRe     = regexp.MustCompile(`(?i)\b(mon|tue|wed|thu|fri|sat|sun)\b`)
	everyRe       = regexp.MustCompile(`(?i)every\s+(\d+)\s+(day|week|month)s?`)
	freqWordRe    = regexp.MustCompile(`(?i)\b(daily|weekly|monthly)\b`)
)

// Parse extracts a draft from a raw message. Returns nil when the text is
// not a /chore command or carries no body.
func Parse(text string) *Draft {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(strings.ToLower(trimmed), "/chore") {
		return nil
	}
	return ParseBody(chorePrefixRe.ReplaceAllString(trimmed, ""))
}

// ParseBody extracts a draft from a message with the /chore prefix
// already stripped (the bot receives commands that way).
func ParseBody(body string) *Draft {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	draft := &Draft{Interval: 1}

	if m := assigneeRe.FindStringSubmatch(body); m != nil {
		draft.Assignee = strings.ReplaceAll(m[1], "_", " ")
	}
	if m := monthdayRe.FindStringSubmatch(body); m != nil {
		draft.ByMonthday = m[1]
	}
	if days := weekdayRe.FindAllString(body, -1); days != nil {
		for i, day := range days {
			days[i] = strings.ToLower(day)
		}
		draft.ByWeekday = strings.Join(days, ",")
	}

	if m := everyRe.FindStringSubmatch(body); m != nil {
		draft.Interval, _ = strconv.Atoi(m[1])
		switch strings.ToLower(m[2]) {
		case "day":
			draft.Freq = "daily"
		case "week":
			draft.Freq = "weekly"
		case "month":
			draft.Freq = "monthly"
		}
	} else if m := freqWordRe.FindString(body); m != "" {
		draft.Freq = strings.ToLower(m)
	}

	title := assigneeRe.ReplaceAllString(body, "")
	title = monthdayRe.ReplaceAllString(title, "")
	title = everyRe.ReplaceAllString(title, "")
	title = freqWordRe.ReplaceAllString(title, "")
	title = weekdayRe.ReplaceAllString(title, "")
	title = strings.Trim(title, " ,")
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		title = body
	}
	draft.Title = title

	return draft
}
