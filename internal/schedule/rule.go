package schedule

import (
	"strconv"
	"strings"
	"time"

	"home-organizer/internal/model"
)

// Frequencies a recurrence rule can carry.
const (
	FreqOnce    = "once"
	FreqDaily   = "daily"
	FreqWeekly  = "weekly"
	FreqMonthly = "monthly"
)

var weekdayCodes = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ValidFreq reports whether value is a supported frequency.
func ValidFreq(value string) bool {
	switch value {
	case FreqOnce, FreqDaily, FreqWeekly, FreqMonthly:
		return true
	}
	return false
}

// RuleMatcher answers whether a single calendar date is an occurrence of
// one compiled rule. Compiling parses dates and selectors once so a whole
// month window can be scanned cheaply.
type RuleMatcher struct {
	freq      string
	interval  int
	start     time.Time
	end       *time.Time
	weekdays  map[time.Weekday]bool
	monthdays map[int]bool
}

// CompileRule prepares a matcher for the given rule. It fails only when
// the rule's start or end date does not parse; everything else (unknown
// selector entries, end before start) degrades to fewer or zero matches.
func CompileRule(rule model.RecurrenceRule) (*RuleMatcher, error) {
	start, err := ParseDate(rule.StartDate)
	if err != nil {
		return nil, err
	}

	m := &RuleMatcher{
		freq:     rule.Freq,
		interval: rule.Interval,
		start:    start,
	}
	if m.interval < 1 {
		m.interval = 1
	}
	if rule.EndDate != nil && *rule.EndDate != "" {
		end, err := ParseDate(*rule.EndDate)
		if err != nil {
			return nil, err
		}
		m.end = &end
	}

	m.weekdays = parseWeekdays(rule.ByWeekday, start.Weekday())
	m.monthdays = parseMonthdays(rule.ByMonthday, start.Day())
	return m, nil
}

// Matches applies the bound checks and the frequency predicate, in that
// order. The week bucket for weekly rules is anchored to the rule's own
// start date, not to calendar weeks.
func (m *RuleMatcher) Matches(day time.Time) bool {
	if day.Before(m.start) {
		return false
	}
	if m.end != nil && day.After(*m.end) {
		return false
	}

	switch m.freq {
	case FreqOnce:
		return day.Equal(m.start)
	case FreqDaily:
		return DaysBetween(day, m.start)%m.interval == 0
	case FreqWeekly:
		bucket := DaysBetween(day, m.start) / 7
		return bucket%m.interval == 0 && m.weekdays[day.Weekday()]
	case FreqMonthly:
		// A selected day absent from this month (31 in February) simply
		// never matches; no clamping to the month's last day.
		diff := MonthsBetween(day, m.start)
		return diff%m.interval == 0 && m.monthdays[day.Day()]
	default:
		return false
	}
}

// parseWeekdays turns "mon,wed" into a weekday set. Unknown entries are
// dropped; an empty result falls back to the fallback weekday alone.
func parseWeekdays(value string, fallback time.Weekday) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool)
	for _, part := range strings.Split(value, ",") {
		if wd, ok := weekdayCodes[strings.ToLower(strings.TrimSpace(part))]; ok {
			set[wd] = true
		}
	}
	if len(set) == 0 {
		set[fallback] = true
	}
	return set
}

// parseMonthdays turns "1,15" into a day-of-month set, dropping entries
// outside 1..31, with the same empty-set fallback as parseWeekdays.
func parseMonthdays(value string, fallback int) map[int]bool {
	set := make(map[int]bool)
	for _, part := range strings.Split(value, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || day < 1 || day > 31 {
			continue
		}
		set[day] = true
	}
	if len(set) == 0 {
		set[fallback] = true
	}
	return set
}
