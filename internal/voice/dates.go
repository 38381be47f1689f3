package voice

import (
	"fmt"
	"strings"
	"time"

	"github.com/coachtui/crewcommand/internal/constants"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseAnchor parses the caller-supplied current date. Relative phrases
// resolve against this value, never the server clock, so a caller in
// another timezone does not get off-by-one dates.
func ParseAnchor(clientDate string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, clientDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid client date %q: expected YYYY-MM-DD", clientDate)
	}
	return t, nil
}

// ResolveDates expands each token to concrete dates, deduplicated in
// first-seen order.
func ResolveDates(tokens []string, anchor time.Time) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range tokens {
		dates, err := ResolveDate(tok, anchor)
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out, nil
}

// ResolveDate expands one spoken date expression to concrete dates.
// Supported: today, tomorrow, yesterday, weekday names ("friday",
// "next friday" both mean the next occurrence after the anchor),
// "next week" (Monday through Friday of the following week), "this week"
// (remaining weekdays of the anchor's week, anchor included), and
// explicit YYYY-MM-DD.
func ResolveDate(token string, anchor time.Time) ([]string, error) {
	expr := strings.ToLower(strings.TrimSpace(token))

	switch expr {
	case "":
		return nil, fmt.Errorf("empty date expression")
	case "today":
		return []string{format(anchor)}, nil
	case "tomorrow":
		return []string{format(anchor.AddDate(0, 0, 1))}, nil
	case "yesterday":
		return []string{format(anchor.AddDate(0, 0, -1))}, nil
	case "next week":
		return weekdaysOfWeek(startOfNextWeek(anchor)), nil
	case "this week":
		var out []string
		for _, d := range weekdaysOfWeek(startOfWeek(anchor)) {
			if d >= format(anchor) {
				out = append(out, d)
			}
		}
		if len(out) == 0 {
			// Anchor is a weekend; fall forward to the coming week.
			return weekdaysOfWeek(startOfNextWeek(anchor)), nil
		}
		return out, nil
	}

	name := strings.TrimSpace(strings.TrimPrefix(expr, "next "))
	if wd, ok := weekdays[name]; ok {
		return []string{format(nextWeekday(anchor, wd))}, nil
	}

	if t, err := time.Parse(constants.DateLayout, expr); err == nil {
		return []string{format(t)}, nil
	}

	return nil, fmt.Errorf("unrecognized date expression %q", token)
}

// nextWeekday returns the next occurrence of wd strictly after anchor.
func nextWeekday(anchor time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(anchor.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return anchor.AddDate(0, 0, days)
}

// startOfWeek returns the Monday of the anchor's week.
func startOfWeek(anchor time.Time) time.Time {
	offset := (int(anchor.Weekday()) + 6) % 7
	return anchor.AddDate(0, 0, -offset)
}

func startOfNextWeek(anchor time.Time) time.Time {
	return startOfWeek(anchor).AddDate(0, 0, 7)
}

// weekdaysOfWeek returns Monday through Friday starting at monday.
// Crew scheduling is weekday-oriented, so "week" means the work week.
func weekdaysOfWeek(monday time.Time) []string {
	out := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		out = append(out, format(monday.AddDate(0, 0, i)))
	}
	return out
}

func format(t time.Time) string {
	return t.Format(constants.DateLayout)
}
