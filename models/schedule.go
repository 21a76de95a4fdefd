package models

import (
	"time"
)

// Obligation scheduling: next-occurrence and expiry arithmetic for
// recurring entries (subscription/house), student-finance notices and
// goal lifecycles. All functions take an explicit `now` so callers and
// tests stay deterministic; the *Now wrappers default to time.Now().

// Reminder windows, in days.
const (
	RecurringReminderWindowDays    = 3
	DueSoonBadgeWindowDays         = 7
	StudentFinanceNoticeWindowDays = 30
)

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextOccurrence walks forward from startDate one interval at a time until
// the result is strictly after today (midnight-normalized). The second
// return is false for an unrecognized frequency: the caller treats that
// as "never due".
func NextOccurrence(startDate time.Time, frequency Frequency, now time.Time) (time.Time, bool) {
	today := startOfDay(now)
	next := startOfDay(startDate)

	for i := 0; !next.After(today); i++ {
		switch frequency {
		case FrequencyWeekly:
			next = next.AddDate(0, 0, 7)
		case FrequencyMonthly:
			next = next.AddDate(0, 1, 0)
		case FrequencyYearly:
			next = next.AddDate(1, 0, 0)
		default:
			return time.Time{}, false
		}
	}
	return next, true
}

// DaysUntil is the whole-day distance from today to the target, counted in
// calendar days. Midnights are compared in UTC so a DST transition between
// the two dates cannot shift the count.
func DaysUntil(target time.Time, now time.Time) int {
	t := startOfDay(target)
	n := startOfDay(now)
	tu := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	nu := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	return int(tu.Sub(nu) / (24 * time.Hour))
}

// IsDueWithin reports whether the next occurrence falls inside the window.
// A day-difference of 0 (due today) counts as due.
func IsDueWithin(startDate time.Time, frequency Frequency, windowDays int, now time.Time) bool {
	next, ok := NextOccurrence(startDate, frequency, now)
	if !ok {
		return false
	}
	return DaysUntil(next, now) <= windowDays
}

// IsExpired reports whether a goal's fixed-length window has elapsed.
// A weekly goal started exactly 7 days ago is expired, one started 6 days
// ago is not.
func IsExpired(startDate time.Time, period GoalPeriod, now time.Time) bool {
	periodDays := period.Days()
	if periodDays == 0 {
		return false
	}
	expiry := startOfDay(startDate).AddDate(0, 0, periodDays)
	return DaysUntil(expiry, now) <= 0
}

func NextOccurrenceNow(startDate time.Time, frequency Frequency) (time.Time, bool) {
	return NextOccurrence(startDate, frequency, time.Now())
}

func IsDueWithinNow(startDate time.Time, frequency Frequency, windowDays int) bool {
	return IsDueWithin(startDate, frequency, windowDays, time.Now())
}

func IsExpiredNow(startDate time.Time, period GoalPeriod) bool {
	return IsExpired(startDate, period, time.Now())
}
