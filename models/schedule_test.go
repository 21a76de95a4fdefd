package models

import (
	"testing"
	"time"
)

// NOTE: These tests are intentionally DB-free. They pin the scheduling
// arithmetic: next-occurrence stepping, reminder windows and goal expiry.

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence_StrictlyAfterToday(t *testing.T) {
	now := day(2026, time.March, 10)

	cases := []struct {
		name      string
		start     time.Time
		frequency Frequency
		want      time.Time
	}{
		{"weekly steps past today", day(2026, time.February, 24), FrequencyWeekly, day(2026, time.March, 17)},
		{"start today rolls forward", day(2026, time.March, 10), FrequencyWeekly, day(2026, time.March, 17)},
		{"future start is untouched", day(2026, time.March, 12), FrequencyMonthly, day(2026, time.March, 12)},
		{"monthly from far past", day(2025, time.January, 5), FrequencyMonthly, day(2026, time.April, 5)},
		{"yearly anniversary passed", day(2024, time.March, 1), FrequencyYearly, day(2027, time.March, 1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NextOccurrence(tc.start, tc.frequency, now)
			if !ok {
				t.Fatalf("NextOccurrence returned ok=false")
			}
			if !got.Equal(tc.want) {
				t.Fatalf("NextOccurrence = %s, want %s", got.Format(dateLayout), tc.want.Format(dateLayout))
			}
			if !got.After(startOfDay(now)) {
				t.Fatalf("NextOccurrence %s is not strictly after today %s", got, now)
			}
		})
	}
}

func TestNextOccurrence_UnknownFrequency(t *testing.T) {
	_, ok := NextOccurrence(day(2026, time.January, 1), Frequency("fortnightly"), day(2026, time.March, 10))
	if ok {
		t.Fatal("expected ok=false for unknown frequency")
	}
}

func TestNextOccurrence_TimeOfDayIgnored(t *testing.T) {
	now := time.Date(2026, time.March, 10, 23, 45, 0, 0, time.UTC)
	start := time.Date(2026, time.March, 3, 1, 30, 0, 0, time.UTC)

	got, ok := NextOccurrence(start, FrequencyWeekly, now)
	if !ok {
		t.Fatal("NextOccurrence returned ok=false")
	}
	if !got.Equal(day(2026, time.March, 17)) {
		t.Fatalf("NextOccurrence = %s, want 2026-03-17", got.Format(dateLayout))
	}
}

func TestIsDueWithin(t *testing.T) {
	now := day(2026, time.March, 10)

	// next occurrence lands on March 13 (3 days out)
	start := day(2026, time.March, 6)
	if !IsDueWithin(start, FrequencyWeekly, RecurringReminderWindowDays, now) {
		t.Fatal("due in exactly 3 days should be inside the 3-day window")
	}

	// next occurrence lands on March 14 (4 days out)
	start = day(2026, time.March, 7)
	if IsDueWithin(start, FrequencyWeekly, RecurringReminderWindowDays, now) {
		t.Fatal("due in 4 days should be outside the 3-day window")
	}

	// windowDays=0 still flags same-day occurrences after rollover: a weekly
	// start 7 days ago rolls to today+7, never today, so nothing is due.
	start = day(2026, time.March, 3)
	if IsDueWithin(start, FrequencyWeekly, 0, now) {
		t.Fatal("rolled-forward occurrence can never be due today")
	}
}

func TestIsExpired_Boundaries(t *testing.T) {
	now := day(2026, time.March, 10)

	cases := []struct {
		name   string
		start  time.Time
		period GoalPeriod
		want   bool
	}{
		{"weekly started exactly 7 days ago", day(2026, time.March, 3), GoalPeriodWeekly, true},
		{"weekly started 6 days ago", day(2026, time.March, 4), GoalPeriodWeekly, false},
		{"weekly started 8 days ago", day(2026, time.March, 2), GoalPeriodWeekly, true},
		{"monthly started exactly 30 days ago", day(2026, time.February, 8), GoalPeriodMonthly, true},
		{"monthly started 29 days ago", day(2026, time.February, 9), GoalPeriodMonthly, false},
		{"started today", now, GoalPeriodWeekly, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsExpired(tc.start, tc.period, now); got != tc.want {
				t.Fatalf("IsExpired = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDaysUntil_AcrossSpringForward(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable:", err)
	}

	// DST starts 2026-03-08 in America/New_York: the wall-clock distance
	// from the 8th to the 9th is 23 hours, but it is still one calendar day.
	now := time.Date(2026, time.March, 8, 9, 0, 0, 0, loc)
	target := time.Date(2026, time.March, 9, 0, 0, 0, 0, loc)
	if d := DaysUntil(target, now); d != 1 {
		t.Fatalf("DaysUntil across spring forward = %d, want 1", d)
	}

	now = time.Date(2026, time.March, 7, 12, 0, 0, 0, loc)
	if d := DaysUntil(time.Date(2026, time.March, 9, 0, 0, 0, 0, loc), now); d != 2 {
		t.Fatalf("DaysUntil = %d, want 2", d)
	}
}

func TestDaysUntil(t *testing.T) {
	now := day(2026, time.March, 10)
	if d := DaysUntil(day(2026, time.March, 10), now); d != 0 {
		t.Fatalf("same day: DaysUntil = %d, want 0", d)
	}
	if d := DaysUntil(day(2026, time.March, 13), now); d != 3 {
		t.Fatalf("DaysUntil = %d, want 3", d)
	}
	if d := DaysUntil(day(2026, time.March, 8), now); d != -2 {
		t.Fatalf("past: DaysUntil = %d, want -2", d)
	}
}
