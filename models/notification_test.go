package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// The compose helpers are pure; these tests pin the reminder windows and
// the deterministic-id contract that dismissals depend on.

func TestComposeRecurringReminders_Window(t *testing.T) {
	now := day(2026, time.March, 10)
	freq := FrequencyWeekly

	// rolls to March 13: 3 days out, inside the window
	inside := &Transaction{ID: 1, Type: TransactionTypeSubscription, Title: "Spotify",
		Amount: decimal.RequireFromString("-9.99"), Date: day(2026, time.March, 6), Frequency: &freq}
	// rolls to March 14: 4 days out
	outside := &Transaction{ID: 2, Type: TransactionTypeSubscription, Title: "Gym",
		Amount: decimal.RequireFromString("-25"), Date: day(2026, time.March, 7), Frequency: &freq}
	// non-recurring rows never remind
	expense := &Transaction{ID: 3, Type: TransactionTypeExpense, Title: "Coffee",
		Amount: decimal.RequireFromString("-3"), Date: day(2026, time.March, 9)}

	got := composeRecurringReminders([]*Transaction{inside, outside, expense}, now)
	if len(got) != 1 {
		t.Fatalf("got %d reminders, want 1", len(got))
	}
	if got[0].ID != "recurring:1:2026-03-13" {
		t.Fatalf("id = %q, want recurring:1:2026-03-13", got[0].ID)
	}
	if !strings.Contains(got[0].Message, "9.99") {
		t.Fatalf("message should carry the charge amount: %q", got[0].Message)
	}
}

func TestComposeRecurringReminders_DeterministicIds(t *testing.T) {
	now := day(2026, time.March, 10)
	freq := FrequencyWeekly
	sub := &Transaction{ID: 5, Type: TransactionTypeHouse, Title: "Rent",
		Amount: decimal.RequireFromString("-500"), Date: day(2026, time.March, 6), Frequency: &freq}

	first := composeRecurringReminders([]*Transaction{sub}, now)
	second := composeRecurringReminders([]*Transaction{sub}, now)
	if len(first) != 1 || len(second) != 1 || first[0].ID != second[0].ID {
		t.Fatalf("recomposition changed the id: %+v vs %+v", first, second)
	}
}

func TestComposeStudentFinanceNotices(t *testing.T) {
	now := day(2026, time.March, 10)
	sf := &Transaction{
		ID:   8,
		Type: TransactionTypeStudentFinance,
		StudentFinancePayments: []*StudentFinancePayment{
			{ID: 1, Date: day(2026, time.January, 10), Amount: decimal.NewFromInt(1500)}, // past
			{ID: 2, Date: day(2026, time.April, 9), Amount: decimal.NewFromInt(1500)},   // exactly 30 days
			{ID: 3, Date: day(2026, time.April, 10), Amount: decimal.NewFromInt(1500)},  // 31 days
		},
	}

	got := composeStudentFinanceNotices([]*Transaction{sf}, now)
	if len(got) != 1 {
		t.Fatalf("got %d notices, want 1", len(got))
	}
	if got[0].ID != "studentfinance:8:2" {
		t.Fatalf("id = %q, want studentfinance:8:2", got[0].ID)
	}
}

type fakeReachedFlags map[int]bool

func (f fakeReachedFlags) alreadyFired(goalId int) bool { return f[goalId] }
func (f fakeReachedFlags) markFired(goalId int)         { f[goalId] = true }

func TestComposeGoalReached_FiresOnce(t *testing.T) {
	flags := fakeReachedFlags{}
	status := SavingGoalStatus{GoalId: 9, Title: "holiday",
		Target: decimal.NewFromInt(100), Saved: decimal.NewFromInt(110), Reached: true}

	// first evaluation after the accumulator crosses the target
	first := composeGoalReached([]SavingGoalStatus{status}, flags)
	if len(first) != 1 || first[0].Kind != NotificationKindGoalReached {
		t.Fatalf("expected one goal-reached notice, got %+v", first)
	}
	if first[0].ID != "goal-reached:9" {
		t.Fatalf("id = %q", first[0].ID)
	}

	// a further addition keeps the goal reached but stays quiet
	status.Saved = decimal.NewFromInt(130)
	if again := composeGoalReached([]SavingGoalStatus{status}, flags); len(again) != 0 {
		t.Fatalf("second evaluation re-fired: %+v", again)
	}

	// dipping under target and recovering does not re-fire either
	status.Saved = decimal.NewFromInt(90)
	status.Reached = false
	if dipped := composeGoalReached([]SavingGoalStatus{status}, flags); len(dipped) != 0 {
		t.Fatalf("unreached goal produced a notice: %+v", dipped)
	}
	status.Saved = decimal.NewFromInt(120)
	status.Reached = true
	if recovered := composeGoalReached([]SavingGoalStatus{status}, flags); len(recovered) != 0 {
		t.Fatalf("recovered goal re-fired: %+v", recovered)
	}

	// a different goal still gets its own notice
	other := SavingGoalStatus{GoalId: 10, Title: "laptop",
		Target: decimal.NewFromInt(500), Saved: decimal.NewFromInt(500), Reached: true}
	if got := composeGoalReached([]SavingGoalStatus{other}, flags); len(got) != 1 {
		t.Fatalf("independent goal suppressed: %+v", got)
	}
}

func TestComposeBudgetAlerts(t *testing.T) {
	start := day(2026, time.March, 1)
	goals := []*Transaction{budgetGoal("50", GoalPeriodWeekly, start)}

	warning := BudgetStatus{GoalId: 42, Title: "groceries",
		Amount: decimal.NewFromInt(50), Spent: decimal.NewFromInt(45), Warning: true}
	exceeded := BudgetStatus{GoalId: 42, Title: "groceries",
		Amount: decimal.NewFromInt(50), Spent: decimal.NewFromInt(60),
		Warning: true, Exceeded: true, ExceededBy: decimal.NewFromInt(10)}

	got := composeBudgetAlerts([]BudgetStatus{warning}, goals)
	if len(got) != 1 || got[0].Kind != NotificationKindBudgetWarning {
		t.Fatalf("expected one warning, got %+v", got)
	}
	if got[0].ID != "budget-warning:42:2026-03-01" {
		t.Fatalf("id = %q", got[0].ID)
	}

	// exceeded supersedes the warning, one alert only
	got = composeBudgetAlerts([]BudgetStatus{exceeded}, goals)
	if len(got) != 1 || got[0].Kind != NotificationKindBudgetExceeded {
		t.Fatalf("expected one exceeded alert, got %+v", got)
	}
	if !strings.Contains(got[0].Message, "10.00") {
		t.Fatalf("exceeded message should carry the overshoot: %q", got[0].Message)
	}
}
