package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/unibudget/unibudget_backend/utils"
)

func budgetGoal(amount string, period GoalPeriod, start time.Time) *Transaction {
	p := period
	s := start
	return &Transaction{
		ID:        42,
		Type:      TransactionTypeBudget,
		Title:     "groceries",
		Amount:    decimal.RequireFromString(amount),
		Period:    &p,
		StartDate: &s,
	}
}

func datedEntry(txType TransactionType, amount string, date time.Time) *Transaction {
	e := entry(txType, amount)
	e.Date = date
	return e
}

func TestEvaluateBudget_WarningAtEightyPercent(t *testing.T) {
	start := day(2026, time.March, 1)
	now := day(2026, time.March, 5)
	goal := budgetGoal("50", GoalPeriodWeekly, start)

	ledger := []*Transaction{
		datedEntry(TransactionTypeExpense, "-45", day(2026, time.March, 3)),
	}

	status := EvaluateBudget(goal, ledger, now)
	if !status.Spent.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("Spent = %s, want 45", status.Spent)
	}
	if !status.PercentSpent.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("PercentSpent = %s, want 90", status.PercentSpent)
	}
	if !status.Warning {
		t.Fatal("90%% spent should warn")
	}
	if status.Exceeded {
		t.Fatal("under budget should not be exceeded")
	}
	if !status.ExceededBy.IsZero() {
		t.Fatalf("ExceededBy = %s, want 0", status.ExceededBy)
	}
}

func TestEvaluateBudget_ExactThreshold(t *testing.T) {
	goal := budgetGoal("100", GoalPeriodWeekly, day(2026, time.March, 1))
	ledger := []*Transaction{
		datedEntry(TransactionTypeExpense, "-80", day(2026, time.March, 2)),
	}
	status := EvaluateBudget(goal, ledger, day(2026, time.March, 4))
	if !status.Warning {
		t.Fatal("exactly 80%% should warn")
	}

	ledger[0].Amount = decimal.RequireFromString("-79.99")
	status = EvaluateBudget(goal, ledger, day(2026, time.March, 4))
	if status.Warning {
		t.Fatal("79.99%% should not warn")
	}
}

func TestEvaluateBudget_ExceededBy(t *testing.T) {
	goal := budgetGoal("50", GoalPeriodWeekly, day(2026, time.March, 1))
	ledger := []*Transaction{
		datedEntry(TransactionTypeExpense, "-30", day(2026, time.March, 2)),
		datedEntry(TransactionTypeSubscription, "-35.50", day(2026, time.March, 3)),
	}
	status := EvaluateBudget(goal, ledger, day(2026, time.March, 4))
	if !status.Exceeded {
		t.Fatal("spend over budget should be exceeded")
	}
	if !status.ExceededBy.Equal(decimal.RequireFromString("15.50")) {
		t.Fatalf("ExceededBy = %s, want 15.50", status.ExceededBy)
	}
	if !status.Remaining.Equal(decimal.RequireFromString("-15.50")) {
		t.Fatalf("Remaining = %s, want -15.50", status.Remaining)
	}
}

func TestEvaluateBudget_WindowAndFilters(t *testing.T) {
	start := day(2026, time.March, 1)
	goal := budgetGoal("100", GoalPeriodWeekly, start)

	ledger := []*Transaction{
		// before the window
		datedEntry(TransactionTypeExpense, "-10", day(2026, time.February, 28)),
		// first day of the window counts
		datedEntry(TransactionTypeExpense, "-5", day(2026, time.March, 1)),
		// last day inside [start, start+7)
		datedEntry(TransactionTypeExpense, "-7", day(2026, time.March, 7)),
		// window end is exclusive
		datedEntry(TransactionTypeExpense, "-11", day(2026, time.March, 8)),
		// credits never count, whatever the label
		datedEntry(TransactionTypeIncome, "50", day(2026, time.March, 2)),
		// goal rows are skipped by type
		datedEntry(TransactionTypeSaving, "20", day(2026, time.March, 2)),
	}

	status := EvaluateBudget(goal, ledger, day(2026, time.March, 6))
	if !status.Spent.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("Spent = %s, want 12", status.Spent)
	}
}

func TestEvaluateBudget_MalformedGoal(t *testing.T) {
	goal := &Transaction{ID: 7, Type: TransactionTypeBudget, Amount: decimal.NewFromInt(50)}
	status := EvaluateBudget(goal, []*Transaction{
		datedEntry(TransactionTypeExpense, "-10", day(2026, time.March, 2)),
	}, day(2026, time.March, 4))
	if !status.Spent.IsZero() || status.Warning || status.Exceeded {
		t.Fatalf("malformed goal should degrade to zero-spend, got %+v", status)
	}
}

func TestCheckWithdraw_Bound(t *testing.T) {
	saved := decimal.NewFromInt(40)

	err := checkWithdraw(saved, decimal.NewFromInt(50))
	if !utils.IsInsufficientSaved(err) {
		t.Fatalf("over-withdrawal should fail with InsufficientSaved, got %v", err)
	}
	if err.Error() != "you only have £40.00 saved" {
		t.Fatalf("message = %q", err.Error())
	}

	// the guard runs before any write, so a rejected withdrawal changes nothing
	if !saved.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("saved changed to %s", saved)
	}

	if err := checkWithdraw(saved, decimal.NewFromInt(40)); err != nil {
		t.Fatalf("withdrawing the full amount should pass: %v", err)
	}
	if err := checkWithdraw(saved, decimal.Zero); err == nil {
		t.Fatal("zero withdrawal should be rejected")
	}
	if err := checkWithdraw(saved, decimal.NewFromInt(-5)); err == nil {
		t.Fatal("negative withdrawal should be rejected")
	}
	if utils.IsInsufficientSaved(checkWithdraw(saved, decimal.Zero)) {
		t.Fatal("a non-positive amount is a plain validation error, not InsufficientSaved")
	}
}

func TestIsExpiredGoalRow(t *testing.T) {
	now := day(2026, time.March, 10)

	expired := budgetGoal("50", GoalPeriodWeekly, day(2026, time.March, 3))
	if !isExpiredGoalRow(expired, now) {
		t.Fatal("goal started 7 days ago should be expired")
	}

	active := budgetGoal("50", GoalPeriodWeekly, day(2026, time.March, 4))
	if isExpiredGoalRow(active, now) {
		t.Fatal("goal started 6 days ago should still be active")
	}

	// non-goal rows and malformed goals never expire
	if isExpiredGoalRow(datedEntry(TransactionTypeExpense, "-5", day(2026, time.January, 1)), now) {
		t.Fatal("expense rows never expire")
	}
	malformed := &Transaction{Type: TransactionTypeBudget, Amount: decimal.NewFromInt(50)}
	if isExpiredGoalRow(malformed, now) {
		t.Fatal("goal without period/start date never expires")
	}
	if isExpiredGoalRow(nil, now) {
		t.Fatal("nil row never expires")
	}
}

func TestEvaluateSavingGoal(t *testing.T) {
	p := GoalPeriodMonthly
	goal := &Transaction{
		ID:           9,
		Type:         TransactionTypeSaving,
		Title:        "holiday",
		Amount:       decimal.NewFromInt(200),
		CurrentSaved: decimal.NewFromInt(50),
		Period:       &p,
	}

	status := EvaluateSavingGoal(goal)
	if !status.ProgressPercent.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("ProgressPercent = %s, want 25", status.ProgressPercent)
	}
	if status.Reached {
		t.Fatal("25%% progress is not reached")
	}

	goal.CurrentSaved = decimal.NewFromInt(200)
	status = EvaluateSavingGoal(goal)
	if !status.Reached {
		t.Fatal("saved == target should be reached")
	}

	goal.CurrentSaved = decimal.NewFromInt(260)
	status = EvaluateSavingGoal(goal)
	if !status.Reached {
		t.Fatal("overshoot should stay reached")
	}
	if !status.ProgressPercent.Equal(decimal.NewFromInt(130)) {
		t.Fatalf("ProgressPercent = %s, want 130", status.ProgressPercent)
	}
}
