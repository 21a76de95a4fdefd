package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/unibudget/unibudget_backend/config"
	"github.com/unibudget/unibudget_backend/utils"
)

// budgetWarningRatio is the spent/amount ratio at which a warning fires.
var budgetWarningRatio = decimal.NewFromFloat(0.80)

// BudgetStatus is the evaluation of a budget goal against the ledger
// inside its fixed-length period window.
type BudgetStatus struct {
	GoalId       int             `json:"goal_id"`
	Title        string          `json:"title"`
	Period       GoalPeriod      `json:"period"`
	Amount       decimal.Decimal `json:"amount"`
	Spent        decimal.Decimal `json:"spent"`
	PercentSpent decimal.Decimal `json:"percent_spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Exceeded     bool            `json:"exceeded"`
	ExceededBy   decimal.Decimal `json:"exceeded_by"`
	Warning      bool            `json:"warning"`
}

// SavingGoalStatus is the evaluation of a saving goal. Saved is the
// explicit accumulator, never recomputed from the ledger.
type SavingGoalStatus struct {
	GoalId          int             `json:"goal_id"`
	Title           string          `json:"title"`
	Period          GoalPeriod      `json:"period"`
	Saved           decimal.Decimal `json:"saved"`
	Target          decimal.Decimal `json:"target"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
	Reached         bool            `json:"reached"`
}

// EvaluateBudget measures spend inside [startDate, startDate+periodDays).
// Only debits count (amount < 0, regardless of label); goal rows are
// skipped by type. Malformed goals degrade to a zero-spend status rather
// than failing the read.
func EvaluateBudget(budget *Transaction, ledger []*Transaction, now time.Time) BudgetStatus {
	status := BudgetStatus{
		GoalId:     budget.ID,
		Title:      budget.Title,
		Spent:      decimal.Zero,
		Remaining:  budget.Amount,
		ExceededBy: decimal.Zero,
	}
	if budget.Period == nil || budget.StartDate == nil {
		return status
	}
	status.Period = *budget.Period
	status.Amount = budget.Amount

	windowStart := startOfDay(*budget.StartDate)
	windowEnd := windowStart.AddDate(0, 0, budget.Period.Days())

	spent := decimal.Zero
	for _, e := range ledger {
		if e == nil || e.Type.IsGoal() {
			continue
		}
		if !e.Amount.IsNegative() {
			continue
		}
		d := startOfDay(e.Date)
		if d.Before(windowStart) || !d.Before(windowEnd) {
			continue
		}
		spent = spent.Add(e.Amount.Abs())
	}

	status.Spent = spent
	status.Remaining = budget.Amount.Sub(spent)
	if budget.Amount.IsPositive() {
		status.PercentSpent = spent.Div(budget.Amount).Mul(decimal.NewFromInt(100))
		status.Warning = spent.Div(budget.Amount).GreaterThanOrEqual(budgetWarningRatio)
	}
	if spent.GreaterThan(budget.Amount) {
		status.Exceeded = true
		status.ExceededBy = spent.Sub(budget.Amount)
	}
	return status
}

// EvaluateSavingGoal derives progress from the goal's own accumulator.
func EvaluateSavingGoal(goal *Transaction) SavingGoalStatus {
	status := SavingGoalStatus{
		GoalId: goal.ID,
		Title:  goal.Title,
		Saved:  goal.CurrentSaved,
		Target: goal.Amount,
	}
	if goal.Period != nil {
		status.Period = *goal.Period
	}
	if goal.Amount.IsPositive() {
		status.ProgressPercent = goal.CurrentSaved.Div(goal.Amount).Mul(decimal.NewFromInt(100))
	}
	status.Reached = goal.CurrentSaved.GreaterThanOrEqual(goal.Amount) && goal.Amount.IsPositive()
	return status
}

// isExpiredGoalRow reports whether a stored entry is a goal whose window
// has elapsed. Rows missing a period or start date never expire.
func isExpiredGoalRow(tx *Transaction, now time.Time) bool {
	if tx == nil || !tx.Type.IsGoal() || tx.Period == nil || tx.StartDate == nil {
		return false
	}
	return IsExpired(*tx.StartDate, *tx.Period, now)
}

// purgeExpiredGoals deletes saving/budget rows whose window has elapsed.
// Expiry is lazy: it happens on the read path, never in a background sweep,
// so an expired goal can remain present until the next fetch.
func purgeExpiredGoals(ctx context.Context, userId int) error {
	db := config.GetDB()
	var goals []*Transaction
	err := db.WithContext(ctx).
		Where("user_id = ? AND type IN ?", userId,
			[]TransactionType{TransactionTypeSaving, TransactionTypeBudget}).
		Find(&goals).Error
	if err != nil {
		return err
	}

	now := time.Now()
	var expired []int
	for _, g := range goals {
		if isExpiredGoalRow(g, now) {
			expired = append(expired, g.ID)
		}
	}
	if len(expired) == 0 {
		return nil
	}
	return db.WithContext(ctx).Delete(&Transaction{}, expired).Error
}

// GetGoals returns the user's active saving/budget goals, purging expired
// ones first.
func GetGoals(ctx context.Context, userId int) ([]*Transaction, error) {
	if err := purgeExpiredGoals(ctx, userId); err != nil {
		return nil, err
	}
	db := config.GetDB()
	var goals []*Transaction
	err := db.WithContext(ctx).
		Where("user_id = ? AND type IN ?", userId,
			[]TransactionType{TransactionTypeSaving, TransactionTypeBudget}).
		Order("start_date DESC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// GetBudgetStatuses evaluates every active budget against the ledger.
func GetBudgetStatuses(ctx context.Context, userId int) ([]BudgetStatus, error) {
	goals, err := GetGoals(ctx, userId)
	if err != nil {
		return nil, err
	}
	ledger, err := GetTransactions(ctx, userId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var statuses []BudgetStatus
	for _, g := range goals {
		if g.Type != TransactionTypeBudget {
			continue
		}
		statuses = append(statuses, EvaluateBudget(g, ledger, now))
	}
	return statuses, nil
}

// GetSavingGoalStatuses evaluates every active saving goal.
func GetSavingGoalStatuses(ctx context.Context, userId int) ([]SavingGoalStatus, error) {
	goals, err := GetGoals(ctx, userId)
	if err != nil {
		return nil, err
	}
	var statuses []SavingGoalStatus
	for _, g := range goals {
		if g.Type != TransactionTypeSaving {
			continue
		}
		statuses = append(statuses, EvaluateSavingGoal(g))
	}
	return statuses, nil
}

func fetchSavingGoal(ctx context.Context, userId int, goalId int) (*Transaction, error) {
	goal, err := utils.FetchModel[Transaction](ctx, userId, goalId)
	if err != nil {
		return nil, err
	}
	if goal.Type != TransactionTypeSaving {
		return nil, utils.ErrorRecordNotFound
	}
	return goal, nil
}

// AddToGoal contributes to a saving goal's accumulator.
// Last-write-wins: there is no concurrency token on the row.
func AddToGoal(ctx context.Context, userId int, goalId int, amount decimal.Decimal) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, errors.New("amount must be greater than zero")
	}
	goal, err := fetchSavingGoal(ctx, userId, goalId)
	if err != nil {
		return nil, err
	}

	goal.CurrentSaved = goal.CurrentSaved.Add(amount)

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&Transaction{ID: goalId}).
		Update("CurrentSaved", goal.CurrentSaved).Error
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// checkWithdraw validates a withdrawal against the current accumulator.
// It runs before any write, so a rejected withdrawal changes nothing.
func checkWithdraw(saved decimal.Decimal, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.New("amount must be greater than zero")
	}
	if amount.GreaterThan(saved) {
		return &utils.InsufficientSavedError{Saved: saved}
	}
	return nil
}

// WithdrawFromGoal takes money back out of a saving goal. Withdrawing more
// than is saved fails with InsufficientSavedError and changes nothing.
func WithdrawFromGoal(ctx context.Context, userId int, goalId int, amount decimal.Decimal) (*Transaction, error) {
	goal, err := fetchSavingGoal(ctx, userId, goalId)
	if err != nil {
		return nil, err
	}
	if err := checkWithdraw(goal.CurrentSaved, amount); err != nil {
		return nil, err
	}

	goal.CurrentSaved = goal.CurrentSaved.Sub(amount)

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&Transaction{ID: goalId}).
		Update("CurrentSaved", goal.CurrentSaved).Error
	if err != nil {
		return nil, err
	}
	return goal, nil
}
