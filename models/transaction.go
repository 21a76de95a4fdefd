package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/unibudget/unibudget_backend/config"
	"github.com/unibudget/unibudget_backend/utils"
)

// Transaction is a single ledger entry. Saving/budget goals and
// student-finance records live in the same collection, distinguished by
// Type; the goal-only and recurrence-only fields are nullable.
type Transaction struct {
	ID           int             `gorm:"primary_key" json:"id"`
	UserId       int             `gorm:"index;not null" json:"user_id" binding:"required"`
	Type         TransactionType `gorm:"size:20;not null" json:"type" binding:"required"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Date         time.Time       `gorm:"not null" json:"date"`
	Category     string          `gorm:"size:100" json:"category"`
	Description  string          `gorm:"type:text" json:"description"`
	Title        string          `gorm:"size:100" json:"title"`
	Frequency    *Frequency      `gorm:"size:10" json:"frequency,omitempty"`
	Period       *GoalPeriod     `gorm:"size:10" json:"period,omitempty"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	CurrentSaved decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"current_saved"`

	StudentFinancePayments []*StudentFinancePayment `gorm:"foreignKey:TransactionId" json:"student_finance_payments,omitempty"`

	// set on list reads for subscription/house rows, never stored
	DueSoon bool `gorm:"-" json:"due_soon,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// StudentFinancePayment is one of the three termly disbursements attached
// to a studentfinance entry.
type StudentFinancePayment struct {
	ID            int             `gorm:"primary_key" json:"id"`
	TransactionId int             `gorm:"index;not null" json:"transaction_id"`
	Date          time.Time       `gorm:"not null" json:"date"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
}

type NewTransaction struct {
	UserId       int             `json:"-"`
	Type         TransactionType `json:"type" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Title        string          `json:"title"`
	Frequency    *Frequency      `json:"frequency"`
	Period       *GoalPeriod     `json:"period"`
	StartDate    *time.Time      `json:"start_date"`
	CurrentSaved decimal.Decimal `json:"current_saved"`

	StudentFinancePayments []*NewStudentFinancePayment `json:"student_finance_payments"`
}

type NewStudentFinancePayment struct {
	Date   time.Time       `json:"date" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

const studentFinancePaymentCount = 3

// stored sign convention per type
var negativeTypes = map[TransactionType]bool{
	TransactionTypeExpense:      true,
	TransactionTypeSubscription: true,
	TransactionTypeHouse:        true,
}

var positiveTypes = map[TransactionType]bool{
	TransactionTypeIncome:         true,
	TransactionTypeSaving:         true,
	TransactionTypeBudget:         true,
	TransactionTypeStudentFinance: true,
}

func validateSignConvention(t TransactionType, amount decimal.Decimal) error {
	if negativeTypes[t] && amount.IsPositive() {
		return fmt.Errorf("%s amounts are stored negative", t)
	}
	if positiveTypes[t] && amount.IsNegative() {
		return fmt.Errorf("%s amounts are stored positive", t)
	}
	return nil
}

// validate input for both create & update. (id = 0 for create)
func (input *NewTransaction) validate(ctx context.Context, id int) error {
	if input.UserId <= 0 {
		return errors.New("user id is required")
	}
	if err := validateSignConvention(input.Type, input.Amount); err != nil {
		return err
	}

	if input.Frequency != nil && !input.Type.IsRecurring() {
		return errors.New("frequency is only valid for subscription and house entries")
	}
	if input.Type.IsRecurring() && input.Frequency == nil {
		return errors.New("frequency is required for subscription and house entries")
	}

	if input.Type.IsGoal() {
		if input.Period == nil {
			return errors.New("period is required for saving and budget goals")
		}
		if input.StartDate == nil {
			return errors.New("start date is required for saving and budget goals")
		}
		// A user holds at most one active goal per type+period; expired
		// rows are purged lazily before counting.
		if err := purgeExpiredGoals(ctx, input.UserId); err != nil {
			return err
		}
		count, err := utils.ResourceCountWhere[Transaction](ctx, input.UserId,
			"type = ? AND period = ? AND NOT id = ?", input.Type, *input.Period, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("a %s %s goal already exists", *input.Period, input.Type)
		}
	} else if input.Period != nil || input.StartDate != nil {
		return errors.New("period and start date are only valid for saving and budget goals")
	}

	if input.Type == TransactionTypeStudentFinance {
		if len(input.StudentFinancePayments) != studentFinancePaymentCount {
			return errors.New("studentfinance entries carry exactly 3 termly payments")
		}
	} else if len(input.StudentFinancePayments) > 0 {
		return errors.New("termly payments are only valid for studentfinance entries")
	}

	return nil
}

func (input *NewTransaction) toModel(id int) *Transaction {
	tx := Transaction{
		ID:           id,
		UserId:       input.UserId,
		Type:         input.Type,
		Amount:       input.Amount,
		Date:         input.Date,
		Category:     input.Category,
		Description:  input.Description,
		Title:        input.Title,
		Frequency:    input.Frequency,
		Period:       input.Period,
		StartDate:    input.StartDate,
		CurrentSaved: input.CurrentSaved,
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	for _, p := range input.StudentFinancePayments {
		tx.StudentFinancePayments = append(tx.StudentFinancePayments, &StudentFinancePayment{
			Date:   p.Date,
			Amount: p.Amount,
		})
	}
	return &tx
}

// CreateTransaction stores a ledger entry, then recomputes the owner's
// balance. The two writes are sequential and independently committed; a
// reconcile failure is returned but does not roll the entry back.
func CreateTransaction(ctx context.Context, input *NewTransaction) (*Transaction, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	tx := input.toModel(0)

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(tx).Error; err != nil {
		return nil, err
	}

	if _, err := RecomputeBalance(ctx, tx.UserId); err != nil {
		return tx, err
	}
	return tx, nil
}

// replacementPayments returns the child rows an entry should carry after
// an update: its termly payments for studentfinance, nothing for any other
// type. Stale payments must not survive a type change.
func replacementPayments(t TransactionType, payments []*StudentFinancePayment) []*StudentFinancePayment {
	if t != TransactionTypeStudentFinance {
		return nil
	}
	return payments
}

// UpdateTransaction replaces the mutable fields of an entry and recomputes
// the owner's balance.
func UpdateTransaction(ctx context.Context, id int, input *NewTransaction) (*Transaction, error) {
	existing, err := utils.FetchModel[Transaction](ctx, input.UserId, id)
	if err != nil {
		return nil, err
	}
	// An expired goal is purged on the next read; updating it reports the
	// row as gone instead of writing to nothing.
	if isExpiredGoalRow(existing, time.Now()) {
		return nil, utils.ErrorRecordNotFound
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	update := input.toModel(id)
	db := config.GetDB()

	err = db.WithContext(ctx).Model(&Transaction{ID: id}).Updates(map[string]interface{}{
		"Type":         update.Type,
		"Amount":       update.Amount,
		"Date":         update.Date,
		"Category":     update.Category,
		"Description":  update.Description,
		"Title":        update.Title,
		"Frequency":    update.Frequency,
		"Period":       update.Period,
		"StartDate":    update.StartDate,
		"CurrentSaved": update.CurrentSaved,
	}).Error
	if err != nil {
		return nil, err
	}

	// Replace the child rows wholesale, whatever the old type was.
	if err := db.WithContext(ctx).Where("transaction_id = ?", id).Delete(&StudentFinancePayment{}).Error; err != nil {
		return nil, err
	}
	update.StudentFinancePayments = replacementPayments(update.Type, update.StudentFinancePayments)
	if len(update.StudentFinancePayments) > 0 {
		for _, p := range update.StudentFinancePayments {
			p.TransactionId = id
		}
		if err := db.WithContext(ctx).Create(&update.StudentFinancePayments).Error; err != nil {
			return nil, err
		}
	}

	update.UserId = existing.UserId
	if _, err := RecomputeBalance(ctx, existing.UserId); err != nil {
		return update, err
	}
	return update, nil
}

// DeleteTransaction removes an entry (and its termly payments) and
// recomputes the owner's balance.
func DeleteTransaction(ctx context.Context, userId int, id int) (*Transaction, error) {
	result, err := utils.FetchModel[Transaction](ctx, userId, id, "StudentFinancePayments")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Where("transaction_id = ?", id).Delete(&StudentFinancePayment{}).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(&Transaction{}, id).Error; err != nil {
		return nil, err
	}

	if _, err := RecomputeBalance(ctx, userId); err != nil {
		return result, err
	}
	return result, nil
}

func GetTransaction(ctx context.Context, userId int, id int) (*Transaction, error) {
	return utils.FetchModel[Transaction](ctx, userId, id, "StudentFinancePayments")
}

// markDueSoon sets the due-soon badge on recurring rows whose next
// occurrence is at most 7 days away.
func markDueSoon(entries []*Transaction) {
	for _, e := range entries {
		if e.Type.IsRecurring() && e.Frequency != nil {
			e.DueSoon = IsDueWithinNow(e.Date, *e.Frequency, DueSoonBadgeWindowDays)
		}
	}
}

// GetTransactions lists a user's ledger without studentfinance rows
// (those are fetched via GetAllTransactions for the dedicated view).
func GetTransactions(ctx context.Context, userId int) ([]*Transaction, error) {
	db := config.GetDB()
	var results []*Transaction
	err := db.WithContext(ctx).
		Where("user_id = ? AND type <> ?", userId, TransactionTypeStudentFinance).
		Order("date DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	markDueSoon(results)
	return results, nil
}

// GetAllTransactions lists the full ledger including studentfinance rows.
func GetAllTransactions(ctx context.Context, userId int) ([]*Transaction, error) {
	db := config.GetDB()
	var results []*Transaction
	err := db.WithContext(ctx).
		Where("user_id = ?", userId).
		Preload("StudentFinancePayments").
		Order("date DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	markDueSoon(results)
	return results, nil
}

// SumRecentSpend totals debit amounts (absolute value) dated within the
// last windowDays, goal rows excluded.
func SumRecentSpend(entries []*Transaction, windowDays int) decimal.Decimal {
	cutoff := startOfDay(time.Now()).AddDate(0, 0, -windowDays)
	sum := decimal.Zero
	for _, e := range entries {
		if e == nil || e.Type.IsGoal() || !e.Amount.IsNegative() {
			continue
		}
		if startOfDay(e.Date).Before(cutoff) {
			continue
		}
		sum = sum.Add(e.Amount.Abs())
	}
	return sum
}

// DisbursedStudentFinancePayments returns the termly payments whose date
// has passed (due today or earlier); future terms stay hidden.
func DisbursedStudentFinancePayments(tx *Transaction, now time.Time) []*StudentFinancePayment {
	var due []*StudentFinancePayment
	today := startOfDay(now)
	for _, p := range tx.StudentFinancePayments {
		if !startOfDay(p.Date).After(today) {
			due = append(due, p)
		}
	}
	return due
}
