package models

import (
	"encoding/json"
	"errors"
	"strconv"
)

// TransactionType is a closed set; unrecognized values are rejected at the
// JSON boundary rather than stored as free-form strings.
type TransactionType string

const (
	TransactionTypeExpense           TransactionType = "expense"
	TransactionTypeIncome            TransactionType = "income"
	TransactionTypeSubscription      TransactionType = "subscription"
	TransactionTypeHouse             TransactionType = "house"
	TransactionTypeStudentFinance    TransactionType = "studentfinance"
	TransactionTypeSaving            TransactionType = "saving"
	TransactionTypeBudget            TransactionType = "budget"
	TransactionTypeBalanceAdjustment TransactionType = "balance-adjustment"
)

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *TransactionType) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("transaction type must be string")
	}
	switch str {
	case "expense":
		*t = TransactionTypeExpense
	case "income":
		*t = TransactionTypeIncome
	case "subscription":
		*t = TransactionTypeSubscription
	case "house":
		*t = TransactionTypeHouse
	case "studentfinance":
		*t = TransactionTypeStudentFinance
	case "saving":
		*t = TransactionTypeSaving
	case "budget":
		*t = TransactionTypeBudget
	case "balance-adjustment":
		*t = TransactionTypeBalanceAdjustment
	default:
		return errors.New("invalid transaction type")
	}
	return nil
}

// IsGoal reports whether the type is a saving or budget goal record.
func (t TransactionType) IsGoal() bool {
	return t == TransactionTypeSaving || t == TransactionTypeBudget
}

// IsRecurring reports whether the type carries a recurrence frequency.
func (t TransactionType) IsRecurring() bool {
	return t == TransactionTypeSubscription || t == TransactionTypeHouse
}

// Frequency is the recurrence interval of subscription/house entries.
type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

func (f Frequency) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(f))), nil
}

func (f *Frequency) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("frequency must be string")
	}
	switch str {
	case "weekly":
		*f = FrequencyWeekly
	case "monthly":
		*f = FrequencyMonthly
	case "yearly":
		*f = FrequencyYearly
	default:
		return errors.New("invalid frequency")
	}
	return nil
}

// GoalPeriod is the fixed-length window of a saving/budget goal.
type GoalPeriod string

const (
	GoalPeriodWeekly  GoalPeriod = "weekly"
	GoalPeriodMonthly GoalPeriod = "monthly"
)

func (p GoalPeriod) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(p))), nil
}

func (p *GoalPeriod) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("period must be string")
	}
	switch str {
	case "weekly":
		*p = GoalPeriodWeekly
	case "monthly":
		*p = GoalPeriodMonthly
	default:
		return errors.New("invalid period")
	}
	return nil
}

// Days returns the fixed window length of the period.
// Monthly is a flat 30 days, not a calendar month.
func (p GoalPeriod) Days() int {
	switch p {
	case GoalPeriodWeekly:
		return 7
	case GoalPeriodMonthly:
		return 30
	}
	return 0
}

// WalletRole is a member's role inside a shared wallet.
type WalletRole string

const (
	WalletRoleOwner  WalletRole = "owner"
	WalletRoleMember WalletRole = "member"
)
