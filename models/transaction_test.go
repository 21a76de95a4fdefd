package models

import (
	"testing"
	"time"
)

// Retyping a studentfinance entry must not leave its termly payments
// behind: the update path replaces child rows from this decision.

func TestReplacementPayments_TypeChangeDropsTermlyPayments(t *testing.T) {
	payments := []*StudentFinancePayment{
		{ID: 1, Date: day(2026, time.January, 10)},
		{ID: 2, Date: day(2026, time.April, 10)},
		{ID: 3, Date: day(2026, time.July, 10)},
	}

	for _, txType := range []TransactionType{
		TransactionTypeIncome,
		TransactionTypeExpense,
		TransactionTypeSubscription,
		TransactionTypeHouse,
		TransactionTypeSaving,
		TransactionTypeBudget,
		TransactionTypeBalanceAdjustment,
	} {
		if got := replacementPayments(txType, payments); got != nil {
			t.Fatalf("type %s should carry no termly payments, got %d", txType, len(got))
		}
	}

	got := replacementPayments(TransactionTypeStudentFinance, payments)
	if len(got) != 3 {
		t.Fatalf("studentfinance should keep its %d payments, got %d", len(payments), len(got))
	}
}
