package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// DB-free checks on the reconciliation kernel.

func entry(txType TransactionType, amount string) *Transaction {
	return &Transaction{
		Type:   txType,
		Amount: decimal.RequireFromString(amount),
		Date:   time.Now(),
	}
}

func TestSumSpendable_SignedSum(t *testing.T) {
	ledger := []*Transaction{
		entry(TransactionTypeExpense, "-20"),
		entry(TransactionTypeIncome, "100"),
	}
	got := SumSpendable(ledger)
	if !got.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("SumSpendable = %s, want 80", got)
	}
}

func TestSumSpendable_ExcludesEarmarkedTypes(t *testing.T) {
	ledger := []*Transaction{
		entry(TransactionTypeIncome, "500"),
		entry(TransactionTypeSaving, "200"),
		entry(TransactionTypeBudget, "150"),
		entry(TransactionTypeHouse, "-400"),
		entry(TransactionTypeStudentFinance, "3000"),
		entry(TransactionTypeSubscription, "-9.99"),
		entry(TransactionTypeBalanceAdjustment, "25"),
	}
	got := SumSpendable(ledger)
	want := decimal.RequireFromString("515.01")
	if !got.Equal(want) {
		t.Fatalf("SumSpendable = %s, want %s", got, want)
	}
}

func TestSumSpendable_Idempotent(t *testing.T) {
	ledger := []*Transaction{
		entry(TransactionTypeIncome, "1234.56"),
		entry(TransactionTypeExpense, "-78.90"),
		entry(TransactionTypeSaving, "50"),
	}
	first := SumSpendable(ledger)
	second := SumSpendable(ledger)
	if !first.Equal(second) {
		t.Fatalf("two runs disagree: %s vs %s", first, second)
	}
}

func TestSumSpendable_EmptyAndNil(t *testing.T) {
	if got := SumSpendable(nil); !got.IsZero() {
		t.Fatalf("nil ledger: SumSpendable = %s, want 0", got)
	}
	if got := SumSpendable([]*Transaction{nil, entry(TransactionTypeIncome, "10")}); !got.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("nil entry should be skipped, got %s", got)
	}
}

func TestValidateSignConvention(t *testing.T) {
	if err := validateSignConvention(TransactionTypeExpense, decimal.NewFromInt(5)); err == nil {
		t.Fatal("positive expense should be rejected")
	}
	if err := validateSignConvention(TransactionTypeIncome, decimal.NewFromInt(-5)); err == nil {
		t.Fatal("negative income should be rejected")
	}
	if err := validateSignConvention(TransactionTypeExpense, decimal.NewFromInt(-5)); err != nil {
		t.Fatalf("negative expense rejected: %v", err)
	}
	// zero passes either way
	if err := validateSignConvention(TransactionTypeExpense, decimal.Zero); err != nil {
		t.Fatalf("zero expense rejected: %v", err)
	}
	// balance-adjustment carries no convention
	if err := validateSignConvention(TransactionTypeBalanceAdjustment, decimal.NewFromInt(-5)); err != nil {
		t.Fatalf("balance-adjustment rejected: %v", err)
	}
}

func TestDisbursedStudentFinancePayments(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	tx := &Transaction{
		Type: TransactionTypeStudentFinance,
		StudentFinancePayments: []*StudentFinancePayment{
			{ID: 1, Date: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)},
			{ID: 2, Date: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)},
			{ID: 3, Date: time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	due := DisbursedStudentFinancePayments(tx, now)
	if len(due) != 2 {
		t.Fatalf("got %d disbursed payments, want 2", len(due))
	}
	if due[0].ID != 1 || due[1].ID != 2 {
		t.Fatalf("unexpected payments: %+v", due)
	}
}
