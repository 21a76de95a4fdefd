package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/unibudget/unibudget_backend/models"
)

func TestBuildTransactionsWorkbook(t *testing.T) {
	freq := models.FrequencyMonthly
	data := []*models.Transaction{
		{Type: models.TransactionTypeExpense, Title: "Groceries", Category: "Food",
			Amount: decimal.RequireFromString("-24.50"),
			Date:   time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)},
		{Type: models.TransactionTypeSubscription, Title: "Spotify", Category: "Entertainment",
			Amount: decimal.RequireFromString("-9.99"), Frequency: &freq,
			Date: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}

	f, err := buildTransactionsWorkbook(data)
	if err != nil {
		t.Fatalf("buildTransactionsWorkbook: %v", err)
	}

	cases := []struct {
		cell string
		want string
	}{
		{"A1", "Date"},
		{"E1", "Amount"},
		{"A2", "2026-03-02"},
		{"B2", "expense"},
		{"C2", "Groceries"},
		{"E2", "-24.5"},
		{"B3", "subscription"},
		{"F3", "monthly"},
	}
	for _, tc := range cases {
		got, err := f.GetCellValue("Transactions", tc.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", tc.cell, err)
		}
		if got != tc.want {
			t.Fatalf("cell %s = %q, want %q", tc.cell, got, tc.want)
		}
	}

	// the workbook serializes fully in memory before any response bytes move
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty workbook")
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, time.August, 28, 15, 4, 5, 0, time.UTC)
	if got := ExportFilename(now); got != "transactions-2026-08-28.xlsx" {
		t.Fatalf("ExportFilename = %q", got)
	}
}
