// seed-demo creates a demo student account with a small realistic ledger:
// income, everyday spend, a subscription, rent, a saving goal, a budget and
// a student finance record with three termly payments. Re-running resets
// the demo user's ledger.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/unibudget/unibudget_backend/config"
	"github.com/unibudget/unibudget_backend/models"
	"github.com/unibudget/unibudget_backend/utils"
)

const (
	demoUsername = "demoStudent"
	demoPassword = "demo-password-1"
	demoName     = "Demo Student"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	var user models.User
	err := db.WithContext(ctx).Where("username = ?", demoUsername).First(&user).Error
	if err != nil {
		hashed, err := utils.HashPassword(demoPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
			os.Exit(1)
		}
		user = models.User{
			Username: demoUsername,
			Name:     demoName,
			Password: string(hashed),
			IsActive: utils.NewTrue(),
		}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create demo user: %v\n", err)
			os.Exit(1)
		}
	}

	// wipe the previous demo ledger so reseeding stays deterministic
	if err := db.WithContext(ctx).Where("user_id = ?", user.ID).Delete(&models.Transaction{}).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to clear demo ledger: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	monthly := models.FrequencyMonthly
	weeklyPeriod := models.GoalPeriodWeekly
	monthlyPeriod := models.GoalPeriodMonthly
	goalStart := now.AddDate(0, 0, -2)

	entries := []*models.NewTransaction{
		{Type: models.TransactionTypeIncome, Amount: decimal.NewFromInt(400), Title: "Part-time job", Category: "Work", Date: now.AddDate(0, 0, -10)},
		{Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(-24), Title: "Groceries", Category: "Food", Date: now.AddDate(0, 0, -3)},
		{Type: models.TransactionTypeExpense, Amount: decimal.RequireFromString("-12.50"), Title: "Night out", Category: "Social", Date: now.AddDate(0, 0, -1)},
		{Type: models.TransactionTypeSubscription, Amount: decimal.RequireFromString("-9.99"), Title: "Spotify", Category: "Entertainment", Date: now.AddDate(0, -2, 0), Frequency: &monthly},
		{Type: models.TransactionTypeHouse, Amount: decimal.NewFromInt(-450), Title: "Rent", Category: "Housing", Date: now.AddDate(0, -1, -5), Frequency: &monthly},
		{Type: models.TransactionTypeSaving, Amount: decimal.NewFromInt(150), Title: "Holiday fund", CurrentSaved: decimal.NewFromInt(40), Period: &monthlyPeriod, StartDate: &goalStart},
		{Type: models.TransactionTypeBudget, Amount: decimal.NewFromInt(50), Title: "Weekly food budget", Period: &weeklyPeriod, StartDate: &goalStart},
		{
			Type: models.TransactionTypeStudentFinance, Amount: decimal.NewFromInt(4500), Title: "Maintenance loan", Date: now.AddDate(0, 0, -30),
			StudentFinancePayments: []*models.NewStudentFinancePayment{
				{Date: now.AddDate(0, 0, -30), Amount: decimal.NewFromInt(1500)},
				{Date: now.AddDate(0, 2, 0), Amount: decimal.NewFromInt(1500)},
				{Date: now.AddDate(0, 5, 0), Amount: decimal.NewFromInt(1500)},
			},
		},
	}

	for _, e := range entries {
		e.UserId = user.ID
		if _, err := models.CreateTransaction(ctx, e); err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed %q: %v\n", e.Title, err)
			os.Exit(1)
		}
	}

	balance, err := models.GetBalance(ctx, user.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read balance: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("seeded %s (user id %d), balance £%s\n", demoUsername, user.ID, balance.Amount.StringFixed(2))
}
