// rebuild-balances recomputes stored balances from the ledger, for one user
// or for everyone. Safe to re-run: the recompute is a full rebuild, so a
// second pass with no intervening writes is a no-op.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/rebuild-balances [--user-id N]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/unibudget/unibudget_backend/config"
	"github.com/unibudget/unibudget_backend/models"
	"github.com/sirupsen/logrus"
)

func main() {
	userID := flag.Int("user-id", 0, "Optional: rebuild a single user's balance")
	continueOnError := flag.Bool("continue-on-error", false, "Skip failing users and continue rebuilding others")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	logger := logrus.New()

	var userIDs []int
	if *userID > 0 {
		userIDs = []int{*userID}
	} else {
		if err := db.WithContext(ctx).Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to list users: %v\n", err)
			os.Exit(1)
		}
	}

	failed := 0
	for _, id := range userIDs {
		sum, err := models.RecomputeBalance(ctx, id)
		if err != nil {
			failed++
			logger.WithFields(logrus.Fields{"user_id": id}).Error("rebuild failed: " + err.Error())
			if !*continueOnError {
				os.Exit(1)
			}
			continue
		}
		logger.WithFields(logrus.Fields{"user_id": id, "balance": sum.StringFixed(2)}).Info("rebuilt")
	}

	fmt.Printf("rebuilt %d balances (%d failed)\n", len(userIDs)-failed, failed)
	if failed > 0 {
		os.Exit(2)
	}
}
