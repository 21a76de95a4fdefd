package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/unibudget/unibudget_backend/config"
	"gorm.io/gorm/clause"
)

// Balance is a derived aggregate: one row per user, fully recomputed from
// the ledger on every mutation, never patched incrementally.
type Balance struct {
	ID        int             `gorm:"primary_key" json:"id"`
	UserId    int             `gorm:"uniqueIndex;not null" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// Types that never count toward spendable balance. Goals are earmarked
// money, house is tracked-but-not-spendable, and student finance must be
// logged as income/expense separately to affect balance.
var balanceExcludedTypes = []TransactionType{
	TransactionTypeSaving,
	TransactionTypeBudget,
	TransactionTypeHouse,
	TransactionTypeStudentFinance,
}

// SumSpendable is the pure reconciliation kernel: the sum of stored
// (already signed) amounts over entries outside the exclusion set.
func SumSpendable(entries []*Transaction) decimal.Decimal {
	excluded := make(map[TransactionType]bool, len(balanceExcludedTypes))
	for _, t := range balanceExcludedTypes {
		excluded[t] = true
	}
	sum := decimal.Zero
	for _, e := range entries {
		if e == nil || excluded[e.Type] {
			continue
		}
		sum = sum.Add(e.Amount)
	}
	return sum
}

// RecomputeBalance rebuilds the user's balance from the ledger and upserts
// it. Idempotent: two runs with no intervening mutation yield the same
// value. A best-effort Redis lock serializes concurrent recomputes for the
// same user; if the lock cannot be obtained the recompute proceeds anyway,
// since the full rebuild makes late writers converge on the same sum.
func RecomputeBalance(ctx context.Context, userId int) (decimal.Decimal, error) {
	if userId <= 0 {
		return decimal.Zero, errors.New("user id is required")
	}

	if redisLock := config.GetRedisLock(); redisLock != nil {
		lock, err := redisLock.Obtain(ctx, fmt.Sprintf("lock:balance:%d", userId), 10*time.Second, nil)
		if err == nil {
			defer func() {
				if releaseErr := lock.Release(ctx); releaseErr != nil {
					config.GetLogger().WithFields(logrus.Fields{
						"field":   "RecomputeBalance",
						"user_id": userId,
					}).Warn("failed to release balance lock: " + releaseErr.Error())
				}
			}()
		}
	}

	db := config.GetDB()
	var entries []*Transaction
	err := db.WithContext(ctx).
		Where("user_id = ? AND type NOT IN ?", userId, balanceExcludedTypes).
		Find(&entries).Error
	if err != nil {
		return decimal.Zero, err
	}

	sum := SumSpendable(entries)

	balance := Balance{UserId: userId, Amount: sum}
	err = db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(&balance).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// GetBalance reads the user's balance, creating a zero row on first read.
func GetBalance(ctx context.Context, userId int) (*Balance, error) {
	if userId <= 0 {
		return nil, errors.New("user id is required")
	}
	db := config.GetDB()
	var balance Balance
	err := db.WithContext(ctx).Where("user_id = ?", userId).First(&balance).Error
	if err == nil {
		return &balance, nil
	}

	balance = Balance{UserId: userId, Amount: decimal.Zero}
	if err := db.WithContext(ctx).Create(&balance).Error; err != nil {
		return nil, err
	}
	return &balance, nil
}

// SetBalance overwrites the balance directly (manual adjustment path).
func SetBalance(ctx context.Context, userId int, amount decimal.Decimal) (*Balance, error) {
	if userId <= 0 {
		return nil, errors.New("user id is required")
	}
	if amount.IsNegative() {
		return nil, errors.New("balance cannot be negative")
	}
	db := config.GetDB()
	balance := Balance{UserId: userId, Amount: amount}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(&balance).Error
	if err != nil {
		return nil, err
	}
	return &balance, nil
}
