package models

import (
	"log"

	"github.com/unibudget/unibudget_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&Transaction{}, &StudentFinancePayment{},
		&Balance{},
		&SharedWallet{}, &WalletMember{}, &WalletTransaction{},
		&Tip{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
