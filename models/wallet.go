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

// SharedWallet is a pooled budget shared between members. Its balance is
// derived: budget minus the sum of wallet transactions.
type SharedWallet struct {
	ID          int             `gorm:"primary_key" json:"id"`
	OwnerId     int             `gorm:"index;not null" json:"owner_id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Budget      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"budget"`

	Members      []*WalletMember      `gorm:"foreignKey:WalletId" json:"members,omitempty"`
	Transactions []*WalletTransaction `gorm:"foreignKey:WalletId" json:"transactions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type WalletMember struct {
	ID       int        `gorm:"primary_key" json:"id"`
	WalletId int        `gorm:"index:idx_wallet_user,unique;not null" json:"wallet_id"`
	UserId   int        `gorm:"index:idx_wallet_user,unique;not null" json:"user_id"`
	Role     WalletRole `gorm:"size:10;not null" json:"role"`

	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// WalletTransaction is spend recorded against the shared pool. Amounts are
// stored positive; they always reduce the wallet balance.
type WalletTransaction struct {
	ID          int             `gorm:"primary_key" json:"id"`
	WalletId    int             `gorm:"index;not null" json:"wallet_id"`
	UserId      int             `gorm:"index;not null" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Category    string          `gorm:"size:100" json:"category"`
	Description string          `gorm:"type:text" json:"description"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewSharedWallet struct {
	OwnerId     int             `json:"-"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Budget      decimal.Decimal `json:"budget"`
}

type NewWalletTransaction struct {
	WalletId    int             `json:"-"`
	UserId      int             `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// WalletBalance derives the remaining pool from the loaded transactions.
func (w *SharedWallet) WalletBalance() decimal.Decimal {
	spent := decimal.Zero
	for _, t := range w.Transactions {
		if t == nil {
			continue
		}
		spent = spent.Add(t.Amount)
	}
	return w.Budget.Sub(spent)
}

// memberRole returns the user's role in the wallet, or RecordNotFound.
func memberRole(ctx context.Context, walletId int, userId int) (WalletRole, error) {
	db := config.GetDB()
	var member WalletMember
	err := db.WithContext(ctx).
		Where("wallet_id = ? AND user_id = ?", walletId, userId).
		First(&member).Error
	if err != nil {
		return "", utils.ErrorRecordNotFound
	}
	return member.Role, nil
}

// fetchWalletForMember loads a wallet the user belongs to, with members and
// transactions preloaded. Non-members get RecordNotFound, not forbidden,
// so wallet ids are not probeable.
func fetchWalletForMember(ctx context.Context, walletId int, userId int) (*SharedWallet, error) {
	if _, err := memberRole(ctx, walletId, userId); err != nil {
		return nil, err
	}
	db := config.GetDB()
	var wallet SharedWallet
	err := db.WithContext(ctx).
		Preload("Members").
		Preload("Transactions").
		First(&wallet, walletId).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &wallet, nil
}

// CreateSharedWallet opens a pool with the creator as owner.
func CreateSharedWallet(ctx context.Context, input *NewSharedWallet) (*SharedWallet, error) {
	if input.OwnerId <= 0 {
		return nil, errors.New("owner id is required")
	}
	if input.Name == "" {
		return nil, errors.New("wallet name is required")
	}
	if input.Budget.IsNegative() {
		return nil, errors.New("wallet budget cannot be negative")
	}

	wallet := SharedWallet{
		OwnerId:     input.OwnerId,
		Name:        input.Name,
		Description: input.Description,
		Budget:      input.Budget,
		Members: []*WalletMember{
			{UserId: input.OwnerId, Role: WalletRoleOwner},
		},
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetSharedWallets lists every wallet the user is a member of.
func GetSharedWallets(ctx context.Context, userId int) ([]*SharedWallet, error) {
	db := config.GetDB()
	var memberships []*WalletMember
	err := db.WithContext(ctx).Where("user_id = ?", userId).Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	var ids []int
	for _, m := range memberships {
		ids = append(ids, m.WalletId)
	}
	if len(ids) == 0 {
		return []*SharedWallet{}, nil
	}

	var wallets []*SharedWallet
	err = db.WithContext(ctx).
		Preload("Members").
		Preload("Transactions").
		Find(&wallets, ids).Error
	if err != nil {
		return nil, err
	}
	return wallets, nil
}

func GetSharedWallet(ctx context.Context, walletId int, userId int) (*SharedWallet, error) {
	return fetchWalletForMember(ctx, walletId, userId)
}

// UpdateSharedWallet edits name/description/budget. Owner only.
func UpdateSharedWallet(ctx context.Context, walletId int, userId int, input *NewSharedWallet) (*SharedWallet, error) {
	role, err := memberRole(ctx, walletId, userId)
	if err != nil {
		return nil, err
	}
	if role != WalletRoleOwner {
		return nil, errors.New("only the wallet owner can edit the wallet")
	}
	if input.Name == "" {
		return nil, errors.New("wallet name is required")
	}
	if input.Budget.IsNegative() {
		return nil, errors.New("wallet budget cannot be negative")
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&SharedWallet{ID: walletId}).Updates(map[string]interface{}{
		"Name":        input.Name,
		"Description": input.Description,
		"Budget":      input.Budget,
	}).Error
	if err != nil {
		return nil, err
	}
	return fetchWalletForMember(ctx, walletId, userId)
}

// DeleteSharedWallet removes the wallet and everything under it. Owner only.
func DeleteSharedWallet(ctx context.Context, walletId int, userId int) error {
	role, err := memberRole(ctx, walletId, userId)
	if err != nil {
		return err
	}
	if role != WalletRoleOwner {
		return errors.New("only the wallet owner can delete the wallet")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Where("wallet_id = ?", walletId).Delete(&WalletTransaction{}).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Where("wallet_id = ?", walletId).Delete(&WalletMember{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&SharedWallet{}, walletId).Error
}

// InviteToWallet issues a signed invite token. Any member can invite.
func InviteToWallet(ctx context.Context, walletId int, userId int) (string, error) {
	if _, err := memberRole(ctx, walletId, userId); err != nil {
		return "", err
	}
	return utils.JwtGenerateWalletInvite(walletId, userId, string(WalletRoleMember))
}

// JoinWallet redeems an invite token for the joining user. Re-joining a
// wallet you already belong to is a no-op success.
func JoinWallet(ctx context.Context, token string, userId int) (*SharedWallet, error) {
	claim, err := utils.JwtValidateWalletInvite(token)
	if err != nil {
		return nil, errors.New("invite link is invalid or has expired")
	}

	db := config.GetDB()
	var wallet SharedWallet
	if err := db.WithContext(ctx).First(&wallet, claim.WalletId).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if _, err := memberRole(ctx, claim.WalletId, userId); err == nil {
		return fetchWalletForMember(ctx, claim.WalletId, userId)
	}

	member := WalletMember{WalletId: claim.WalletId, UserId: userId, Role: WalletRole(claim.Role)}
	if member.Role != WalletRoleOwner {
		member.Role = WalletRoleMember
	}
	if err := db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, err
	}
	return fetchWalletForMember(ctx, claim.WalletId, userId)
}

// LeaveWallet removes the caller's membership. The owner cannot leave;
// they delete the wallet instead.
func LeaveWallet(ctx context.Context, walletId int, userId int) error {
	role, err := memberRole(ctx, walletId, userId)
	if err != nil {
		return err
	}
	if role == WalletRoleOwner {
		return errors.New("the owner cannot leave the wallet, delete it instead")
	}
	db := config.GetDB()
	return db.WithContext(ctx).
		Where("wallet_id = ? AND user_id = ?", walletId, userId).
		Delete(&WalletMember{}).Error
}

// CreateWalletTransaction records spend against the pool. Members only;
// the amount must be positive and is stored as-is.
func CreateWalletTransaction(ctx context.Context, input *NewWalletTransaction) (*WalletTransaction, error) {
	if _, err := memberRole(ctx, input.WalletId, input.UserId); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, errors.New("wallet spend must be greater than zero")
	}

	tx := WalletTransaction{
		WalletId:    input.WalletId,
		UserId:      input.UserId,
		Amount:      input.Amount,
		Date:        input.Date,
		Category:    input.Category,
		Description: input.Description,
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

// DeleteWalletTransaction removes a wallet entry. The spender or the owner
// can delete it.
func DeleteWalletTransaction(ctx context.Context, walletId int, txId int, userId int) error {
	role, err := memberRole(ctx, walletId, userId)
	if err != nil {
		return err
	}

	db := config.GetDB()
	var tx WalletTransaction
	err = db.WithContext(ctx).
		Where("wallet_id = ?", walletId).
		First(&tx, txId).Error
	if err != nil {
		return utils.ErrorRecordNotFound
	}
	if tx.UserId != userId && role != WalletRoleOwner {
		return fmt.Errorf("only the spender or the wallet owner can delete this entry")
	}
	return db.WithContext(ctx).Delete(&WalletTransaction{}, txId).Error
}
