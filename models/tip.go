package models

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/unibudget/unibudget_backend/config"
	"github.com/unibudget/unibudget_backend/utils"
	"gorm.io/gorm"
)

// Tip is a money-saving tip in the shared feed. Likes is a plain counter;
// the per-user "already liked" flag lives in Redis.
type Tip struct {
	ID       int    `gorm:"primary_key" json:"id"`
	AuthorId int    `gorm:"index" json:"author_id"`
	Title    string `gorm:"size:150;not null" json:"title"`
	Body     string `gorm:"type:text" json:"body"`
	Category string `gorm:"size:100" json:"category"`
	Likes    int    `gorm:"default:0" json:"likes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewTip struct {
	AuthorId int    `json:"author_id"`
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

func tipLikesKey(tipId int) string {
	return "TipLikes:" + strconv.Itoa(tipId)
}

func CreateTip(ctx context.Context, input *NewTip) (*Tip, error) {
	if input.Title == "" {
		return nil, errors.New("tip title is required")
	}
	tip := Tip{
		AuthorId: input.AuthorId,
		Title:    input.Title,
		Body:     input.Body,
		Category: input.Category,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&tip).Error; err != nil {
		return nil, err
	}
	return &tip, nil
}

// GetTips returns the feed newest first.
func GetTips(ctx context.Context) ([]*Tip, error) {
	db := config.GetDB()
	var tips []*Tip
	err := db.WithContext(ctx).Order("created_at DESC").Find(&tips).Error
	if err != nil {
		return nil, err
	}
	return tips, nil
}

func GetTip(ctx context.Context, id int) (*Tip, error) {
	return utils.FetchSingleModel[Tip](ctx, id)
}

// LikeTip increments the counter once per user. A second like from the
// same user is a no-op.
func LikeTip(ctx context.Context, tipId int, userId int) (*Tip, error) {
	tip, err := utils.FetchSingleModel[Tip](ctx, tipId)
	if err != nil {
		return nil, err
	}

	liked, err := config.IsRedisSetMember(tipLikesKey(tipId), strconv.Itoa(userId))
	if err == nil && liked {
		return tip, nil
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&Tip{ID: tipId}).
		Update("likes", gorm.Expr("likes + 1")).Error
	if err != nil {
		return nil, err
	}
	_ = config.AddRedisSet(tipLikesKey(tipId), strconv.Itoa(userId))

	tip.Likes++
	return tip, nil
}

// DeleteTip removes a tip; only its author can.
func DeleteTip(ctx context.Context, tipId int, userId int) error {
	tip, err := utils.FetchSingleModel[Tip](ctx, tipId)
	if err != nil {
		return err
	}
	if tip.AuthorId != userId {
		return errors.New("only the author can delete this tip")
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&Tip{}, tipId).Error; err != nil {
		return err
	}
	_ = config.RemoveRedisKey(tipLikesKey(tipId))
	return nil
}
