package repository

import (
	"context"
	"errors"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"

	"gorm.io/gorm"
)

type reactionGormRepository struct {
	db *gorm.DB
}

// DI
func NewReactionGormRepository(db *gorm.DB) repo.ReactionRepository {
	return &reactionGormRepository{db: db}
}

func (r *reactionGormRepository) FindKind(ctx context.Context, postID, userID int64) (model.ReactionKind, error) {
	var row model.PostReaction
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ReactionNone, nil
	}
	if err != nil {
		return model.ReactionNone, err
	}
	return row.Kind, nil
}

// 1投票者1行なので、別の反応が残っているとErrDuplicate
func (r *reactionGormRepository) Add(ctx context.Context, postID, userID int64, kind model.ReactionKind) error {
	row := model.PostReaction{PostID: postID, UserID: userID, Kind: kind}
	return mapError(r.db.WithContext(ctx).Create(&row).Error)
}

func (r *reactionGormRepository) Remove(ctx context.Context, postID, userID int64, kind model.ReactionKind) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ? AND kind = ?", postID, userID, kind).
		Delete(&model.PostReaction{}).Error
}

// 反応した順
func (r *reactionGormRepository) ListVoters(ctx context.Context, postID int64) ([]int64, []int64, error) {
	var rows []model.PostReaction
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	liked := []int64{}
	disliked := []int64{}
	for _, row := range rows {
		switch row.Kind {
		case model.ReactionLike:
			liked = append(liked, row.UserID)
		case model.ReactionDislike:
			disliked = append(disliked, row.UserID)
		}
	}
	return liked, disliked, nil
}

func (r *reactionGormRepository) DeleteByPost(ctx context.Context, postID int64) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.PostReaction{}).Error
}
