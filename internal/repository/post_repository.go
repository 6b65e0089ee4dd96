package repository

import (
	"context"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
)

// 管理者が更新できる項目。nilは変更しない
type PostPatch struct {
	Title       *string
	Description *string
	Category    *string
	Author      *string
}

type PostRepository interface {
	Create(ctx context.Context, p model.Post) (model.Post, error)
	Update(ctx context.Context, id int64, patch PostPatch) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (model.Post, error)
	//行ロック付き（Tx内で使う）
	FindByIDForUpdate(ctx context.Context, id int64) (model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	IncrementViews(ctx context.Context, id int64) error
}

// 記事への反応（1記事1投票者につき1行）
type ReactionRepository interface {
	//反応が無ければReactionNone
	FindKind(ctx context.Context, postID, userID int64) (model.ReactionKind, error)
	Add(ctx context.Context, postID, userID int64, kind model.ReactionKind) error
	//無くても成功
	Remove(ctx context.Context, postID, userID int64, kind model.ReactionKind) error
	ListVoters(ctx context.Context, postID int64) (liked []int64, disliked []int64, err error)
	DeleteByPost(ctx context.Context, postID int64) error
}
