package usecase

import (
	"context"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"
)

// 記事へのlike/dislikeトグル
type ReactionUsecase struct {
	tx        repo.TransactionManager
	posts     repo.PostRepository
	reactions repo.ReactionRepository
}

// DI
func NewReactionUsecase(tx repo.TransactionManager, posts repo.PostRepository, reactions repo.ReactionRepository) *ReactionUsecase {
	return &ReactionUsecase{tx: tx, posts: posts, reactions: reactions}
}

type MyReactionOutput struct {
	PostID   int64  `json:"post_id"`
	Reaction string `json:"reaction"`
}

// 逆の反応を外す→同じ反応なら取り消し、違えば付ける。
// 記事の行ロックを取るので同じ記事へのトグルは直列になる
func (u *ReactionUsecase) ApplyReaction(ctx context.Context, postID int64, voterID int64, action model.ReactionKind) (PostOutput, error) {
	if voterID <= 0 {
		return PostOutput{}, unauthorized()
	}
	if postID <= 0 {
		return PostOutput{}, validationError("invalid blog id")
	}
	if !action.Valid() {
		return PostOutput{}, validationError("invalid reaction")
	}

	var out PostOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		post, err := r.Posts().FindByIDForUpdate(ctx, postID)
		if err != nil {
			return notFoundOr(err, "blog not found")
		}

		current, err := r.Reactions().FindKind(ctx, postID, voterID)
		if err != nil {
			return storageError(err)
		}

		next := model.NextReaction(current, action)
		for _, k := range next.Clear {
			if err := r.Reactions().Remove(ctx, postID, voterID, k); err != nil {
				return storageError(err)
			}
		}
		if next.Add != model.ReactionNone {
			if err := r.Reactions().Add(ctx, postID, voterID, next.Add); err != nil {
				return storageError(err)
			}
		}

		liked, disliked, err := r.Reactions().ListVoters(ctx, postID)
		if err != nil {
			return storageError(err)
		}
		post.LikedBy = liked
		post.DislikedBy = disliked

		isLiked := next.Add == model.ReactionLike
		isDisliked := next.Add == model.ReactionDislike
		out = PostOutput{Post: post, Liked: &isLiked, Disliked: &isDisliked}
		return nil
	})
	if err != nil {
		return PostOutput{}, wrapTxError(err)
	}
	return out, nil
}

// 投票者から見た今の反応（none/like/dislike）
func (u *ReactionUsecase) MyReaction(ctx context.Context, postID int64, voterID int64) (MyReactionOutput, error) {
	if voterID <= 0 {
		return MyReactionOutput{}, unauthorized()
	}
	if postID <= 0 {
		return MyReactionOutput{}, validationError("invalid blog id")
	}
	if _, err := u.posts.FindByID(ctx, postID); err != nil {
		return MyReactionOutput{}, notFoundOr(err, "blog not found")
	}

	kind, err := u.reactions.FindKind(ctx, postID, voterID)
	if err != nil {
		return MyReactionOutput{}, storageError(err)
	}
	return MyReactionOutput{PostID: postID, Reaction: kind.String()}, nil
}
