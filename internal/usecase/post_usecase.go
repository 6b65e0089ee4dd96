package usecase

import (
	"context"
	"strings"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"
)

type PostUsecase struct {
	posts     repo.PostRepository
	reactions repo.ReactionRepository
	tx        repo.TransactionManager
}

// DI
func NewPostUsecase(posts repo.PostRepository, reactions repo.ReactionRepository, tx repo.TransactionManager) *PostUsecase {
	return &PostUsecase{posts: posts, reactions: reactions, tx: tx}
}

type CreatePostInput struct {
	Title       string
	Description string
	Category    string
	Author      string
}

// nilは変更なし
type UpdatePostInput struct {
	Title       *string
	Description *string
	Category    *string
	Author      *string
}

// 返却用。liked/dislikedは操作したユーザーから見た状態（反応APIのときだけ）
type PostOutput struct {
	model.Post
	Liked    *bool `json:"liked,omitempty"`
	Disliked *bool `json:"disliked,omitempty"`
}

func (u *PostUsecase) Create(ctx context.Context, in CreatePostInput) (PostOutput, error) {
	p := model.Post{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Author:      strings.TrimSpace(in.Author),
	}
	if p.Title == "" || p.Description == "" || p.Category == "" {
		return PostOutput{}, validationError("title, description and category are required")
	}
	if p.Author == "" {
		p.Author = "Admin"
	}

	created, err := u.posts.Create(ctx, p)
	if err != nil {
		return PostOutput{}, storageError(err)
	}
	created.LikedBy = []int64{}
	created.DislikedBy = []int64{}
	return PostOutput{Post: created}, nil
}

func (u *PostUsecase) Update(ctx context.Context, postID int64, in UpdatePostInput) (PostOutput, error) {
	if postID <= 0 {
		return PostOutput{}, validationError("invalid blog id")
	}
	for _, v := range []*string{in.Title, in.Description, in.Category} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return PostOutput{}, validationError("title, description and category must not be empty")
		}
	}

	if err := u.posts.Update(ctx, postID, repo.PostPatch{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Author:      in.Author,
	}); err != nil {
		return PostOutput{}, notFoundOr(err, "blog not found")
	}

	p, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return PostOutput{}, notFoundOr(err, "blog not found")
	}
	return u.withVoters(ctx, p)
}

// 反応もまとめて消す
func (u *PostUsecase) Delete(ctx context.Context, postID int64) (PostOutput, error) {
	if postID <= 0 {
		return PostOutput{}, validationError("invalid blog id")
	}

	var out PostOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Posts().FindByIDForUpdate(ctx, postID)
		if err != nil {
			return notFoundOr(err, "blog not found")
		}
		if err := r.Reactions().DeleteByPost(ctx, postID); err != nil {
			return storageError(err)
		}
		if err := r.Posts().Delete(ctx, postID); err != nil {
			return notFoundOr(err, "blog not found")
		}
		p.LikedBy = []int64{}
		p.DislikedBy = []int64{}
		out = PostOutput{Post: p}
		return nil
	})
	if err != nil {
		return PostOutput{}, wrapTxError(err)
	}
	return out, nil
}

// 閲覧数を+1してから返す
func (u *PostUsecase) View(ctx context.Context, postID int64) (PostOutput, error) {
	if postID <= 0 {
		return PostOutput{}, validationError("invalid blog id")
	}
	if err := u.posts.IncrementViews(ctx, postID); err != nil {
		return PostOutput{}, notFoundOr(err, "blog not found")
	}

	p, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return PostOutput{}, notFoundOr(err, "blog not found")
	}
	return u.withVoters(ctx, p)
}

func (u *PostUsecase) List(ctx context.Context) ([]PostOutput, error) {
	posts, err := u.posts.List(ctx)
	if err != nil {
		return nil, storageError(err)
	}

	out := make([]PostOutput, 0, len(posts))
	for _, p := range posts {
		po, err := u.withVoters(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, po)
	}
	return out, nil
}

// likedBy/dislikedByを詰める
func (u *PostUsecase) withVoters(ctx context.Context, p model.Post) (PostOutput, error) {
	liked, disliked, err := u.reactions.ListVoters(ctx, p.ID)
	if err != nil {
		return PostOutput{}, storageError(err)
	}
	p.LikedBy = liked
	p.DislikedBy = disliked
	return PostOutput{Post: p}, nil
}
