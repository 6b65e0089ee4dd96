package model

import "time"

type ReactionKind string

const (
	ReactionNone    ReactionKind = ""
	ReactionLike    ReactionKind = "LIKE"
	ReactionDislike ReactionKind = "DISLIKE"
)

// 1記事1投票者につき1行。likeとdislikeを同時に持てない
type PostReaction struct {
	ID        int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    int64        `gorm:"not null;uniqueIndex:idx_post_reaction_voter" json:"post_id"`
	UserID    int64        `gorm:"not null;uniqueIndex:idx_post_reaction_voter;index" json:"user_id"`
	Kind      ReactionKind `gorm:"type:varchar(10);not null;index" json:"kind"`
	CreatedAt time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

func (k ReactionKind) Opposite() ReactionKind {
	switch k {
	case ReactionLike:
		return ReactionDislike
	case ReactionDislike:
		return ReactionLike
	default:
		return ReactionNone
	}
}

// APIで返す表記
func (k ReactionKind) String() string {
	switch k {
	case ReactionLike:
		return "like"
	case ReactionDislike:
		return "dislike"
	default:
		return "none"
	}
}

// 1回のトグルで行う変更
type ReactionTransition struct {
	//外す反応（この順で外す）
	Clear []ReactionKind
	//付ける反応。ReactionNoneなら何も付けない
	Add ReactionKind
}

// 現在の反応とアクションから次の変更を決める。
// 逆の反応を先に外し、その後に同じ反応ならトグルで外す。
func NextReaction(current ReactionKind, action ReactionKind) ReactionTransition {
	var t ReactionTransition
	if !action.Valid() {
		return t
	}

	if current == action.Opposite() {
		t.Clear = append(t.Clear, current)
		current = ReactionNone
	}

	if current == action {
		t.Clear = append(t.Clear, action)
		return t
	}

	t.Add = action
	return t
}
