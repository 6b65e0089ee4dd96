package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextReaction(t *testing.T) {
	cases := []struct {
		name    string
		current ReactionKind
		action  ReactionKind
		clear   []ReactionKind
		add     ReactionKind
	}{
		{"none -> like", ReactionNone, ReactionLike, nil, ReactionLike},
		{"none -> dislike", ReactionNone, ReactionDislike, nil, ReactionDislike},
		{"like -> like は取り消し", ReactionLike, ReactionLike, []ReactionKind{ReactionLike}, ReactionNone},
		{"dislike -> dislike は取り消し", ReactionDislike, ReactionDislike, []ReactionKind{ReactionDislike}, ReactionNone},
		{"dislike -> like は切り替え", ReactionDislike, ReactionLike, []ReactionKind{ReactionDislike}, ReactionLike},
		{"like -> dislike は切り替え", ReactionLike, ReactionDislike, []ReactionKind{ReactionLike}, ReactionDislike},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextReaction(tc.current, tc.action)
			assert.Equal(t, tc.clear, got.Clear)
			assert.Equal(t, tc.add, got.Add)
		})
	}
}

func TestNextReaction_InvalidAction(t *testing.T) {
	got := NextReaction(ReactionLike, ReactionNone)
	assert.Empty(t, got.Clear)
	assert.Equal(t, ReactionNone, got.Add)
}

// 状態を順に適用しても likeとdislikeが同時に残らない
func TestNextReaction_NeverBoth(t *testing.T) {
	actions := []ReactionKind{
		ReactionLike, ReactionDislike, ReactionDislike, ReactionLike, ReactionLike,
		ReactionDislike, ReactionLike, ReactionDislike, ReactionDislike, ReactionDislike,
	}

	held := map[ReactionKind]bool{}
	current := ReactionNone
	for _, a := range actions {
		tr := NextReaction(current, a)
		for _, c := range tr.Clear {
			delete(held, c)
		}
		if tr.Add != ReactionNone {
			held[tr.Add] = true
		}
		current = tr.Add

		assert.False(t, held[ReactionLike] && held[ReactionDislike])
		assert.LessOrEqual(t, len(held), 1)
	}
}

func TestReactionKind_String(t *testing.T) {
	assert.Equal(t, "like", ReactionLike.String())
	assert.Equal(t, "dislike", ReactionDislike.String())
	assert.Equal(t, "none", ReactionNone.String())
	assert.Equal(t, ReactionLike, ReactionDislike.Opposite())
	assert.Equal(t, ReactionNone, ReactionNone.Opposite())
}
