package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDiscount(t *testing.T) {
	cases := []struct {
		total   int64
		percent int64
		want    int64
	}{
		{9500, 20, 7600},
		{1000, 0, 1000},
		{1000, 100, 0},
		//7.5 -> 8（偶数丸め）
		{250, 3, 242},
		//4.5 -> 4（偶数丸め）
		{150, 3, 146},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ApplyDiscount(tc.total, tc.percent), "total=%d percent=%d", tc.total, tc.percent)
	}
}

func TestCoupon_IsExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	c := Coupon{Expiry: now.Add(time.Hour)}
	assert.False(t, c.IsExpired(now))

	c.Expiry = now
	assert.True(t, c.IsExpired(now))
}

func TestAverageRating(t *testing.T) {
	assert.True(t, AverageRating(nil).IsZero())
	assert.Equal(t, "4.5", AverageRating([]int{4, 5}).String())
	assert.Equal(t, "4.3", AverageRating([]int{4, 4, 5}).String())
	//4.75 -> 4.8, 4.25 -> 4.2
	assert.Equal(t, "4.8", AverageRating([]int{4, 5, 5, 5}).String())
	assert.Equal(t, "4.2", AverageRating([]int{4, 4, 4, 5}).String())
	assert.Equal(t, "5", AverageRating([]int{5, 5}).String())
}
