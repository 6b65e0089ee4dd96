package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponCreate_Normalizes(t *testing.T) {
	s := newMemStore()
	u := NewCouponUsecase(memCoupons{s})
	ctx := context.Background()
	exp := time.Now().Add(24 * time.Hour)

	c, err := u.Create(ctx, CouponInput{Name: " summer20 ", Expiry: exp, Discount: 20})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER20", c.Name)

	_, err = u.Create(ctx, CouponInput{Name: "SUMMER20", Expiry: exp, Discount: 10})
	assert.True(t, IsKind(err, KindConflict))
}

func TestCouponCreate_Validation(t *testing.T) {
	u := NewCouponUsecase(memCoupons{newMemStore()})
	exp := time.Now().Add(time.Hour)

	cases := map[string]CouponInput{
		"no name":      {Expiry: exp, Discount: 10},
		"no expiry":    {Name: "A", Discount: 10},
		"zero":         {Name: "A", Expiry: exp, Discount: 0},
		"over hundred": {Name: "A", Expiry: exp, Discount: 101},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := u.Create(context.Background(), in)
			assert.True(t, IsKind(err, KindValidation))
		})
	}
}

func TestCouponUpdateDelete(t *testing.T) {
	s := newMemStore()
	u := NewCouponUsecase(memCoupons{s})
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	c, err := u.Create(ctx, CouponInput{Name: "a", Expiry: exp, Discount: 5})
	require.NoError(t, err)

	got, err := u.Update(ctx, c.ID, CouponInput{Name: "b", Expiry: exp, Discount: 15})
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
	assert.Equal(t, int64(15), got.Discount)

	_, err = u.Update(ctx, 9999, CouponInput{Name: "b", Expiry: exp, Discount: 15})
	assert.True(t, IsKind(err, KindNotFound))

	deleted, err := u.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, deleted.ID)

	_, err = u.Get(ctx, c.ID)
	assert.True(t, IsKind(err, KindNotFound))

	items, err := u.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
