package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"

	"github.com/shopspring/decimal"
)

// メモリ上のストア。WithinTxはエラー時に巻き戻す
type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	nextID int64

	users     map[int64]model.User
	tokens    map[string]model.RefreshToken
	products  map[int64]model.Product
	ratings   map[[2]int64]model.ProductRating
	wishlist  []model.WishlistItem
	coupons   map[int64]model.Coupon
	posts     map[int64]model.Post
	reactions []model.PostReaction
	carts     map[int64]model.Cart
	orders    map[int64]model.Order
	audits    []model.AuditLog

	//"Carts.Create"などをキーに失敗させる
	fail map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]model.User{},
		tokens:   map[string]model.RefreshToken{},
		products: map[int64]model.Product{},
		ratings:  map[[2]int64]model.ProductRating{},
		coupons:  map[int64]model.Coupon{},
		posts:    map[int64]model.Post{},
		carts:    map[int64]model.Cart{},
		orders:   map[int64]model.Order{},
		fail:     map[string]error{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) err(op string) error {
	return s.fail[op]
}

type memSnapshot struct {
	nextID    int64
	users     map[int64]model.User
	tokens    map[string]model.RefreshToken
	products  map[int64]model.Product
	ratings   map[[2]int64]model.ProductRating
	wishlist  []model.WishlistItem
	coupons   map[int64]model.Coupon
	posts     map[int64]model.Post
	reactions []model.PostReaction
	carts     map[int64]model.Cart
	orders    map[int64]model.Order
	audits    []model.AuditLog
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memSnapshot{
		nextID:    s.nextID,
		users:     cloneMap(s.users),
		tokens:    cloneMap(s.tokens),
		products:  cloneMap(s.products),
		ratings:   cloneMap(s.ratings),
		wishlist:  append([]model.WishlistItem(nil), s.wishlist...),
		coupons:   cloneMap(s.coupons),
		posts:     cloneMap(s.posts),
		reactions: append([]model.PostReaction(nil), s.reactions...),
		carts:     cloneMap(s.carts),
		orders:    cloneMap(s.orders),
		audits:    append([]model.AuditLog(nil), s.audits...),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = snap.nextID
	s.users = snap.users
	s.tokens = snap.tokens
	s.products = snap.products
	s.ratings = snap.ratings
	s.wishlist = snap.wishlist
	s.coupons = snap.coupons
	s.posts = snap.posts
	s.reactions = snap.reactions
	s.carts = snap.carts
	s.orders = snap.orders
	s.audits = snap.audits
}

// ---- tx ----

type memTx struct{ s *memStore }

func (t memTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	snap := t.s.snapshot()
	if err := fn(memTxRepos{s: t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

type memTxRepos struct{ s *memStore }

func (r memTxRepos) Users() repo.UserRepository         { return memUsers{r.s} }
func (r memTxRepos) Products() repo.ProductRepository   { return memProducts{r.s} }
func (r memTxRepos) Posts() repo.PostRepository         { return memPosts{r.s} }
func (r memTxRepos) Reactions() repo.ReactionRepository { return memReactions{r.s} }
func (r memTxRepos) Carts() repo.CartRepository         { return memCarts{r.s} }
func (r memTxRepos) Coupons() repo.CouponRepository     { return memCoupons{r.s} }
func (r memTxRepos) Orders() repo.OrderRepository       { return memOrders{r.s} }
func (r memTxRepos) AuditLogs() repo.AuditLogRepository { return memAudits{r.s} }

// ---- users ----

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.users {
		if ex.Email == u.Email || ex.Mobile == u.Mobile {
			return repo.ErrDuplicate
		}
	}
	u.ID = r.s.id()
	r.s.users[u.ID] = *u
	return nil
}

func (r memUsers) FindByID(ctx context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memUsers) FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.PasswordResetTokenHash != nil && *u.PasswordResetTokenHash == hash &&
			u.PasswordResetExpiresAt != nil && u.PasswordResetExpiresAt.After(now) {
			u := u
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memUsers) List(ctx context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.User{}
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memUsers) Update(ctx context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("Users.Update"); err != nil {
		return err
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r memUsers) UpdateProfile(ctx context.Context, id int64, p repo.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	if p.Email != nil {
		for _, ex := range r.s.users {
			if ex.ID != id && ex.Email == *p.Email {
				return repo.ErrDuplicate
			}
		}
		u.Email = *p.Email
	}
	if p.Firstname != nil {
		u.Firstname = *p.Firstname
	}
	if p.Lastname != nil {
		u.Lastname = *p.Lastname
	}
	if p.Mobile != nil {
		u.Mobile = *p.Mobile
	}
	r.s.users[id] = u
	return nil
}

func (r memUsers) update(id int64, fn func(u *model.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	fn(&u)
	r.s.users[id] = u
	return nil
}

func (r memUsers) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	return r.update(id, func(u *model.User) { u.IsBlocked = blocked })
}

func (r memUsers) SetAddress(ctx context.Context, id int64, address string) error {
	return r.update(id, func(u *model.User) { u.Address = address })
}

func (r memUsers) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r memUsers) IncrementTokenVersion(ctx context.Context, id int64) error {
	return r.update(id, func(u *model.User) { u.TokenVersion++ })
}

// ---- refresh tokens ----

type memTokens struct{ s *memStore }

func (r memTokens) Create(ctx context.Context, t *model.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tokens[t.ID] = *t
	return nil
}

func (r memTokens) FindByTokenHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tokens {
		if t.TokenHash == hash {
			t := t
			return &t, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memTokens) MarkUsed(ctx context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[id]
	if !ok || t.UsedAt != nil || t.RevokedAt != nil {
		return repo.ErrNotFound
	}
	t.UsedAt = &at
	r.s.tokens[id] = t
	return nil
}

func (r memTokens) DeleteAllByUserID(ctx context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, t := range r.s.tokens {
		if t.UserID == userID {
			delete(r.s.tokens, id)
		}
	}
	return nil
}

func (r memTokens) DeleteByID(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tokens[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.tokens, id)
	return nil
}

// ---- products ----

type memProducts struct{ s *memStore }

func (r memProducts) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("Products.List"); err != nil {
		return nil, 0, err
	}
	items := []model.Product{}
	for _, p := range r.s.products {
		if q.Brand != "" && p.Brand != q.Brand {
			continue
		}
		if q.Q != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(q.Q)) {
			continue
		}
		if q.PriceGTE != nil && p.Price < *q.PriceGTE {
			continue
		}
		if q.PriceLT != nil && p.Price >= *q.PriceLT {
			continue
		}
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	total := int64(len(items))
	start := (q.Page - 1) * q.Limit
	if start > len(items) {
		start = len(items)
	}
	end := start + q.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total, nil
}

func (r memProducts) FindByID(ctx context.Context, id int64) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("Products.FindByID"); err != nil {
		return model.Product{}, err
	}
	p, ok := r.s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r memProducts) Create(ctx context.Context, p model.Product) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	r.s.products[p.ID] = p
	return p, nil
}

func (r memProducts) Update(ctx context.Context, id int64, patch repo.ProductPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	r.s.products[id] = p
	return nil
}

func (r memProducts) SoftDelete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r memProducts) DecreaseStockIfEnough(ctx context.Context, id int64, qty int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.Quantity < qty {
		return false, nil
	}
	p.Quantity -= qty
	p.Sold += qty
	r.s.products[id] = p
	return true, nil
}

func (r memProducts) SetTotalRating(ctx context.Context, id int64, rating decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.TotalRating = rating
	r.s.products[id] = p
	return nil
}

// ---- ratings / wishlist ----

type memRatings struct{ s *memStore }

func (r memRatings) Upsert(ctx context.Context, rt model.ProductRating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ratings[[2]int64{rt.ProductID, rt.UserID}] = rt
	return nil
}

func (r memRatings) ListStarsByProduct(ctx context.Context, productID int64) ([]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var stars []int
	for k, rt := range r.s.ratings {
		if k[0] == productID {
			stars = append(stars, rt.Star)
		}
	}
	return stars, nil
}

type memWishlist struct{ s *memStore }

func (r memWishlist) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.wishlist {
		if w.UserID == userID && w.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r memWishlist) Add(ctx context.Context, userID, productID int64) error {
	if ok, _ := r.Exists(ctx, userID, productID); ok {
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.wishlist = append(r.s.wishlist, model.WishlistItem{ID: r.s.id(), UserID: userID, ProductID: productID})
	return nil
}

func (r memWishlist) Remove(ctx context.Context, userID, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.wishlist[:0]
	for _, w := range r.s.wishlist {
		if !(w.UserID == userID && w.ProductID == productID) {
			kept = append(kept, w)
		}
	}
	r.s.wishlist = kept
	return nil
}

func (r memWishlist) ListProductIDs(ctx context.Context, userID int64) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := []int64{}
	for _, w := range r.s.wishlist {
		if w.UserID == userID {
			ids = append(ids, w.ProductID)
		}
	}
	return ids, nil
}

func (r memWishlist) ListProducts(ctx context.Context, userID int64) ([]model.Product, error) {
	ids, _ := r.ListProductIDs(ctx, userID)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Product{}
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// ---- coupons ----

type memCoupons struct{ s *memStore }

func (r memCoupons) Create(ctx context.Context, c model.Coupon) (model.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.coupons {
		if ex.Name == c.Name {
			return model.Coupon{}, repo.ErrDuplicate
		}
	}
	c.ID = r.s.id()
	r.s.coupons[c.ID] = c
	return c, nil
}

func (r memCoupons) Update(ctx context.Context, c model.Coupon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.coupons[c.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.coupons[c.ID] = c
	return nil
}

func (r memCoupons) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.coupons[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.coupons, id)
	return nil
}

func (r memCoupons) FindByID(ctx context.Context, id int64) (model.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.coupons[id]
	if !ok {
		return model.Coupon{}, repo.ErrNotFound
	}
	return c, nil
}

func (r memCoupons) FindByName(ctx context.Context, name string) (model.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.coupons {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Coupon{}, repo.ErrNotFound
}

func (r memCoupons) List(ctx context.Context) ([]model.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Coupon{}
	for _, c := range r.s.coupons {
		out = append(out, c)
	}
	return out, nil
}

// ---- posts / reactions ----

type memPosts struct{ s *memStore }

func (r memPosts) Create(ctx context.Context, p model.Post) (model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	r.s.posts[p.ID] = p
	return p, nil
}

func (r memPosts) Update(ctx context.Context, id int64, patch repo.PostPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return repo.ErrNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Author != nil {
		p.Author = *patch.Author
	}
	r.s.posts[id] = p
	return nil
}

func (r memPosts) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}

func (r memPosts) FindByID(ctx context.Context, id int64) (model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return model.Post{}, repo.ErrNotFound
	}
	return p, nil
}

func (r memPosts) FindByIDForUpdate(ctx context.Context, id int64) (model.Post, error) {
	return r.FindByID(ctx, id)
}

func (r memPosts) List(ctx context.Context) ([]model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Post{}
	for _, p := range r.s.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memPosts) IncrementViews(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.NumViews++
	r.s.posts[id] = p
	return nil
}

type memReactions struct{ s *memStore }

func (r memReactions) FindKind(ctx context.Context, postID, userID int64) (model.ReactionKind, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.reactions {
		if x.PostID == postID && x.UserID == userID {
			return x.Kind, nil
		}
	}
	return model.ReactionNone, nil
}

// (post_id, user_id)のunique制約と同じ
func (r memReactions) Add(ctx context.Context, postID, userID int64, kind model.ReactionKind) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("Reactions.Add"); err != nil {
		return err
	}
	for _, x := range r.s.reactions {
		if x.PostID == postID && x.UserID == userID {
			return repo.ErrDuplicate
		}
	}
	r.s.reactions = append(r.s.reactions, model.PostReaction{ID: r.s.id(), PostID: postID, UserID: userID, Kind: kind})
	return nil
}

func (r memReactions) Remove(ctx context.Context, postID, userID int64, kind model.ReactionKind) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := make([]model.PostReaction, 0, len(r.s.reactions))
	for _, x := range r.s.reactions {
		if !(x.PostID == postID && x.UserID == userID && x.Kind == kind) {
			kept = append(kept, x)
		}
	}
	r.s.reactions = kept
	return nil
}

func (r memReactions) ListVoters(ctx context.Context, postID int64) ([]int64, []int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	liked, disliked := []int64{}, []int64{}
	for _, x := range r.s.reactions {
		if x.PostID != postID {
			continue
		}
		if x.Kind == model.ReactionLike {
			liked = append(liked, x.UserID)
		} else {
			disliked = append(disliked, x.UserID)
		}
	}
	return liked, disliked, nil
}

func (r memReactions) DeleteByPost(ctx context.Context, postID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := make([]model.PostReaction, 0, len(r.s.reactions))
	for _, x := range r.s.reactions {
		if x.PostID != postID {
			kept = append(kept, x)
		}
	}
	r.s.reactions = kept
	return nil
}

// ---- carts ----

type memCarts struct{ s *memStore }

func (r memCarts) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.carts[userID]
	if !ok {
		return model.Cart{}, repo.ErrNotFound
	}
	return c, nil
}

// user_idのunique制約と同じ
func (r memCarts) Create(ctx context.Context, c model.Cart) (model.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("Carts.Create"); err != nil {
		return model.Cart{}, err
	}
	if _, ok := r.s.carts[c.UserID]; ok {
		return model.Cart{}, repo.ErrDuplicate
	}
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	lines := make([]model.CartLine, len(c.Lines))
	for i, l := range c.Lines {
		l.ID = r.s.id()
		l.CartID = c.ID
		lines[i] = l
	}
	c.Lines = lines
	r.s.carts[c.UserID] = c
	return c, nil
}

func (r memCarts) DeleteByUserID(ctx context.Context, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("Carts.DeleteByUserID"); err != nil {
		return false, err
	}
	_, ok := r.s.carts[userID]
	delete(r.s.carts, userID)
	return ok, nil
}

func (r memCarts) SetTotalAfterDiscount(ctx context.Context, cartID int64, total int64, coupon string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for uid, c := range r.s.carts {
		if c.ID == cartID {
			c.TotalAfterDiscount = &total
			c.AppliedCoupon = coupon
			r.s.carts[uid] = c
			return nil
		}
	}
	return repo.ErrNotFound
}

// ---- orders / audits ----

type memOrders struct{ s *memStore }

func (r memOrders) Create(ctx context.Context, o model.Order) (model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.ID = r.s.id()
	o.CreatedAt = time.Now()
	r.s.orders[o.ID] = o
	return o, nil
}

func (r memOrders) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Order{}
	for _, o := range r.s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memOrders) FindByID(ctx context.Context, id int64) (model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r memOrders) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	r.s.orders[id] = o
	return nil
}

type memAudits struct{ s *memStore }

func (r memAudits) Create(ctx context.Context, l model.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("AuditLogs.Create"); err != nil {
		return err
	}
	l.ID = r.s.id()
	r.s.audits = append(r.s.audits, l)
	return nil
}

// ---- helpers ----

func (s *memStore) addProduct(title string, price int64, qty int64) model.Product {
	p, _ := memProducts{s}.Create(context.Background(), model.Product{Title: title, Price: price, Quantity: qty})
	return p
}

func (s *memStore) addPost(title string) model.Post {
	p, _ := memPosts{s}.Create(context.Background(), model.Post{Title: title, Description: "d", Category: "c", Author: "Admin"})
	return p
}

func (s *memStore) cartCount(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.carts {
		if c.UserID == userID {
			n++
		}
	}
	return n
}

var (
	_ repo.TransactionManager     = memTx{}
	_ repo.UserRepository         = memUsers{}
	_ repo.RefreshTokenRepository = memTokens{}
	_ repo.ProductRepository      = memProducts{}
	_ repo.RatingRepository       = memRatings{}
	_ repo.WishlistRepository     = memWishlist{}
	_ repo.CouponRepository       = memCoupons{}
	_ repo.PostRepository         = memPosts{}
	_ repo.ReactionRepository     = memReactions{}
	_ repo.CartRepository         = memCarts{}
	_ repo.OrderRepository        = memOrders{}
	_ repo.AuditLogRepository     = memAudits{}
)
