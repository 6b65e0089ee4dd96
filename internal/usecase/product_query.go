package usecase

import (
	"net/url"
	"strconv"
	"strings"

	repo "github.com/shibez0112/Ecommerce/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
	// offsetは(maxPage-1)*maxLimitまで
	maxPage = 100000
)

// クエリで使える項目名→カラム名
var productColumns = map[string]string{
	"id":           "id",
	"title":        "title",
	"slug":         "slug",
	"description":  "description",
	"price":        "price",
	"category":     "category",
	"brand":        "brand",
	"quantity":     "quantity",
	"sold":         "sold",
	"color":        "color",
	"total_rating": "total_rating",
	"totalrating":  "total_rating",
	"created_at":   "created_at",
	"createdAt":    "created_at",
	"updated_at":   "updated_at",
	"updatedAt":    "updated_at",
}

// 並び替えできるのは数値と日付と名前だけ
var sortableColumns = map[string]bool{
	"title":        true,
	"price":        true,
	"quantity":     true,
	"sold":         true,
	"total_rating": true,
	"created_at":   true,
	"updated_at":   true,
}

// GET /api/product のクエリを検索条件にする。
// 例: ?price[gte]=100&brand=apple&sort=-price,title&fields=title,price&page=2&limit=10
func ParseProductListQuery(v url.Values) (repo.ProductListQuery, error) {
	q := repo.ProductListQuery{
		Category: strings.TrimSpace(v.Get("category")),
		Brand:    strings.TrimSpace(v.Get("brand")),
		Color:    strings.TrimSpace(v.Get("color")),
		Q:        strings.TrimSpace(v.Get("q")),
		Page:     defaultPage,
		Limit:    defaultLimit,
	}
	if len(q.Q) > 100 {
		return repo.ProductListQuery{}, validationError("q too long")
	}

	prices := []struct {
		key string
		dst **int64
	}{
		{"price[gte]", &q.PriceGTE},
		{"price[gt]", &q.PriceGT},
		{"price[lte]", &q.PriceLTE},
		{"price[lt]", &q.PriceLT},
	}
	for _, p := range prices {
		raw := v.Get(p.key)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return repo.ProductListQuery{}, validationError("invalid " + p.key)
		}
		*p.dst = &n
	}

	if raw := v.Get("sort"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			desc := strings.HasPrefix(part, "-")
			col, ok := productColumns[strings.TrimPrefix(part, "-")]
			if !ok || !sortableColumns[col] {
				return repo.ProductListQuery{}, validationError("invalid sort field: " + part)
			}
			q.Sort = append(q.Sort, repo.SortField{Column: col, Desc: desc})
		}
	}

	if raw := v.Get("fields"); raw != "" {
		seen := map[string]bool{"id": true}
		q.Fields = []string{"id"}
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			col, ok := productColumns[part]
			if !ok {
				return repo.ProductListQuery{}, validationError("invalid field: " + part)
			}
			if !seen[col] {
				seen[col] = true
				q.Fields = append(q.Fields, col)
			}
		}
	}

	if raw := v.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPage {
			return repo.ProductListQuery{}, validationError("invalid page")
		}
		q.Page = n
	}
	if raw := v.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			return repo.ProductListQuery{}, validationError("invalid limit")
		}
		q.Limit = n
	}

	return q, nil
}
