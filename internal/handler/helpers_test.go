package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	"github.com/shibez0112/Ecommerce/internal/middleware"
	repo "github.com/shibez0112/Ecommerce/internal/repository"

	"github.com/labstack/echo/v4"
)

// JWTの代わりにuser_id/roleを入れるだけ
func fakeAuth(userID int64, role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.CtxUserIDKey, userID)
			c.Set(middleware.CtxUserRoleKey, string(role))
			return next(c)
		}
	}
}

func testMiddlewares(userID int64, role model.Role) Middlewares {
	auth := fakeAuth(userID, role)
	return Middlewares{
		Auth:  []echo.MiddlewareFunc{auth},
		Admin: []echo.MiddlewareFunc{auth, middleware.AdminRoleGuard()},
	}
}

func doJSON(t *testing.T, e *echo.Echo, method string, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v (body=%s)", err, rec.Body.String())
	}
	return v
}

// 必要なリポジトリだけ差し替えるTx
type stubTxRepos struct {
	repo.TxRepos
	products  repo.ProductRepository
	carts     repo.CartRepository
	posts     repo.PostRepository
	reactions repo.ReactionRepository
}

func (r stubTxRepos) Products() repo.ProductRepository   { return r.products }
func (r stubTxRepos) Carts() repo.CartRepository         { return r.carts }
func (r stubTxRepos) Posts() repo.PostRepository         { return r.posts }
func (r stubTxRepos) Reactions() repo.ReactionRepository { return r.reactions }

type stubTx struct {
	repos stubTxRepos
}

func (t stubTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(t.repos)
}
