package middleware

import (
	"errors"
	"net/http"

	"github.com/shibez0112/Ecommerce/internal/repository"

	"github.com/labstack/echo/v4"
)

// JWTのtvとDBのtoken_versionの一致するか確認。ブロック中なら403
func TokenVersionGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return deny(c, http.StatusUnauthorized, "unauthorized")
			}

			//AuthJWTが入れたtoken_version(tv)を取得する
			tv, ok := c.Get(CtxTokenVersionKey).(int)
			if !ok || tv < 0 {
				return deny(c, http.StatusUnauthorized, "unauthorized")
			}

			//DBから最新のuserを取得する
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if errors.Is(err, repository.ErrNotFound) {
				return deny(c, http.StatusUnauthorized, "unauthorized")
			}
			if err != nil {
				return deny(c, http.StatusInternalServerError, "internal server error")
			}

			//token_version が一致しなければ強制ログアウト扱い（401）
			if user.TokenVersion != tv {
				return deny(c, http.StatusUnauthorized, "unauthorized")
			}

			if user.IsBlocked {
				return deny(c, http.StatusForbidden, "user is blocked")
			}

			return next(c)
		}
	}
}
