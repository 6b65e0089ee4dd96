package middleware

import (
	"net/http"

	"github.com/shibez0112/Ecommerce/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// contextに入っているroleがADMINかどうかを確認します。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return deny(c, http.StatusUnauthorized, "unauthorized")
			}

			//USERは拒否、ADMINだけ許可
			if role != string(model.RoleAdmin) {
				return deny(c, http.StatusForbidden, "admin only")
			}

			return next(c)
		}
	}
}
