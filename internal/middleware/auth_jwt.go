package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shibez0112/Ecommerce/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // int64
	CtxUserRoleKey     = "user_role"     // string
	CtxTokenVersionKey = "token_version" // int
)

// ミドルウェアが返すエラーbody
type denyBody struct {
	Error string `json:"error"`
}

func deny(c echo.Context, status int, msg string) error {
	return c.JSON(status, denyBody{Error: msg})
}

// "Bearer <token>" からtokenを取り出す
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// HS256のaccess tokenを検証してuser_id/role/tvをcontextへ
func AuthJWT(secret string) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	key := func(*jwt.Token) (interface{}, error) { return []byte(secret), nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return deny(c, http.StatusUnauthorized, "unauthorized")
			}

			var claims usecase.AccessClaims
			if _, err := parser.ParseWithClaims(raw, &claims, key); err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return deny(c, http.StatusUnauthorized, "token expired")
				}
				return deny(c, http.StatusUnauthorized, "unauthorized")
			}
			if claims.UserID <= 0 || claims.Role == "" || claims.TokenVersion < 0 {
				return deny(c, http.StatusUnauthorized, "unauthorized")
			}

			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUserRoleKey, claims.Role)
			c.Set(CtxTokenVersionKey, claims.TokenVersion)
			return next(c)
		}
	}
}
