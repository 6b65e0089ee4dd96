package handler

import (
	"net/http"
	"strconv"

	"github.com/shibez0112/Ecommerce/internal/middleware"
	"github.com/shibez0112/Ecommerce/internal/repository"
	"github.com/shibez0112/Ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ルートごとに付けるミドルウェアの組
type Middlewares struct {
	//AuthJWT + TokenVersionGuard
	Auth []echo.MiddlewareFunc
	//Auth + AdminRoleGuard
	Admin []echo.MiddlewareFunc
	//ログイン・登録など。nilなら付けない
	RateLimit []echo.MiddlewareFunc
}

// DI
func NewMiddlewares(jwtSecret string, userRepo repository.UserRepository, rateLimit echo.MiddlewareFunc) Middlewares {
	auth := []echo.MiddlewareFunc{
		middleware.AuthJWT(jwtSecret),
		middleware.TokenVersionGuard(userRepo),
	}
	admin := append(append([]echo.MiddlewareFunc{}, auth...), middleware.AdminRoleGuard())

	var rl []echo.MiddlewareFunc
	if rateLimit != nil {
		rl = []echo.MiddlewareFunc{rateLimit}
	}
	return Middlewares{Auth: auth, Admin: admin, RateLimit: rl}
}

var kindStatus = map[usecase.ErrorKind]int{
	usecase.KindValidation:   http.StatusBadRequest,
	usecase.KindUnauthorized: http.StatusUnauthorized,
	usecase.KindForbidden:    http.StatusForbidden,
	usecase.KindNotFound:     http.StatusNotFound,
	usecase.KindConflict:     http.StatusConflict,
}

// usecaseのエラーをHTTPにする。500はログに残す
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ae, ok := usecase.AsAppError(err); ok {
		if status, ok := kindStatus[ae.Kind]; ok {
			return c.JSON(status, ErrorResponse{Error: ae.Message})
		}
	}

	middleware.LoggerFrom(c).Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

// :idなどのパスパラメータ
func parseIDParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
