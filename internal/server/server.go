package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shibez0112/Ecommerce/internal/handler"
	"github.com/shibez0112/Ecommerce/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	//CORSで許可するフロントのURL。空なら付けない
	AllowOrigin string
	Log         *zap.Logger
}

// echoを組み立ててルートを登録する
func New(opts Options, mw handler.Middlewares, routes ...RouteRegistrar) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(opts.Log))
	e.Use(echomw.BodyLimit("1M"))
	if opts.AllowOrigin != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     []string{opts.AllowOrigin},
			AllowCredentials: true,
		}))
	}

	RegisterRoutes(e, mw, routes...)
	return e
}

// SIGINT/SIGTERMで止める
func Start(ctx context.Context, e *echo.Echo, addr string, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
