package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shibez0112/Ecommerce/internal/config"
	"github.com/shibez0112/Ecommerce/internal/domain/model"
	"github.com/shibez0112/Ecommerce/internal/handler"
	"github.com/shibez0112/Ecommerce/internal/infra/db"
	"github.com/shibez0112/Ecommerce/internal/infra/ratelimit"
	infraRepo "github.com/shibez0112/Ecommerce/internal/infra/repository"
	"github.com/shibez0112/Ecommerce/internal/logger"
	"github.com/shibez0112/Ecommerce/internal/mailer"
	"github.com/shibez0112/Ecommerce/internal/middleware"
	"github.com/shibez0112/Ecommerce/internal/server"
	"github.com/shibez0112/Ecommerce/internal/usecase"
	"github.com/shibez0112/Ecommerce/internal/validator"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	//.envは無くてもよい
	_ = godotenv.Load()

	//deferを走らせてから終了する
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	zl, err := logger.New(cfg.GoEnv)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	//DB接続
	gormDB, err := db.Connect(cfg.DSN(), !cfg.IsProd())
	if err != nil {
		zl.Error("db connect failed", zap.Error(err))
		return fmt.Errorf("db connect: %w", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}
	if err := db.Migrate(gormDB); err != nil {
		zl.Error("db migrate failed", zap.Error(err))
		return fmt.Errorf("db migrate: %w", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	ratingRepo := infraRepo.NewRatingGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	couponRepo := infraRepo.NewCouponGormRepository(gormDB)
	postRepo := infraRepo.NewPostGormRepository(gormDB)
	reactionRepo := infraRepo.NewReactionGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(
		userRepo,
		rtRepo,
		auditRepo,
		validator.NewAuthValidator(userRepo),
		usecase.NewBcryptHasher(),
		usecase.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL),
		usecase.RandomTokenGenerator{},
		mailer.NewLogMailer(zl),
		usecase.AuthOptions{
			RefreshTTL:   cfg.RefreshTokenTTL,
			ResetTTL:     cfg.ResetTokenTTL,
			ResetURLBase: cfg.FEURL,
		},
	)
	userUC := usecase.NewUserUsecase(userRepo, wishlistRepo, txm)
	productUC := usecase.NewProductUsecase(productRepo, ratingRepo, wishlistRepo, txm)
	postUC := usecase.NewPostUsecase(postRepo, reactionRepo, txm)
	reactionUC := usecase.NewReactionUsecase(txm, postRepo, reactionRepo)
	cartUC := usecase.NewCartUsecase(txm, cartRepo, couponRepo)
	couponUC := usecase.NewCouponUsecase(couponRepo)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo)

	//レート制限（REDIS_URLがあるときだけ）
	var rateLimit echo.MiddlewareFunc
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := ratelimit.NewClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			zl.Error("redis connect failed", zap.Error(err))
			return fmt.Errorf("redis connect: %w", err)
		}
		defer func() { _ = client.Close() }()
		rateLimit = middleware.RateLimit(ratelimit.NewRedisStore(client), int64(cfg.RateLimitMax), cfg.RateLimitWindow, zl)
	} else {
		zl.Warn("REDIS_URL is empty, rate limiting disabled")
	}

	mw := handler.NewMiddlewares(cfg.JWTSecret, userRepo, rateLimit)

	//Handler生成
	e := server.New(server.Options{AllowOrigin: cfg.FEURL, Log: zl}, mw,
		handler.NewAuthHandler(authUC, cfg.RefreshTokenTTL, cfg.CookieSecure),
		handler.NewUserHandler(userUC),
		handler.NewProductHandler(productUC),
		handler.NewBlogHandler(postUC, reactionUC),
		handler.NewCategoryHandler(usecase.NewCategoryUsecase(model.CategoryKindProduct, categoryRepo), "/api/category"),
		handler.NewCategoryHandler(usecase.NewCategoryUsecase(model.CategoryKindBlog, categoryRepo), "/api/blogcategory"),
		handler.NewCategoryHandler(usecase.NewCategoryUsecase(model.CategoryKindBrand, categoryRepo), "/api/brand"),
		handler.NewCouponHandler(couponUC),
		handler.NewCartHandler(cartUC),
		handler.NewOrderHandler(orderUC),
	)

	//Server起動
	if err := server.Start(context.Background(), e, ":"+cfg.Port, zl); err != nil {
		zl.Error("server stopped", zap.Error(err))
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
