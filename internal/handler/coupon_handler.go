package handler

import (
	"net/http"
	"time"

	"github.com/shibez0112/Ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/coupon（管理者のみ）
type CouponHandler struct {
	uc *usecase.CouponUsecase
}

// DI
func NewCouponHandler(uc *usecase.CouponUsecase) *CouponHandler {
	return &CouponHandler{uc: uc}
}

// expiryはRFC3339、discountは%
type couponRequest struct {
	Name     string    `json:"name"`
	Expiry   time.Time `json:"expiry"`
	Discount int64     `json:"discount"`
}

func (h *CouponHandler) RegisterRoutes(e *echo.Echo, mw Middlewares) {
	g := e.Group("/api/coupon", mw.Admin...)

	g.GET("", h.list)
	g.GET("/", h.list)
	g.POST("", h.create)
	g.POST("/", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *CouponHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CouponHandler) get(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CouponHandler) create(c echo.Context) error {
	var req couponRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	out, err := h.uc.Create(c.Request().Context(), usecase.CouponInput{
		Name:     req.Name,
		Expiry:   req.Expiry,
		Discount: req.Discount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CouponHandler) update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req couponRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	out, err := h.uc.Update(c.Request().Context(), id, usecase.CouponInput{
		Name:     req.Name,
		Expiry:   req.Expiry,
		Discount: req.Discount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CouponHandler) delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	out, err := h.uc.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
