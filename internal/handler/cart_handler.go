package handler

import (
	"net/http"

	"github.com/shibez0112/Ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/user/cart のHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type cartLineRequest struct {
	ID    int64  `json:"_id"`
	Count int64  `json:"count"`
	Color string `json:"color"`
}

// POST /api/user/cart のボディ。送った内容でカートを作り直す
type userCartRequest struct {
	Cart []cartLineRequest `json:"cart"`
}

type applyCouponRequest struct {
	Coupon string `json:"coupon"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, mw Middlewares) {
	g := e.Group("/api/user/cart")

	g.POST("", h.userCart, mw.Auth...)
	g.GET("", h.getCart, mw.Auth...)
	g.DELETE("", h.emptyCart, mw.Auth...)
	g.POST("/apply-coupon", h.applyCoupon, mw.Auth...)
}

func (h *CartHandler) userCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req userCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	lines := make([]usecase.CartLineInput, 0, len(req.Cart))
	for _, l := range req.Cart {
		lines = append(lines, usecase.CartLineInput{
			ProductID: l.ID,
			Quantity:  l.Count,
			Color:     l.Color,
		})
	}

	out, err := h.uc.RebuildCart(c.Request().Context(), userID, lines)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 消したカートを返す。無ければnull
func (h *CartHandler) emptyCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.EmptyCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) applyCoupon(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req applyCouponRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.ApplyCoupon(c.Request().Context(), userID, req.Coupon)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
