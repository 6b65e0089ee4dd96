package handler

import (
	"net/http"

	"github.com/shibez0112/Ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/product
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// priceは最小単位（cent）
type productCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	Quantity    int64  `json:"quantity"`
	Color       string `json:"color"`
}

// 無い項目は変更しない
type productUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Category    *string `json:"category"`
	Brand       *string `json:"brand"`
	Quantity    *int64  `json:"quantity"`
	Color       *string `json:"color"`
}

type wishlistRequest struct {
	ProdID int64 `json:"prodId"`
}

type ratingRequest struct {
	ProdID  int64  `json:"prodId"`
	Star    int    `json:"star"`
	Comment string `json:"comment"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, mw Middlewares) {
	g := e.Group("/api/product")

	g.GET("/all-product", h.list)
	g.PUT("/wishlist", h.toggleWishlist, mw.Auth...)
	g.PUT("/rating", h.rate, mw.Auth...)
	g.POST("", h.create, mw.Admin...)
	g.POST("/", h.create, mw.Admin...)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update, mw.Admin...)
	g.DELETE("/:id", h.delete, mw.Admin...)
}

// ?price[gte]=&brand=&sort=-price&fields=title,price&page=&limit=
func (h *ProductHandler) list(c echo.Context) error {
	q, err := usecase.ParseProductListQuery(c.QueryParams())
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) get(c echo.Context) error {
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

func (h *ProductHandler) create(c echo.Context) error {
	var req productCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Quantity:    req.Quantity,
		Color:       req.Color,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req productUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Update(c.Request().Context(), id, usecase.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Quantity:    req.Quantity,
		Color:       req.Color,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) delete(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.Delete(c.Request().Context(), adminID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) toggleWishlist(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req wishlistRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	ids, err := h.uc.ToggleWishlist(c.Request().Context(), userID, req.ProdID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]int64{"wishlist": ids})
}

func (h *ProductHandler) rate(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Rate(c.Request().Context(), userID, usecase.RateProductInput{
		ProductID: req.ProdID,
		Star:      req.Star,
		Comment:   req.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
