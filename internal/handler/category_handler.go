package handler

import (
	"net/http"

	"github.com/shibez0112/Ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/category, /api/blogcategory, /api/brand で共通
type CategoryHandler struct {
	uc     *usecase.CategoryUsecase
	prefix string
}

// DI
func NewCategoryHandler(uc *usecase.CategoryUsecase, prefix string) *CategoryHandler {
	return &CategoryHandler{uc: uc, prefix: prefix}
}

type categoryRequest struct {
	Title string `json:"title"`
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, mw Middlewares) {
	g := e.Group(h.prefix)

	g.GET("/all-category", h.list)
	g.POST("", h.create, mw.Admin...)
	g.POST("/", h.create, mw.Admin...)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update, mw.Admin...)
	g.DELETE("/:id", h.delete, mw.Admin...)
}

func (h *CategoryHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) get(c echo.Context) error {
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

func (h *CategoryHandler) create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	out, err := h.uc.Create(c.Request().Context(), req.Title)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CategoryHandler) update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	out, err := h.uc.Update(c.Request().Context(), id, req.Title)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) delete(c echo.Context) error {
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
