package handler

import (
	"net/http"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	"github.com/shibez0112/Ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/blog（記事といいね/よくないね）
type BlogHandler struct {
	posts     *usecase.PostUsecase
	reactions *usecase.ReactionUsecase
}

// DI
func NewBlogHandler(posts *usecase.PostUsecase, reactions *usecase.ReactionUsecase) *BlogHandler {
	return &BlogHandler{posts: posts, reactions: reactions}
}

type blogCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Author      string `json:"author"`
}

type blogUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Author      *string `json:"author"`
}

// PUT /likes, /dislikes のボディ
type reactionRequest struct {
	BlogID int64 `json:"blogId"`
}

func (h *BlogHandler) RegisterRoutes(e *echo.Echo, mw Middlewares) {
	g := e.Group("/api/blog")

	g.GET("/all-blog", h.list)
	g.PUT("/likes", h.like, mw.Auth...)
	g.PUT("/dislikes", h.dislike, mw.Auth...)
	g.POST("", h.create, mw.Admin...)
	g.POST("/", h.create, mw.Admin...)
	g.GET("/:id", h.view, mw.Auth...)
	g.GET("/:id/reaction", h.myReaction, mw.Auth...)
	g.PUT("/:id", h.update, mw.Admin...)
	g.DELETE("/:id", h.delete, mw.Admin...)
}

func (h *BlogHandler) list(c echo.Context) error {
	out, err := h.posts.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BlogHandler) create(c echo.Context) error {
	var req blogCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.posts.Create(c.Request().Context(), usecase.CreatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Author:      req.Author,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *BlogHandler) update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req blogUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.posts.Update(c.Request().Context(), id, usecase.UpdatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Author:      req.Author,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BlogHandler) delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	out, err := h.posts.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 閲覧数+1
func (h *BlogHandler) view(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	out, err := h.posts.View(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BlogHandler) like(c echo.Context) error {
	return h.react(c, model.ReactionLike)
}

func (h *BlogHandler) dislike(c echo.Context) error {
	return h.react(c, model.ReactionDislike)
}

func (h *BlogHandler) react(c echo.Context, action model.ReactionKind) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req reactionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.reactions.ApplyReaction(c.Request().Context(), req.BlogID, userID, action)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BlogHandler) myReaction(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	out, err := h.reactions.MyReaction(c.Request().Context(), id, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
