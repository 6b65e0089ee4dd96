package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"
	"github.com/shibez0112/Ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCategoryRepo struct {
	repo.CategoryRepository
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, kind model.CategoryKind, title string) (model.Category, error) {
	args := m.Called(ctx, kind, title)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *MockCategoryRepo) List(ctx context.Context, kind model.CategoryKind) ([]model.Category, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).([]model.Category), args.Error(1)
}

func newBrandEcho(m *MockCategoryRepo, role model.Role) *echo.Echo {
	e := echo.New()
	NewCategoryHandler(usecase.NewCategoryUsecase(model.CategoryKindBrand, m), "/api/brand").
		RegisterRoutes(e, testMiddlewares(1, role))
	return e
}

func TestBrand_CreateAndList(t *testing.T) {
	m := new(MockCategoryRepo)
	m.On("Create", mock.Anything, model.CategoryKindBrand, "Apple").
		Return(model.Category{ID: 1, Kind: model.CategoryKindBrand, Title: "Apple"}, nil)
	m.On("List", mock.Anything, model.CategoryKindBrand).
		Return([]model.Category{{ID: 1, Title: "Apple"}}, nil)

	e := newBrandEcho(m, model.RoleAdmin)

	rec := doJSON(t, e, http.MethodPost, "/api/brand", map[string]string{"title": "Apple"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Apple", decodeBody[model.Category](t, rec).Title)

	rec = doJSON(t, e, http.MethodGet, "/api/brand/all-category", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]model.Category](t, rec), 1)
}

func TestBrand_Conflict(t *testing.T) {
	m := new(MockCategoryRepo)
	m.On("Create", mock.Anything, model.CategoryKindBrand, "Apple").Return(model.Category{}, repo.ErrDuplicate)

	rec := doJSON(t, newBrandEcho(m, model.RoleAdmin), http.MethodPost, "/api/brand", map[string]string{"title": "Apple"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "brand already exists", decodeBody[ErrorResponse](t, rec).Error)
}

func TestBrand_CreateRequiresAdmin(t *testing.T) {
	m := new(MockCategoryRepo)
	rec := doJSON(t, newBrandEcho(m, model.RoleUser), http.MethodPost, "/api/brand", map[string]string{"title": "Apple"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestBrand_InvalidID(t *testing.T) {
	rec := doJSON(t, newBrandEcho(new(MockCategoryRepo), model.RoleAdmin), http.MethodGet, "/api/brand/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
