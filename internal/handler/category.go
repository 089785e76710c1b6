package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/ecommerce-api/internal/model"
	"github.com/iliyamo/ecommerce-api/internal/repository"
	"github.com/iliyamo/ecommerce-api/internal/slugutil"
	"github.com/iliyamo/ecommerce-api/internal/validate"
)

// CategoryHandler owns the category lifecycle: create/update/delete
// with uniqueness and referential-integrity checks, plus the read
// endpoints. The products count used by the delete guard is a separate
// injectable read; the guard and the delete do not compose atomically.
type CategoryHandler struct {
	Categories CategoryStore
	Products   ProductStore
	Log        *zap.Logger
}

func NewCategoryHandler(categories CategoryStore, products ProductStore, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{Categories: categories, Products: products, Log: log}
}

type categoryReq struct {
	Name string `json:"name"`
}

// Create handles POST /api/v1/category/create-category.
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Name is required")
	}
	if err := validate.CategoryName(req.Name); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	name := strings.TrimSpace(req.Name)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Uniqueness is an exact-match lookup on the trimmed name.
	if _, err := h.Categories.GetByName(ctx, name); err == nil {
		return fail(c, http.StatusConflict, "Category Already Exists")
	} else if !errors.Is(err, repository.ErrCategoryNotFound) {
		h.Log.Error("category lookup failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error in Category", err)
	}

	cat := &model.Category{Name: name, Slug: slugutil.Make(name)}
	if err := h.Categories.Create(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrCategoryExists) {
			return fail(c, http.StatusConflict, "Category Already Exists")
		}
		h.Log.Error("category create failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error in Category", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success":  true,
		"message":  "new category created",
		"category": cat,
	})
}

// Update handles PUT /api/v1/category/update-category/:id.
func (h *CategoryHandler) Update(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Name is required")
	}
	if err := validate.CategoryName(req.Name); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Category not found")
	}
	name := strings.TrimSpace(req.Name)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat, err := h.Categories.Update(ctx, id, name, slugutil.Make(name))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return fail(c, http.StatusNotFound, "Category not found")
		}
		h.Log.Error("category update failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error while updating category", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Category Updated Successfully",
		"category": cat,
	})
}

// Delete handles DELETE /api/v1/category/delete-category/:id. The
// products check runs first and blocks the delete without touching the
// row; a category that survives the check is then deleted by id.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Category not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Products.CountByCategory(ctx, id)
	if err != nil {
		h.Log.Error("category delete guard failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "error while deleting category", err)
	}
	if n > 0 {
		return fail(c, http.StatusBadRequest, "Cannot delete category with associated products")
	}

	if err := h.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return fail(c, http.StatusNotFound, "Category not found")
		}
		h.Log.Error("category delete failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "error while deleting category", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Category Deleted Successfully",
	})
}

// List handles GET /api/v1/category/get-category.
func (h *CategoryHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Categories.List(ctx)
	if err != nil {
		h.Log.Error("category list failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error while getting all categories", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "All Categories List",
		"category": cats,
	})
}

// Single handles GET /api/v1/category/single-category/:slug.
func (h *CategoryHandler) Single(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat, err := h.Categories.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return fail(c, http.StatusNotFound, "Category not found")
		}
		h.Log.Error("single category failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error While getting Single Category", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Get Single Category Successfully",
		"category": cat,
	})
}
