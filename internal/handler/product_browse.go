package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/ecommerce-api/internal/repository"
)

// relatedLimit caps the related-products listing.
const relatedLimit = 3

// homeListLimit caps the unpaginated product listing on the home page.
const homeListLimit = 12

// GetProducts handles GET /api/v1/product/get-product: the newest
// products, photo omitted, capped for the storefront home page.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Products.List(ctx, homeListLimit)
	if err != nil {
		h.Log.Error("product list failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error in getting products", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"countTotal": len(products),
		"message":    "All Products",
		"products":   products,
	})
}

// GetSingleProduct handles GET /api/v1/product/get-product/:slug.
func (h *ProductHandler) GetSingleProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return fail(c, http.StatusNotFound, "Product not found")
		}
		h.Log.Error("single product failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error while getting single product", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Single Product Fetched",
		"product": p,
	})
}

// Photo handles GET /api/v1/product/product-photo/:pid and streams the
// stored photo bytes with their recorded content type.
func (h *ProductHandler) Photo(c echo.Context) error {
	pid, ok := pathID(c, "pid")
	if !ok {
		return fail(c, http.StatusNotFound, "Photo not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	photo, contentType, err := h.Products.Photo(ctx, pid)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return fail(c, http.StatusNotFound, "Photo not found")
		}
		h.Log.Error("product photo failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error while getting photo", err)
	}
	if len(photo) == 0 {
		return fail(c, http.StatusNotFound, "Photo not found")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, contentType, photo)
}

type filtersReq struct {
	Checked []string  `json:"checked"`
	Radio   []float64 `json:"radio"`
}

// Filters handles POST /api/v1/product/product-filters. The category
// and price dimensions are each added only when supplied and compose
// with AND; an empty filter set returns all products.
func (h *ProductHandler) Filters(c echo.Context) error {
	var req filtersReq
	if err := c.Bind(&req); err != nil {
		return failErr(c, http.StatusBadRequest, "Error While Filtering Products", err)
	}

	q := repository.FilterQuery{}
	for _, raw := range req.Checked {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			q.CategoryIDs = append(q.CategoryIDs, id)
		}
	}
	if len(req.Radio) == 2 {
		q.HasPrice = true
		q.PriceMin = req.Radio[0]
		q.PriceMax = req.Radio[1]
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Products.Filter(ctx, q)
	if err != nil {
		h.Log.Error("product filters failed", zap.Error(err))
		return failErr(c, http.StatusBadRequest, "Error While Filtering Products", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"products": products,
	})
}

// Count handles GET /api/v1/product/product-count.
func (h *ProductHandler) Count(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	total, err := h.Products.Count(ctx)
	if err != nil {
		h.Log.Error("product count failed", zap.Error(err))
		return failErr(c, http.StatusBadRequest, "Error in product count", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"total":   total,
	})
}

// ListPage handles GET /api/v1/product/product-list/:page. Pages are
// 1-indexed and default to 1 when the parameter is absent or invalid.
func (h *ProductHandler) ListPage(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		page = 1
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Products.Page(ctx, page)
	if err != nil {
		h.Log.Error("product page failed", zap.Error(err))
		return failErr(c, http.StatusBadRequest, "error in per page ctrl", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"products": products,
	})
}

// Search handles GET /api/v1/product/search/:keyword and returns the
// bare match array, the shape the storefront search box consumes.
func (h *ProductHandler) Search(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	results, err := h.Products.Search(ctx, c.Param("keyword"))
	if err != nil {
		h.Log.Error("product search failed", zap.Error(err))
		return failErr(c, http.StatusBadRequest, "Error In Search Product API", err)
	}
	return c.JSON(http.StatusOK, results)
}

// Related handles GET /api/v1/product/related-product/:pid/:cid:
// same-category products excluding the source product, capped at
// three.
func (h *ProductHandler) Related(c echo.Context) error {
	pid, okP := pathID(c, "pid")
	cid, okC := pathID(c, "cid")
	if !okP || !okC {
		return fail(c, http.StatusBadRequest, "Error while getting related product")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Products.Related(ctx, pid, cid, relatedLimit)
	if err != nil {
		h.Log.Error("related products failed", zap.Error(err))
		return failErr(c, http.StatusBadRequest, "Error while getting related product", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"products": products,
	})
}

// ByCategory handles GET /api/v1/product/product-category/:slug: the
// category resolved by slug plus all its products.
func (h *ProductHandler) ByCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat, err := h.Categories.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return fail(c, http.StatusNotFound, "Category not found")
		}
		h.Log.Error("category by slug failed", zap.Error(err))
		return failErr(c, http.StatusBadRequest, "Error While Getting products", err)
	}

	products, err := h.Products.ByCategory(ctx, cat.ID)
	if err != nil {
		h.Log.Error("products by category failed", zap.Error(err))
		return failErr(c, http.StatusBadRequest, "Error While Getting products", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"category": cat,
		"products": products,
	})
}
