package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/ecommerce-api/internal/model"
	"github.com/iliyamo/ecommerce-api/internal/repository"
	"github.com/iliyamo/ecommerce-api/internal/slugutil"
	"github.com/iliyamo/ecommerce-api/internal/validate"
)

// ProductHandler owns the product lifecycle plus the browse, filter
// and search endpoints. Create and update consume multipart forms
// (scalar fields + an optional photo file).
type ProductHandler struct {
	Products   ProductStore
	Categories CategoryStore
	Orders     OrderStore
	Log        *zap.Logger
}

func NewProductHandler(products ProductStore, categories CategoryStore, orders OrderStore, log *zap.Logger) *ProductHandler {
	return &ProductHandler{Products: products, Categories: categories, Orders: orders, Log: log}
}

// productForm is the parsed multipart request: the raw field bag for
// validation plus the already-read photo bytes.
type productForm struct {
	in               validate.ProductInput
	photo            []byte
	photoContentType string
	shipping         *bool
}

func readProductForm(c echo.Context) (productForm, error) {
	f := productForm{
		in: validate.ProductInput{
			Name:        c.FormValue("name"),
			Description: c.FormValue("description"),
			Price:       c.FormValue("price"),
			Category:    c.FormValue("category"),
			Quantity:    c.FormValue("quantity"),
		},
	}
	if s := c.FormValue("shipping"); s != "" {
		v := s == "true" || s == "1"
		f.shipping = &v
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return f, nil // no photo supplied
	}
	f.in.HasPhoto = true
	f.in.PhotoSize = fh.Size
	f.photoContentType = fh.Header.Get("Content-Type")
	f.photo, err = readAll(fh)
	return f, err
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

// resolveCategory turns the raw category field into an existing
// category id. An unparseable or unknown id is a not-found, matching
// the lookup-by-id the document layer performs.
func (h *ProductHandler) resolveCategory(ctx context.Context, raw string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, repository.ErrCategoryNotFound
	}
	if _, err := h.Categories.GetByID(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}

func buildProduct(f productForm, categoryID uint64) *model.Product {
	name := strings.TrimSpace(f.in.Name)
	price, _ := strconv.ParseFloat(strings.TrimSpace(f.in.Price), 64)
	quantity, _ := strconv.ParseFloat(strings.TrimSpace(f.in.Quantity), 64)
	return &model.Product{
		Name:        name,
		Slug:        slugutil.Make(name),
		Description: strings.TrimSpace(f.in.Description),
		Price:       price,
		Quantity:    int64(quantity),
		CategoryID:  categoryID,
		Shipping:    f.shipping,
	}
}

// Create handles POST /api/v1/product/create-product.
func (h *ProductHandler) Create(c echo.Context) error {
	f, err := readProductForm(c)
	if err != nil {
		return failErr(c, http.StatusInternalServerError, "Error in creating product", err)
	}
	if err := validate.Product(f.in, true); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	categoryID, err := h.resolveCategory(ctx, f.in.Category)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return fail(c, http.StatusNotFound, "Category not found")
		}
		h.Log.Error("category resolve failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error in creating product", err)
	}

	p := buildProduct(f, categoryID)
	p.Photo = f.photo
	p.PhotoContentType = f.photoContentType
	if err := h.Products.Create(ctx, p); err != nil {
		h.Log.Error("product create failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error in creating product", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Product Created Successfully",
		"product": p,
	})
}

// Update handles PUT /api/v1/product/update-product/:pid. The photo is
// optional here; when supplied it is attached with a second write
// after the scalar update succeeded.
func (h *ProductHandler) Update(c echo.Context) error {
	f, err := readProductForm(c)
	if err != nil {
		return failErr(c, http.StatusInternalServerError, "Error in Update product", err)
	}
	if err := validate.Product(f.in, false); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	pid, ok := pathID(c, "pid")
	if !ok {
		return fail(c, http.StatusNotFound, "Product not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	categoryID, err := h.resolveCategory(ctx, f.in.Category)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return fail(c, http.StatusNotFound, "Category not found")
		}
		h.Log.Error("category resolve failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error in Update product", err)
	}

	p := buildProduct(f, categoryID)
	p.ID = pid
	if err := h.Products.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return fail(c, http.StatusNotFound, "Product not found")
		}
		h.Log.Error("product update failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error in Update product", err)
	}

	if f.in.HasPhoto {
		if err := h.Products.UpdatePhoto(ctx, pid, f.photo, f.photoContentType); err != nil {
			h.Log.Error("product photo update failed", zap.Error(err))
			return failErr(c, http.StatusInternalServerError, "Error in Update product", err)
		}
		p.PhotoContentType = f.photoContentType
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Product Updated Successfully",
		"product": p,
	})
}

// Delete handles DELETE /api/v1/product/delete-product/:pid. The order
// reference check runs first and blocks the delete; the two calls are
// sequential reads/writes, not a transaction.
func (h *ProductHandler) Delete(c echo.Context) error {
	pid, ok := pathID(c, "pid")
	if !ok {
		return fail(c, http.StatusNotFound, "Product not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Orders.CountByProduct(ctx, pid)
	if err != nil {
		h.Log.Error("product delete guard failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error while deleting product", err)
	}
	if n > 0 {
		return fail(c, http.StatusBadRequest, "Cannot delete product associated with orders")
	}

	if err := h.Products.Delete(ctx, pid); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return fail(c, http.StatusNotFound, "Product not found")
		}
		h.Log.Error("product delete failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error while deleting product", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Product Deleted successfully",
	})
}
