package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/ecommerce-api/internal/model"
)

func jsonCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func newCategoryHandler() (*CategoryHandler, *fakeCategoryStore, *fakeProductStore) {
	cats := newFakeCategoryStore()
	prods := newFakeProductStore()
	return NewCategoryHandler(cats, prods, zap.NewNop()), cats, prods
}

func TestCategoryCreate(t *testing.T) {
	h, cats, _ := newCategoryHandler()

	c, rec := jsonCtx(t, http.MethodPost, "/api/v1/category/create-category", `{"name":"Electronics"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "new category created", body["message"])
	got, err := cats.GetByName(c.Request().Context(), "Electronics")
	require.NoError(t, err)
	assert.Equal(t, "electronics", got.Slug)
}

func TestCategoryCreateDuplicate(t *testing.T) {
	h, cats, _ := newCategoryHandler()
	cats.add("Electronics", "electronics")

	c, rec := jsonCtx(t, http.MethodPost, "/api/v1/category/create-category", `{"name":"Electronics"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Category Already Exists", body["message"])
}

func TestCategoryCreateMissingName(t *testing.T) {
	h, _, _ := newCategoryHandler()

	for _, payload := range []string{`{}`, `{"name":"   "}`} {
		c, rec := jsonCtx(t, http.MethodPost, "/api/v1/category/create-category", payload)
		require.NoError(t, h.Create(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Name is required", decodeBody(t, rec)["message"])
	}
}

func TestCategoryUpdate(t *testing.T) {
	h, cats, _ := newCategoryHandler()
	cat := cats.add("Electronics", "electronics")

	c, rec := jsonCtx(t, http.MethodPut, "/", `{"name":"Gadgets"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Category Updated Successfully", decodeBody(t, rec)["message"])
	assert.Equal(t, "Gadgets", cat.Name)
	assert.Equal(t, "gadgets", cat.Slug)
}

func TestCategoryUpdateNotFound(t *testing.T) {
	h, _, _ := newCategoryHandler()

	c, rec := jsonCtx(t, http.MethodPut, "/", `{"name":"Gadgets"}`)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Category not found", decodeBody(t, rec)["message"])
}

func TestCategoryDeleteBlockedByProducts(t *testing.T) {
	h, cats, prods := newCategoryHandler()
	cat := cats.add("Electronics", "electronics")
	prods.add(&model.Product{Name: "Phone", CategoryID: cat.ID})

	c, rec := jsonCtx(t, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Cannot delete category with associated products", body["message"])
	_, err := cats.GetByID(c.Request().Context(), cat.ID)
	assert.NoError(t, err, "blocked delete must leave the category intact")
}

func TestCategoryDelete(t *testing.T) {
	h, cats, _ := newCategoryHandler()
	cats.add("Electronics", "electronics")

	c, rec := jsonCtx(t, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Category Deleted Successfully", decodeBody(t, rec)["message"])
	assert.Empty(t, cats.categories)
}

func TestCategoryDeleteNotFound(t *testing.T) {
	h, _, _ := newCategoryHandler()

	c, rec := jsonCtx(t, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryList(t *testing.T) {
	h, cats, _ := newCategoryHandler()
	cats.add("Electronics", "electronics")
	cats.add("Books", "books")

	c, rec := jsonCtx(t, http.MethodGet, "/api/v1/category/get-category", "")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "All Categories List", body["message"])
	assert.Len(t, body["category"], 2)
}

func TestCategorySingle(t *testing.T) {
	h, cats, _ := newCategoryHandler()
	cats.add("Electronics", "electronics")

	c, rec := jsonCtx(t, http.MethodGet, "/", "")
	c.SetParamNames("slug")
	c.SetParamValues("electronics")
	require.NoError(t, h.Single(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Get Single Category Successfully", decodeBody(t, rec)["message"])

	c, rec = jsonCtx(t, http.MethodGet, "/", "")
	c.SetParamNames("slug")
	c.SetParamValues("missing")
	require.NoError(t, h.Single(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
