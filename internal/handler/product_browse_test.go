package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ecommerce-api/internal/model"
)

func seedProducts(prods *fakeProductStore, n int, categoryID uint64) {
	for i := 1; i <= n; i++ {
		prods.add(&model.Product{
			Name:        fmt.Sprintf("Product %d", i),
			Slug:        fmt.Sprintf("product-%d", i),
			Description: "desc",
			Price:       float64(i * 10),
			CategoryID:  categoryID,
		})
	}
}

func TestGetProducts(t *testing.T) {
	h, prods, _, _ := newProductHandler()
	seedProducts(prods, 3, 1)

	c, rec := jsonCtx(t, http.MethodGet, "/api/v1/product/get-product", "")
	require.NoError(t, h.GetProducts(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "All Products", body["message"])
	assert.Equal(t, float64(3), body["countTotal"])
	assert.Len(t, body["products"], 3)
}

func TestGetProductsHomeCap(t *testing.T) {
	h, prods, _, _ := newProductHandler()
	seedProducts(prods, 15, 1)

	c, rec := jsonCtx(t, http.MethodGet, "/api/v1/product/get-product", "")
	require.NoError(t, h.GetProducts(c))

	body := decodeBody(t, rec)
	assert.Len(t, body["products"], 12)
}

func TestGetSingleProduct(t *testing.T) {
	h, prods, _, _ := newProductHandler()
	seedProducts(prods, 1, 1)

	c, rec := jsonCtx(t, http.MethodGet, "/", "")
	c.SetParamNames("slug")
	c.SetParamValues("product-1")
	require.NoError(t, h.GetSingleProduct(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Single Product Fetched", decodeBody(t, rec)["message"])

	c, rec = jsonCtx(t, http.MethodGet, "/", "")
	c.SetParamNames("slug")
	c.SetParamValues("missing")
	require.NoError(t, h.GetSingleProduct(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductPhoto(t *testing.T) {
	h, prods, _, _ := newProductHandler()
	p := prods.add(&model.Product{Name: "Phone", Slug: "phone"})
	p.Photo = []byte("img-bytes")
	p.PhotoContentType = "image/jpeg"

	c, rec := jsonCtx(t, http.MethodGet, "/", "")
	c.SetParamNames("pid")
	c.SetParamValues("1")
	require.NoError(t, h.Photo(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "img-bytes", rec.Body.String())
}

func TestProductPhotoMissing(t *testing.T) {
	h, prods, _, _ := newProductHandler()
	prods.add(&model.Product{Name: "Phone", Slug: "phone"}) // no photo bytes

	for _, pid := range []string{"1", "99", "junk"} {
		c, rec := jsonCtx(t, http.MethodGet, "/", "")
		c.SetParamNames("pid")
		c.SetParamValues(pid)
		require.NoError(t, h.Photo(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Photo not found", decodeBody(t, rec)["message"])
	}
}

func TestFiltersCompose(t *testing.T) {
	h, prods, _, _ := newProductHandler()
	prods.add(&model.Product{Name: "Cheap Phone", CategoryID: 1, Price: 20})
	prods.add(&model.Product{Name: "Pricey Phone", CategoryID: 1, Price: 500})
	prods.add(&model.Product{Name: "Cheap Book", CategoryID: 2, Price: 20})

	c, rec := jsonCtx(t, http.MethodPost, "/api/v1/product/product-filters",
		`{"checked":["1"],"radio":[0,100]}`)
	require.NoError(t, h.Filters(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	products := body["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Cheap Phone", products[0].(map[string]any)["name"])
}

func TestFiltersEmptyReturnsAll(t *testing.T) {
	h, prods, _, _ := newProductHandler()
	seedProducts(prods, 4, 1)

	c, rec := jsonCtx(t, http.MethodPost, "/api/v1/product/product-filters",
		`{"checked":[],"radio":[]}`)
	require.NoError(t, h.Filters(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["products"], 4)
}

func TestProductCount(t *testing.T) {
	h, prods, _, _ := newProductHandler()
	seedProducts(prods, 8, 1)

	c, rec := jsonCtx(t, http.MethodGet, "/api/v1/product/product-count", "")
	require.NoError(t, h.Count(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(8), decodeBody(t, rec)["total"])
}

func TestListPage(t *testing.T) {
	h, prods, _, _ := newProductHandler()
	seedProducts(prods, 8, 1)

	c, rec := jsonCtx(t, http.MethodGet, "/", "")
	c.SetParamNames("page")
	c.SetParamValues("1")
	require.NoError(t, h.ListPage(c))
	assert.Len(t, decodeBody(t, rec)["products"], 6)

	c, rec = jsonCtx(t, http.MethodGet, "/", "")
	c.SetParamNames("page")
	c.SetParamValues("2")
	require.NoError(t, h.ListPage(c))
	assert.Len(t, decodeBody(t, rec)["products"], 2)
}

func TestListPageDefaultsToOne(t *testing.T) {
	h, prods, _, _ := newProductHandler()
	seedProducts(prods, 8, 1)

	for _, raw := range []string{"", "junk", "0", "-2"} {
		c, rec := jsonCtx(t, http.MethodGet, "/", "")
		c.SetParamNames("page")
		c.SetParamValues(raw)
		require.NoError(t, h.ListPage(c))
		assert.Len(t, decodeBody(t, rec)["products"], 6, "page %q", raw)
	}
}

func TestSearchReturnsBareArray(t *testing.T) {
	h, prods, _, _ := newProductHandler()
	prods.add(&model.Product{Name: "iPhone", Description: "smartphone"})
	prods.add(&model.Product{Name: "Notebook", Description: "paper"})

	c, rec := jsonCtx(t, http.MethodGet, "/", "")
	c.SetParamNames("keyword")
	c.SetParamValues("phone")
	require.NoError(t, h.Search(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var results []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "iPhone", results[0]["name"])
}

func TestRelatedExcludesSourceAndCaps(t *testing.T) {
	h, prods, _, _ := newProductHandler()
	seedProducts(prods, 6, 1)

	c, rec := jsonCtx(t, http.MethodGet, "/", "")
	c.SetParamNames("pid", "cid")
	c.SetParamValues("1", "1")
	require.NoError(t, h.Related(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	products := decodeBody(t, rec)["products"].([]any)
	require.Len(t, products, 3)
	for _, raw := range products {
		assert.NotEqual(t, float64(1), raw.(map[string]any)["id"])
	}
}

func TestByCategory(t *testing.T) {
	h, prods, cats, _ := newProductHandler()
	cat := cats.add("Electronics", "electronics")
	seedProducts(prods, 2, cat.ID)
	seedProducts(prods, 1, 99)

	c, rec := jsonCtx(t, http.MethodGet, "/", "")
	c.SetParamNames("slug")
	c.SetParamValues("electronics")
	require.NoError(t, h.ByCategory(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["products"], 2)
	assert.Equal(t, "Electronics", body["category"].(map[string]any)["name"])

	c, rec = jsonCtx(t, http.MethodGet, "/", "")
	c.SetParamNames("slug")
	c.SetParamValues("missing")
	require.NoError(t, h.ByCategory(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
