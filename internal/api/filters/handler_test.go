package filters_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sofadeal/internal/api/filters"
	"sofadeal/internal/domain"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/pricing"
)

func newHandler() *filters.Handler {
	return filters.NewHandler("/products", logger.NewLogger("error"))
}

func post(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) filters.Resolution {
	t.Helper()
	var res filters.Resolution
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func TestResolveHandler_Canonicalizes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/filters?sortBy=bogus&currentPage=1&size=L&utm_source=mail", nil)
	rec := httptest.NewRecorder()

	newHandler().ResolveHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	res := decode(t, rec)
	assert.Equal(t, "/products?size=L&utm_source=mail", res.URL)
	assert.Equal(t, domain.SortCreatedAt, res.State.SortBy)
	assert.Equal(t, "L", res.State.Size)
	assert.Equal(t, 1, res.State.CurrentPage)
}

func TestUpdateHandler_ResetsPageAndRemovesCleared(t *testing.T) {
	rec := post(t, newHandler().UpdateHandler, `{"query":"currentPage=3&size=L&material=Velvet","update":{"size":null,"priceRange":"500-1000"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	res := decode(t, rec)
	assert.Equal(t, "/products?material=Velvet&priceRange=500-1000", res.URL)
	assert.Equal(t, domain.PriceRange("500-1000"), res.State.PriceRange)
	assert.Equal(t, 1, res.State.CurrentPage)
	assert.Empty(t, res.State.Size)
}

func TestUpdateHandler_NumericPage(t *testing.T) {
	rec := post(t, newHandler().UpdateHandler, `{"query":"size=L","update":{"currentPage":4}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	res := decode(t, rec)
	assert.Equal(t, 4, res.State.CurrentPage)
	assert.Equal(t, "/products?currentPage=4&size=L", res.URL)
}

func TestUpdateHandler_RejectsEmptyUpdate(t *testing.T) {
	for _, body := range []string{`{"query":"a=1"}`, ``, `{not json`} {
		rec := post(t, newHandler().UpdateHandler, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestCategoryHandler_ClearsVariantFilters(t *testing.T) {
	rec := post(t, newHandler().CategoryHandler, `{"query":"?size=L&material=Velvet&sortBy=rating&currentPage=2","categoryId":"c7"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	res := decode(t, rec)
	assert.Equal(t, "/products?categoryId=c7&sortBy=rating", res.URL)
	assert.Equal(t, "c7", res.State.CategoryID)
}

func TestUpdateHandler_CategoryChangeClearsVariantFilters(t *testing.T) {
	rec := post(t, newHandler().UpdateHandler, `{"query":"size=2+seater&material=velvet","update":{"categoryId":"cat-1"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	res := decode(t, rec)
	assert.Equal(t, "/products?categoryId=cat-1", res.URL)
	assert.Equal(t, "cat-1", res.State.CategoryID)
	assert.Empty(t, res.State.Size)
	assert.Empty(t, res.State.Material)
}

func TestCategoryHandler_NullClearsCategory(t *testing.T) {
	rec := post(t, newHandler().CategoryHandler, `{"query":"categoryId=c7&search=sofa","categoryId":null}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/products?search=sofa", decode(t, rec).URL)
}

func TestResetHandler(t *testing.T) {
	rec := post(t, newHandler().ResetHandler, `{"query":"categoryId=c7&size=L&search=sofa&ref=home"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/products?ref=home", decode(t, rec).URL)

	rec = post(t, newHandler().ResetHandler, ``)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/products", decode(t, rec).URL)
}

func TestPriceHandler(t *testing.T) {
	rec := post(t, newHandler().PriceHandler, `{"price":999,"discountPercent":15}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got pricing.DisplayPrice
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 849.0, got.DisplayPrice)
	require.NotNil(t, got.OriginalPrice)
	assert.Equal(t, 999.0, *got.OriginalPrice)
	assert.Equal(t, 283.0, got.Installment)
}
