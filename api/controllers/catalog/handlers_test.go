package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogsvc "github.com/angelmondragon/localarthub-backend/internal/catalog"
)

func defaultFilter(t *testing.T) *catalogsvc.Filter {
	t.Helper()
	page, err := catalogsvc.DefaultPage()
	require.NoError(t, err)
	filter := catalogsvc.NewFilter(page)
	require.NotNil(t, filter)
	return filter
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, target, nil))
	return resp
}

func TestCatalogFilters(t *testing.T) {
	resp := get(CatalogFilters(defaultFilter(t)), "/catalog/filters")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data catalogsvc.Options `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Data.Installed)
	assert.Equal(t, "Search products...", envelope.Data.SearchPlaceholder)
	assert.Len(t, envelope.Data.Prices, 5)
}

func TestCatalogFiltersWithoutListing(t *testing.T) {
	resp := get(CatalogFilters(nil), "/catalog/filters")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"installed":false`)

	resp = get(CatalogProducts(nil, nil), "/catalog/products")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = get(CatalogCards(nil, nil), "/catalog/cards")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCatalogCards(t *testing.T) {
	resp := get(CatalogCards(defaultFilter(t), nil), "/catalog/cards")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data struct {
			Cards []catalogsvc.Card `json:"cards"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data.Cards, 8)
	assert.Equal(t, "sproduct.html", envelope.Data.Cards[0].DetailHref)
}

func TestCatalogCardsPaging(t *testing.T) {
	h := CatalogCards(defaultFilter(t), nil)

	var seen []string
	cursor := ""
	for i := 0; i < 5; i++ {
		resp := get(h, "/catalog/cards?limit=3&cursor="+cursor)
		require.Equal(t, http.StatusOK, resp.Code)
		var envelope struct {
			Data cardsPage `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		for _, c := range envelope.Data.Cards {
			seen = append(seen, c.Name)
		}
		cursor = envelope.Data.NextCursor
		if cursor == "" {
			break
		}
	}
	assert.Len(t, seen, 8)
	assert.Equal(t, "Multani Blue Pottery Vase", seen[0])

	assert.Equal(t, http.StatusBadRequest, get(h, "/catalog/cards?limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/catalog/cards?cursor=%25%25").Code)
}

func TestCatalogProducts(t *testing.T) {
	h := CatalogProducts(defaultFilter(t), nil)

	resp := get(h, "/catalog/products?category=Textile&price=0-1500")
	require.Equal(t, http.StatusOK, resp.Code)
	var envelope struct {
		Data catalogsvc.Outcome `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, 1, envelope.Data.VisibleCount)
	assert.False(t, envelope.Data.Message.Visible)

	resp = get(h, "/catalog/products?q=zzz")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, 0, envelope.Data.VisibleCount)
	assert.True(t, envelope.Data.Message.Visible)
	assert.Equal(t, "No products found. Try adjusting your filters.", envelope.Data.Message.Text)
}

func TestCatalogProductsRejectsMalformedPrice(t *testing.T) {
	resp := get(CatalogProducts(defaultFilter(t), nil), "/catalog/products?price=cheap")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.True(t, strings.Contains(resp.Body.String(), "invalid price range"))
}
