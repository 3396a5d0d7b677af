package storefront

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/localarthub-backend/internal/cart"
	"github.com/angelmondragon/localarthub-backend/internal/catalog"
	"github.com/angelmondragon/localarthub-backend/pkg/localstore"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
	"github.com/angelmondragon/localarthub-backend/pkg/metrics"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestNewValidatesParams(t *testing.T) {
	page, err := catalog.DefaultPage()
	require.NoError(t, err)

	_, err = New(Params{Logger: testLogger(), Page: page})
	assert.Error(t, err)
	_, err = New(Params{Store: localstore.NewMemoryStore(), Page: page})
	assert.Error(t, err)
	_, err = New(Params{Store: localstore.NewMemoryStore(), Logger: testLogger()})
	assert.Error(t, err)
}

func TestAppSharesOneStore(t *testing.T) {
	page, err := catalog.DefaultPage()
	require.NoError(t, err)
	store := localstore.NewMemoryStore()
	app, err := New(Params{
		Store:   store,
		Page:    page,
		Logger:  testLogger(),
		Metrics: metrics.NewStorefrontMetrics(prometheus.NewRegistry()),
	})
	require.NoError(t, err)
	require.NotNil(t, app.Catalog)

	card, ok := app.Cards.Card(page.Cards[0].ID)
	require.True(t, ok)

	ctx := context.Background()
	_, err = app.Cart.AddToCart(ctx, "v1", cart.ProductRef{Name: card.Name, PriceText: card.PriceText, Image: card.Image, Category: card.Category})
	require.NoError(t, err)
	_, err = app.Forms.Subscribe(ctx, "v1", "ana@studio.art")
	require.NoError(t, err)

	snapshot, err := localstore.Export(ctx, store, "v1")
	require.NoError(t, err)
	assert.Contains(t, snapshot[localstore.KeyCart], card.Name)
	assert.True(t, strings.HasPrefix(snapshot[localstore.KeyNewsletterSubscribers], "["))
}

func TestAppWithoutListingHasNoFilter(t *testing.T) {
	page, err := catalog.Scan(strings.NewReader(`<html><body><div class="pro"></div></body></html>`))
	require.NoError(t, err)
	app, err := New(Params{Store: localstore.NewMemoryStore(), Page: page, Logger: testLogger()})
	require.NoError(t, err)
	assert.Nil(t, app.Catalog)
}
