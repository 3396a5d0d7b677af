package catalog

import (
	"net/http"

	"github.com/angelmondragon/localarthub-backend/api/responses"
	"github.com/angelmondragon/localarthub-backend/api/validators"
	catalogsvc "github.com/angelmondragon/localarthub-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
	"github.com/angelmondragon/localarthub-backend/pkg/pagination"
)

func listingMissing() error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "product listing not available")
}

// CatalogFilters describes the search box and dropdowns. A nil filter still
// answers, with installed=false.
func CatalogFilters(filter *catalogsvc.Filter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, filter.Options())
	}
}

type cardsPage struct {
	Cards      []catalogsvc.Card `json:"cards"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// CatalogCards lists the listing cards in page order, ?limit= at a time.
func CatalogCards(filter *catalogsvc.Filter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if filter == nil {
			responses.WriteError(r.Context(), logg, w, listingMissing())
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cards, next, err := pagination.Window(filter.Cards(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor").
				WithDetails(map[string]any{"field": "cursor"}))
			return
		}
		responses.WriteSuccess(w, cardsPage{Cards: cards, NextCursor: next})
	}
}

// CatalogProducts applies ?q=, ?category= and ?price= to the listing.
func CatalogProducts(filter *catalogsvc.Filter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if filter == nil {
			responses.WriteError(r.Context(), logg, w, listingMissing())
			return
		}

		query := r.URL.Query()
		outcome, err := filter.Apply(catalogsvc.Criteria{
			Search:   query.Get("q"),
			Category: query.Get("category"),
			Price:    query.Get("price"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"visible_count": outcome.VisibleCount,
				"card_count":    len(outcome.Cards),
			})
			logg.Debug(ctx, "catalog.filtered")
		}
		responses.WriteSuccess(w, outcome)
	}
}
