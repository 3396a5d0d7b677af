package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/angelmondragon/localarthub-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/localarthub-backend/api/responses"
	"github.com/angelmondragon/localarthub-backend/api/validators"
	cartsvc "github.com/angelmondragon/localarthub-backend/internal/cart"
	"github.com/angelmondragon/localarthub-backend/internal/catalog"
	"github.com/angelmondragon/localarthub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
)

const channel = enums.NotificationChannelCart

func unavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
}

func writeResult(w http.ResponseWriter, r *http.Request, logg *logger.Logger, result *cartsvc.Result, err error) {
	if err != nil {
		responses.WriteNotifiedError(r.Context(), logg, w, err, channel)
		return
	}
	responses.WriteSuccess(w, result)
}

// CartFetch renders the visitor's cart table, totals and badge.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg)
			return
		}
		result, err := svc.Display(r.Context(), visitorID(r))
		writeResult(w, r, logg, result, err)
	}
}

// CartBadge returns only the header counter.
func CartBadge(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg)
			return
		}
		badge, err := svc.Badge(r.Context(), visitorID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, badge)
	}
}

// CartAddItem handles the cart icon on a listing card.
func CartAddItem(svc cartsvc.Service, cards catalog.Lookup, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg)
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ref, err := toProductRef(payload, cards)
		if err != nil {
			responses.WriteNotifiedError(r.Context(), logg, w, err, channel)
			return
		}

		result, err := svc.AddToCart(r.Context(), visitorID(r), ref)
		writeResult(w, r, logg, result, err)
	}
}

// CartAddDetail handles the single product page form.
func CartAddDetail(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg)
			return
		}

		var payload cartdto.AddDetailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddSingleProduct(r.Context(), visitorID(r), toDetailInput(payload))
		writeResult(w, r, logg, result, err)
	}
}

// CartRemoveByName removes every line carrying the product name in ?name=.
func CartRemoveByName(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg)
			return
		}
		query := r.URL.Query()
		if !query.Has("name") {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Validation("name is required", "name"))
			return
		}
		result, err := svc.RemoveFromCart(r.Context(), visitorID(r), query.Get("name"))
		writeResult(w, r, logg, result, err)
	}
}

func CartRemoveLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg)
			return
		}
		result, err := svc.RemoveLine(r.Context(), visitorID(r), chi.URLParam(r, "lineId"))
		writeResult(w, r, logg, result, err)
	}
}

// CartUpdateQuantity is the quantity input change event on the cart page.
func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg)
			return
		}

		var payload cartdto.UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity := cartsvc.ParseQuantity(payload.Quantity.String())
		result, err := svc.UpdateQuantity(r.Context(), visitorID(r), payload.Name, quantity)
		writeResult(w, r, logg, result, err)
	}
}

func CartUpdateLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg)
			return
		}

		var payload cartdto.UpdateLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity := cartsvc.ParseQuantity(payload.Quantity.String())
		result, err := svc.UpdateLineQuantity(r.Context(), visitorID(r), chi.URLParam(r, "lineId"), quantity)
		writeResult(w, r, logg, result, err)
	}
}

func CartApplyCoupon(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg)
			return
		}

		var payload cartdto.CouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ApplyCoupon(r.Context(), visitorID(r), payload.Code)
		writeResult(w, r, logg, result, err)
	}
}

func CartRemoveCoupon(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg)
			return
		}
		result, err := svc.RemoveCoupon(r.Context(), visitorID(r))
		writeResult(w, r, logg, result, err)
	}
}
