package cart

import (
	"errors"
	"io"
	"net/http"

	cartdto "github.com/angelmondragon/localarthub-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/localarthub-backend/api/responses"
	"github.com/angelmondragon/localarthub-backend/api/validators"
	cartsvc "github.com/angelmondragon/localarthub-backend/internal/cart"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
)

// Checkout runs the two-step checkout. Without {"confirmed": true} it only
// returns the confirmation prompt; an empty body counts as unconfirmed.
func Checkout(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg)
			return
		}

		var payload cartdto.CheckoutRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil && !errors.Is(err, io.EOF) {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		result, err := svc.Checkout(r.Context(), visitorID(r), payload.Confirmed)
		if err != nil {
			responses.WriteNotifiedError(r.Context(), logg, w, err, channel)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
