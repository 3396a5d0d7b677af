package cart

import (
	"net/http"

	cartdto "github.com/angelmondragon/localarthub-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/localarthub-backend/api/middleware"
	cartsvc "github.com/angelmondragon/localarthub-backend/internal/cart"
	"github.com/angelmondragon/localarthub-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
)

func toProductRef(payload cartdto.AddItemRequest, cards catalog.Lookup) (cartsvc.ProductRef, error) {
	if payload.CardID == "" {
		return cartsvc.ProductRef{
			Name:      payload.Name,
			PriceText: payload.Price.String(),
			Image:     payload.Image,
			Category:  payload.Category,
		}, nil
	}
	if cards == nil {
		return cartsvc.ProductRef{}, pkgerrors.New(pkgerrors.CodeNotFound, "product card not found").
			WithDetails(map[string]any{"card_id": payload.CardID})
	}
	card, ok := cards.Card(payload.CardID)
	if !ok {
		return cartsvc.ProductRef{}, pkgerrors.New(pkgerrors.CodeNotFound, "product card not found").
			WithDetails(map[string]any{"card_id": payload.CardID})
	}
	return cartsvc.ProductRef{
		Name:      card.Name,
		PriceText: card.PriceText,
		Image:     card.Image,
		Category:  card.Category,
	}, nil
}

func toDetailInput(payload cartdto.AddDetailRequest) cartsvc.DetailInput {
	return cartsvc.DetailInput{
		Name:      payload.Name,
		PriceText: payload.Price.String(),
		Image:     payload.Image,
		Quantity:  payload.Quantity.String(),
		Size:      payload.Size,
	}
}

func visitorID(r *http.Request) string {
	if r == nil {
		return ""
	}
	return middleware.VisitorIDFromContext(r.Context())
}
