package forms

import (
	"net/http"

	"github.com/angelmondragon/localarthub-backend/api/middleware"
	"github.com/angelmondragon/localarthub-backend/api/responses"
	"github.com/angelmondragon/localarthub-backend/api/validators"
	formsvc "github.com/angelmondragon/localarthub-backend/internal/forms"
	"github.com/angelmondragon/localarthub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
)

type newsletterRequest struct {
	Email string `json:"email"`
}

// contactRequest fields are validated by the form service so the messages
// come back in the order the page checks them.
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// NewsletterSubscribe handles the newsletter signup box.
func NewsletterSubscribe(svc formsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "form service unavailable"))
			return
		}

		var payload newsletterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Subscribe(r.Context(), middleware.VisitorIDFromContext(r.Context()), payload.Email)
		if err != nil {
			responses.WriteNotifiedError(r.Context(), logg, w, err, enums.NotificationChannelForm)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ContactSubmit handles the contact page form.
func ContactSubmit(svc formsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "form service unavailable"))
			return
		}

		var payload contactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SubmitContact(r.Context(), middleware.VisitorIDFromContext(r.Context()), formsvc.ContactInput{
			Name:    payload.Name,
			Email:   payload.Email,
			Subject: payload.Subject,
			Message: payload.Message,
		})
		if err != nil {
			responses.WriteNotifiedError(r.Context(), logg, w, err, enums.NotificationChannelForm)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
