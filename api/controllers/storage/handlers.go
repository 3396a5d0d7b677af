package storage

import (
	"net/http"

	"github.com/angelmondragon/localarthub-backend/api/middleware"
	"github.com/angelmondragon/localarthub-backend/api/responses"
	"github.com/angelmondragon/localarthub-backend/api/validators"
	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
	"github.com/angelmondragon/localarthub-backend/pkg/localstore"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
)

// snapshot mirrors the browser's local storage for the storefront keys.
type snapshot struct {
	Entries map[string]string `json:"entries" validate:"required"`
}

func visitor(r *http.Request) (string, error) {
	id := middleware.VisitorIDFromContext(r.Context())
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "visitor id is required")
	}
	return id, nil
}

// StorageExport returns every storefront key the visitor has written.
func StorageExport(store localstore.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storage unavailable"))
			return
		}
		visitorID, err := visitor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := localstore.Export(r.Context(), store, visitorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "export storage"))
			return
		}
		responses.WriteSuccess(w, snapshot{Entries: entries})
	}
}

// StorageImport writes a snapshot copied from a browser's local storage.
func StorageImport(store localstore.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storage unavailable"))
			return
		}
		visitorID, err := visitor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload snapshot
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := localstore.Import(r.Context(), store, visitorID, payload.Entries); err != nil {
			if pkgerrors.As(err) == nil {
				err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "import storage")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := localstore.Export(r.Context(), store, visitorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "export storage"))
			return
		}
		responses.WriteSuccess(w, snapshot{Entries: entries})
	}
}
