package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/angelmondragon/localarthub-backend/api/responses"
	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
)

const (
	// VisitorHeader lets API clients pick their storage partition explicitly.
	VisitorHeader = "X-Visitor-Id"

	visitorSessionValue = "visitor_id"
	maxVisitorIDLength  = 64
)

var visitorIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Visitor resolves the visitor whose storage a request reads and writes. The
// header wins; otherwise the id comes from the signed session cookie, which is
// issued on first contact.
func Visitor(store sessions.Store, cookieName string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			visitorID := strings.TrimSpace(r.Header.Get(VisitorHeader))
			if visitorID != "" {
				if !validVisitorID(visitorID) {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid visitor id").
						WithDetails(map[string]any{"header": VisitorHeader}))
					return
				}
			} else {
				session, err := store.Get(r, cookieName)
				if err != nil && logg != nil {
					// A cookie signed with a rotated key decodes with an error
					// but still yields a fresh session.
					logg.Warn(ctx, "visitor.cookie_invalid")
				}
				if session == nil {
					session = sessions.NewSession(store, cookieName)
				}
				if id, ok := session.Values[visitorSessionValue].(string); ok && validVisitorID(id) {
					visitorID = id
				} else {
					visitorID = uuid.NewString()
					session.Values[visitorSessionValue] = visitorID
					if err := session.Save(r, w); err != nil {
						responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue visitor cookie"))
						return
					}
				}
			}

			w.Header().Set(VisitorHeader, visitorID)
			ctx = WithVisitorID(ctx, visitorID)
			if logg != nil {
				ctx = logg.WithVisitorID(ctx, visitorID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validVisitorID(id string) bool {
	return len(id) <= maxVisitorIDLength && visitorIDPattern.MatchString(id)
}
