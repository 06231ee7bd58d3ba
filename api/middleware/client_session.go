package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/karibu-retail/storefront-gateway/pkg/logger"
)

const clientSessionHeader = "X-Client-Session"

// ClientSession resolves the shopper's session id from the request header,
// minting a fresh one when absent. The id keys the shopper's persisted cart,
// so the response always echoes it back for the client to hold on to.
func ClientSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(clientSessionHeader))
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(clientSessionHeader, sessionID)

			ctx := WithClientSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithClientSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
