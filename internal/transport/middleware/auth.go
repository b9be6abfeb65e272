package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/mental-clarity/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateClientToken(token string) (string, error)
}

// RequireAuth rejects requests without a valid client token with 401.
// The token subject is stored in the context as the client id.
func RequireAuth(validator tokenValidator, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			clientID, err := validator.ValidateClientToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "token rejected",
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
					slog.String("error", err.Error()),
				)
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			ctx := ctxutil.WithClientID(r.Context(), clientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
