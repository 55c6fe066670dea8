package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"clinic-booking-api/internal/auth"
	"clinic-booking-api/internal/model"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the authenticated actor as carried through the request context.
type Identity struct {
	UserID string
	Role   model.Role
}

// Auth requires a valid bearer token and injects the actor's Identity into
// the request context. Anonymous or garbage-token requests get 401 with a
// login redirect token for the presentation layer.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := ""
			if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
			if raw == "" {
				unauthorized(w)
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				unauthorized(w)
				return
			}

			id := Identity{UserID: claims.UserID, Role: model.Role(claims.Role)}
			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the actor set by Auth, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":    "authentication required",
		"redirect": "login",
	})
}
