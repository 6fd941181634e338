package gateway

import (
	"context"
	"net/http"
	"strings"
)

// Clé privée pour le contexte (évite les collisions)
type contextKey struct{ name string }

var userCtxKey = &contextKey{"user_id"}

// TokenValidator résout un token vers un id utilisateur stable.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// AuthMiddleware décode le header Authorization et valide le token.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			// 1. Pas de header ? On laisse passer (c'est peut-être une
			// requête publique comme Login/Register)
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			// 2. Validation du format "Bearer <token>"
			tokenStr := ""
			if strings.HasPrefix(header, "Bearer ") {
				tokenStr = strings.TrimPrefix(header, "Bearer ")
			} else {
				// Format invalide -> 401 direct
				http.Error(w, "Invalid token format", http.StatusUnauthorized)
				return
			}

			userID, err := validator.ValidateToken(r.Context(), tokenStr)
			if err != nil || userID == "" {
				// Token invalide ou expiré -> 401
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			// 3. Succès : On injecte l'ID utilisateur dans le contexte
			ctx := context.WithValue(r.Context(), userCtxKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ForContext est un helper pour récupérer l'ID utilisateur du contexte.
func ForContext(ctx context.Context) string {
	raw, _ := ctx.Value(userCtxKey).(string)
	return raw
}
