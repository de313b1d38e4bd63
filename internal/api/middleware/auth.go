package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordsearchgame-go/internal/api/apierr"
	"github.com/mcoot/wordsearchgame-go/internal/model"
)

// Authorizer checks a game's control token
type Authorizer interface {
	Authorize(ctx context.Context, gameID model.GameID, token string) error
}

// GameToken creates middleware requiring the control token of the game
// named by the {id} route variable
func GameToken(authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			gameID := model.GameID(mux.Vars(r)["id"])
			if err := authorizer.Authorize(r.Context(), gameID, token); err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the game token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
