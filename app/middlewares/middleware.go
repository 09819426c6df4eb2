package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/repositories"
	"github.com/mahbubzaman/gobazaar/app/utils/sessions"
)

// UserContextMiddleware resolves the session user and puts both the id and
// the loaded profile on the request context for handlers and templates.
func UserContextMiddleware(sessionStore sessions.SessionStore, userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, userID)

			user, err := userRepo.FindByID(ctx, userID)
			if err != nil {
				log.Printf("UserContextMiddleware: error loading user %s: %v", userID, err)
			} else if user != nil {
				ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartCountMiddleware exposes the session cart's item count to every page.
func CartCountMiddleware(sessionStore sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionCart := sessionStore.GetCart(r)
			ctx := context.WithValue(r.Context(), helpers.CartCountKey, sessionCart.TotalItems())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MethodOverrideMiddleware lets HTML forms submit PUT/DELETE via a _method
// field.
func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = r.ParseForm()
			override := r.Form.Get("_method")
			if override != "" {
				r.Method = strings.ToUpper(override)
			}
		}
		next.ServeHTTP(w, r)
	})
}
