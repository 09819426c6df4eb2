package middlewares

import (
	"log"
	"net/http"
	"net/url"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/repositories"
)

func AdminAuthMiddleware(userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := r.Context().Value(helpers.ContextKeyUserID).(string)
			if !ok || userID == "" {
				http.Redirect(w, r, "/admin/login?status=error&message="+url.QueryEscape("You must log in to access the admin panel."), http.StatusFound)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil || user == nil {
				log.Printf("AdminAuthMiddleware: error finding user %s: %v", userID, err)
				http.Redirect(w, r, "/admin/login?status=error&message="+url.QueryEscape("User not found or session invalid."), http.StatusFound)
				return
			}

			if user.Role != models.RoleAdmin {
				log.Printf("AdminAuthMiddleware: user %s (%s) attempted to access admin panel without admin role", user.ID, user.Email)
				http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("You do not have permission to access this page."), http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
