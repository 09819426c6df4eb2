package helpers

import (
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/utils/breadcrumb"
)

// GetBaseData merges the per-request values every page template needs (login
// state, cart count, CSRF field) into the page-specific data map.
func GetBaseData(r *http.Request, pageSpecificData map[string]interface{}) map[string]interface{} {
	if pageSpecificData == nil {
		pageSpecificData = make(map[string]interface{})
	}

	if _, exists := pageSpecificData["Title"]; !exists {
		pageSpecificData["Title"] = "GoBazaar"
	}
	if _, exists := pageSpecificData["Breadcrumbs"]; !exists {
		pageSpecificData["Breadcrumbs"] = []breadcrumb.Breadcrumb{}
	}

	if count, ok := r.Context().Value(CartCountKey).(int); ok {
		pageSpecificData["CartCount"] = count
	} else if _, exists := pageSpecificData["CartCount"]; !exists {
		pageSpecificData["CartCount"] = 0
	}

	userID, _ := r.Context().Value(ContextKeyUserID).(string)
	pageSpecificData["UserID"] = userID
	pageSpecificData["IsLoggedIn"] = userID != ""

	if user, ok := r.Context().Value(ContextKeyUser).(*models.User); ok {
		pageSpecificData["User"] = user
		pageSpecificData["IsAdmin"] = user.Role == models.RoleAdmin
	} else {
		pageSpecificData["User"] = nil
		pageSpecificData["IsAdmin"] = false
	}

	pageSpecificData["CSRFField"] = csrf.TemplateField(r)

	return pageSpecificData
}
