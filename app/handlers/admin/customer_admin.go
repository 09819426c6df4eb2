package admin

import (
	"log"
	"net/http"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/utils/breadcrumb"
)

// GetCustomersPage is read-only, customer accounts are created through
// sign-in and never edited from the back office.
func (h *AdminHandler) GetCustomersPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := helpers.PageFromRequest(r)

	offset := (page - 1) * adminPageSize
	customers, total, err := h.userRepo.GetCustomersPaginated(ctx, adminPageSize, offset)
	if err != nil {
		log.Printf("AdminHandler.GetCustomersPage: failed to load customers: %v", err)
	}

	data := h.adminData(r, "Customers", []breadcrumb.Breadcrumb{
		{Name: "Customers", URL: "/admin/customers"},
	}, map[string]interface{}{
		"Customers":  customers,
		"Pagination": helpers.NewPagination(page, adminPageSize, total),
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/customers/index", data)
}
