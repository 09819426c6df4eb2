package admin

import (
	"log"
	"net/http"

	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/utils/breadcrumb"
)

func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productCount, err := h.productRepo.Count(ctx)
	if err != nil {
		log.Printf("AdminHandler.GetDashboard: failed to count products: %v", err)
	}
	categoryCount, err := h.categoryRepo.Count(ctx)
	if err != nil {
		log.Printf("AdminHandler.GetDashboard: failed to count categories: %v", err)
	}
	brandCount, err := h.brandRepo.Count(ctx)
	if err != nil {
		log.Printf("AdminHandler.GetDashboard: failed to count brands: %v", err)
	}
	orderCount, err := h.orderRepo.Count(ctx)
	if err != nil {
		log.Printf("AdminHandler.GetDashboard: failed to count orders: %v", err)
	}
	pendingOrders, err := h.orderRepo.CountByStatus(ctx, models.OrderStatusPending)
	if err != nil {
		log.Printf("AdminHandler.GetDashboard: failed to count pending orders: %v", err)
	}
	customerCount, err := h.userRepo.CountCustomers(ctx)
	if err != nil {
		log.Printf("AdminHandler.GetDashboard: failed to count customers: %v", err)
	}

	recentOrders, err := h.orderRepo.GetRecent(ctx, 10)
	if err != nil {
		log.Printf("AdminHandler.GetDashboard: failed to load recent orders: %v", err)
	}

	data := h.adminData(r, "Admin Dashboard", []breadcrumb.Breadcrumb{
		{Name: "Dashboard", URL: "/admin/dashboard"},
	}, map[string]interface{}{
		"ProductCount":  productCount,
		"CategoryCount": categoryCount,
		"BrandCount":    brandCount,
		"OrderCount":    orderCount,
		"PendingOrders": pendingOrders,
		"CustomerCount": customerCount,
		"RecentOrders":  recentOrders,
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/dashboard", data)
}
