package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/unrolled/render"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/repositories"
	"github.com/mahbubzaman/gobazaar/app/utils/breadcrumb"
)

const orderHistoryPageSize = 10

type OrderHandler struct {
	orderRepo repositories.OrderRepository
	render    *render.Render
	notFound  http.HandlerFunc
}

func NewOrderHandler(orderRepo repositories.OrderRepository, render *render.Render, notFound http.HandlerFunc) *OrderHandler {
	return &OrderHandler{
		orderRepo: orderRepo,
		render:    render,
		notFound:  notFound,
	}
}

// TrackOrderPage shows the code+email lookup form, and the matching order
// with its status timeline when both are supplied.
func (h *OrderHandler) TrackOrderPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	code := strings.TrimSpace(query.Get("code"))
	email := strings.TrimSpace(query.Get("email"))

	data := map[string]interface{}{
		"Title":         "Track Order",
		"Code":          code,
		"Email":         email,
		"MessageStatus": query.Get("status"),
		"Message":       query.Get("message"),
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Track Order", URL: "/orders/track"},
		},
	}

	if code != "" && email != "" {
		order, err := h.orderRepo.GetByCodeAndEmail(ctx, code, email)
		if err != nil {
			log.Printf("OrderHandler.TrackOrderPage: lookup failed for %s: %v", code, err)
			http.Error(w, "Failed to look up order", http.StatusInternalServerError)
			return
		}
		if order == nil {
			data["MessageStatus"] = "error"
			data["Message"] = "No order matches that code and email."
		} else {
			data["Order"] = order
		}
	}

	_ = h.render.HTML(w, http.StatusOK, "orders/track", helpers.GetBaseData(r, data))
}

// MyOrders lists the signed-in customer's orders.
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(helpers.ContextKeyUserID).(string)
	if !ok || userID == "" {
		http.Redirect(w, r, "/?status=info&message="+url.QueryEscape("Please sign in to see your orders."), http.StatusSeeOther)
		return
	}

	page := helpers.PageFromRequest(r)
	orders, total, err := h.orderRepo.GetByUserPaginated(ctx, userID, orderHistoryPageSize, (page-1)*orderHistoryPageSize)
	if err != nil {
		log.Printf("OrderHandler.MyOrders: failed to load orders for user %s: %v", userID, err)
		http.Error(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":      "My Orders",
		"Orders":     orders,
		"Pagination": helpers.NewPagination(page, orderHistoryPageSize, total),
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "My Orders", URL: "/orders"},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "orders/index", data)
}
