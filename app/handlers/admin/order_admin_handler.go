package admin

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/utils/breadcrumb"
)

func (h *AdminHandler) GetOrdersPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := helpers.PageFromRequest(r)

	offset := (page - 1) * adminPageSize
	orders, total, err := h.orderRepo.GetPaginated(ctx, adminPageSize, offset)
	if err != nil {
		log.Printf("AdminHandler.GetOrdersPage: failed to load orders: %v", err)
	}

	data := h.adminData(r, "Order Management", []breadcrumb.Breadcrumb{
		{Name: "Orders", URL: "/admin/orders"},
	}, map[string]interface{}{
		"Orders":       orders,
		"Pagination":   helpers.NewPagination(page, adminPageSize, total),
		"StatusLabels": models.OrderStatusLabels,
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/orders/index", data)
}

func (h *AdminHandler) GetOrderDetailPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := h.orderRepo.GetByID(r.Context(), id)
	if err != nil || order == nil {
		http.Redirect(w, r, "/admin/orders?status=error&message="+url.QueryEscape("Order not found."), http.StatusSeeOther)
		return
	}

	// offer only the statuses the order can actually move to
	nextStatuses := map[int]string{}
	for status, label := range models.OrderStatusLabels {
		if order.CanTransition(status) {
			nextStatuses[status] = label
		}
	}

	data := h.adminData(r, "Order "+order.OrderCode, []breadcrumb.Breadcrumb{
		{Name: "Orders", URL: "/admin/orders"},
		{Name: order.OrderCode, URL: "/admin/orders/" + id},
	}, map[string]interface{}{
		"Order":        order,
		"NextStatuses": nextStatuses,
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/orders/detail", data)
}

func (h *AdminHandler) UpdateOrderStatusPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	target, err := strconv.Atoi(r.PostFormValue("status"))
	if err != nil {
		http.Redirect(w, r, "/admin/orders/"+id+"?status=error&message="+url.QueryEscape("Invalid status value."), http.StatusSeeOther)
		return
	}

	order, err := h.orderSvc.TransitionStatus(r.Context(), id, target)
	if err != nil {
		log.Printf("AdminHandler.UpdateOrderStatusPost: failed to transition order %s: %v", id, err)
		message := "Failed to update order status."
		if errors.Is(err, models.ErrInvalidTransition) {
			message = "That status change is not allowed for this order."
		}
		http.Redirect(w, r, "/admin/orders/"+id+"?status=error&message="+url.QueryEscape(message), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/orders/"+id+"?status=success&message="+url.QueryEscape("Order moved to "+order.StatusLabel()+"."), http.StatusSeeOther)
}
