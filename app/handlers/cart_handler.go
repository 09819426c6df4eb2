package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/unrolled/render"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/repositories"
	"github.com/mahbubzaman/gobazaar/app/utils/breadcrumb"
	"github.com/mahbubzaman/gobazaar/app/utils/sessions"
)

type CartHandler struct {
	productRepo  repositories.ProductRepositoryImpl
	sessionStore sessions.SessionStore
	render       *render.Render
}

func NewCartHandler(
	productRepo repositories.ProductRepositoryImpl,
	sessionStore sessions.SessionStore,
	render *render.Render,
) *CartHandler {
	return &CartHandler{
		productRepo:  productRepo,
		sessionStore: sessionStore,
		render:       render,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionCart := h.sessionStore.GetCart(r)

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":         "Shopping Cart",
		"Cart":          sessionCart,
		"TotalItems":    sessionCart.TotalItems(),
		"TotalPrice":    sessionCart.TotalPrice(),
		"MessageStatus": r.URL.Query().Get("status"),
		"Message":       r.URL.Query().Get("message"),
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Cart", URL: "/cart"},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "carts/index", data)
}

// AddToCart appends or merges a line item with an add-time price snapshot.
// Quantity is bounded by the product's current stock.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := r.FormValue("product_id")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil || qty < 1 {
		qty = 1
	}

	product, err := h.productRepo.GetByID(ctx, productID)
	if err != nil {
		log.Printf("CartHandler.AddToCart: product %s not found: %v", productID, err)
		http.Redirect(w, r, "/products?status=error&message="+url.QueryEscape("Product not found."), http.StatusSeeOther)
		return
	}

	sessionCart := h.sessionStore.GetCart(r)

	have := 0
	if line := sessionCart.Find(product.ID); line != nil {
		have = line.Qty
	}
	if have+qty > product.Stock {
		http.Redirect(w, r, "/products/"+product.Slug+"?status=error&message="+url.QueryEscape(
			fmt.Sprintf("Only %d of %s in stock.", product.Stock, product.Name)), http.StatusSeeOther)
		return
	}

	sessionCart.AddItem(product.ID, product.Name, product.Price, product.FirstImage(), qty)

	if err := h.sessionStore.SaveCart(w, r, sessionCart); err != nil {
		log.Printf("CartHandler.AddToCart: failed to save cart: %v", err)
		http.Redirect(w, r, "/cart?status=error&message="+url.QueryEscape("Failed to update cart."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/cart?status=success&message="+url.QueryEscape(product.Name+" added to cart."), http.StatusSeeOther)
}

// UpdateCartItem sets a line quantity; zero or below removes the line.
func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID := r.FormValue("product_id")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil {
		http.Redirect(w, r, "/cart?status=error&message="+url.QueryEscape("Invalid quantity."), http.StatusSeeOther)
		return
	}

	if qty > 0 {
		product, err := h.productRepo.GetByID(r.Context(), productID)
		if err == nil && qty > product.Stock {
			http.Redirect(w, r, "/cart?status=error&message="+url.QueryEscape(
				fmt.Sprintf("Only %d of %s in stock.", product.Stock, product.Name)), http.StatusSeeOther)
			return
		}
	}

	sessionCart := h.sessionStore.GetCart(r)
	sessionCart.UpdateItemQuantity(productID, qty)

	if err := h.sessionStore.SaveCart(w, r, sessionCart); err != nil {
		log.Printf("CartHandler.UpdateCartItem: failed to save cart: %v", err)
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sessionCart := h.sessionStore.GetCart(r)
	sessionCart.RemoveItem(r.FormValue("product_id"))

	if err := h.sessionStore.SaveCart(w, r, sessionCart); err != nil {
		log.Printf("CartHandler.RemoveCartItem: failed to save cart: %v", err)
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearCart(w, r); err != nil {
		log.Printf("CartHandler.ClearCart: failed to clear cart: %v", err)
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
