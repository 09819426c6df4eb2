package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/services"
	"github.com/mahbubzaman/gobazaar/app/utils/breadcrumb"
	"github.com/mahbubzaman/gobazaar/app/utils/sessions"
)

type CheckoutForm struct {
	Name          string `validate:"required,min=2,max=100"`
	Email         string `validate:"required,email"`
	Phone         string `validate:"required,min=10,max=15"`
	Address       string `validate:"required,min=10"`
	Area          string `validate:"required,oneof=inside_dhaka outside_dhaka"`
	PaymentMethod string `validate:"required,oneof=cod bkash"`
}

type CheckoutHandler struct {
	checkoutSvc  *services.CheckoutService
	sessionStore sessions.SessionStore
	render       *render.Render
	validator    *validator.Validate
}

func NewCheckoutHandler(
	checkoutSvc *services.CheckoutService,
	sessionStore sessions.SessionStore,
	render *render.Render,
	validate *validator.Validate,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutSvc:  checkoutSvc,
		sessionStore: sessionStore,
		render:       render,
		validator:    validate,
	}
}

func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	sessionCart := h.sessionStore.GetCart(r)
	if sessionCart.IsEmpty() {
		http.Redirect(w, r, "/cart?status=info&message="+url.QueryEscape("Your cart is empty."), http.StatusSeeOther)
		return
	}

	h.renderCheckout(w, r, &CheckoutForm{}, nil)
}

func (h *CheckoutHandler) renderCheckout(w http.ResponseWriter, r *http.Request, form *CheckoutForm, formErrors map[string]string) {
	sessionCart := h.sessionStore.GetCart(r)
	subtotal := sessionCart.TotalPrice()
	area := form.Area
	if area == "" {
		area = "inside_dhaka"
	}
	deliveryFee := h.checkoutSvc.DeliveryFee(area)

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":         "Checkout",
		"Cart":          sessionCart,
		"Subtotal":      subtotal,
		"DeliveryFee":   deliveryFee,
		"GrandTotal":    subtotal.Add(deliveryFee),
		"Form":          form,
		"Errors":        formErrors,
		"MessageStatus": r.URL.Query().Get("status"),
		"Message":       r.URL.Query().Get("message"),
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Cart", URL: "/cart"},
			{Name: "Checkout", URL: "/checkout"},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "checkout/index", data)
}

// PlaceOrderPost validates the shipping form, creates the order and either
// finishes a cash-on-delivery checkout or hands the customer off to the
// payment gateway.
func (h *CheckoutHandler) PlaceOrderPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		log.Printf("CheckoutHandler.PlaceOrderPost: form parse error: %v", err)
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape("Invalid form submission."), http.StatusSeeOther)
		return
	}

	form := CheckoutForm{
		Name:          r.PostFormValue("name"),
		Email:         r.PostFormValue("email"),
		Phone:         r.PostFormValue("phone"),
		Address:       r.PostFormValue("address"),
		Area:          r.PostFormValue("area"),
		PaymentMethod: r.PostFormValue("payment_method"),
	}

	if err := h.validator.Struct(&form); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			h.renderCheckout(w, r, &form, helpers.FormatValidationErrors(validationErrors))
			return
		}
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape("Invalid form submission."), http.StatusSeeOther)
		return
	}

	sessionCart := h.sessionStore.GetCart(r)
	userID, _ := ctx.Value(helpers.ContextKeyUserID).(string)

	order, err := h.checkoutSvc.PlaceOrder(ctx, sessionCart, services.ShippingDetails{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Address: form.Address,
		Area:    form.Area,
		UserID:  userID,
	}, form.PaymentMethod)
	if err != nil {
		log.Printf("CheckoutHandler.PlaceOrderPost: failed to place order: %v", err)
		if errors.Is(err, services.ErrEmptyCart) {
			http.Redirect(w, r, "/cart?status=info&message="+url.QueryEscape("Your cart is empty."), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape("Could not place your order: "+err.Error()), http.StatusSeeOther)
		return
	}

	if form.PaymentMethod == models.PaymentMethodBkash {
		redirectURL, err := h.checkoutSvc.InitiateBkashPayment(ctx, order)
		if err != nil {
			log.Printf("CheckoutHandler.PlaceOrderPost: bkash initiation failed for order %s: %v", order.OrderCode, err)
			http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape(paymentFailureMessage(err)), http.StatusSeeOther)
			return
		}

		// cart is cleared on the payment callback, not here: a cancelled
		// payment sends the customer back with the cart intact
		http.Redirect(w, r, redirectURL, http.StatusSeeOther)
		return
	}

	if err := h.sessionStore.ClearCart(w, r); err != nil {
		log.Printf("CheckoutHandler.PlaceOrderPost: failed to clear cart: %v", err)
	}

	http.Redirect(w, r, "/checkout/success?code="+url.QueryEscape(order.OrderCode), http.StatusSeeOther)
}

// PaymentCallback is where the gateway redirect lands after the customer
// finishes on the gateway side. The execute step runs here, server-side.
func (h *CheckoutHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	paymentID := query.Get("paymentID")
	status := query.Get("status")

	if paymentID == "" {
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape("Missing payment reference."), http.StatusSeeOther)
		return
	}

	if status != "success" {
		if _, err := h.checkoutSvc.AbortBkashPayment(ctx, paymentID); err != nil {
			log.Printf("CheckoutHandler.PaymentCallback: failed to abort payment %s: %v", paymentID, err)
		}
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape("Payment was cancelled or failed."), http.StatusSeeOther)
		return
	}

	order, err := h.checkoutSvc.CompleteBkashPayment(ctx, paymentID)
	if err != nil {
		log.Printf("CheckoutHandler.PaymentCallback: execute failed for payment %s: %v", paymentID, err)
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape(paymentFailureMessage(err)), http.StatusSeeOther)
		return
	}

	if err := h.sessionStore.ClearCart(w, r); err != nil {
		log.Printf("CheckoutHandler.PaymentCallback: failed to clear cart: %v", err)
	}

	http.Redirect(w, r, "/checkout/success?code="+url.QueryEscape(order.OrderCode), http.StatusSeeOther)
}

func (h *CheckoutHandler) OrderSuccess(w http.ResponseWriter, r *http.Request) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":     "Order Confirmed",
		"OrderCode": r.URL.Query().Get("code"),
	})
	_ = h.render.HTML(w, http.StatusOK, "checkout/success", data)
}

// paymentFailureMessage surfaces the gateway's own message when it sent one.
func paymentFailureMessage(err error) string {
	var authErr *services.AuthError
	if errors.As(err, &authErr) {
		return "Payment service unavailable. Please try again later or choose cash on delivery."
	}
	var gatewayErr *services.GatewayError
	if errors.As(err, &gatewayErr) {
		return "Payment failed: " + gatewayErr.Message
	}
	return "Payment failed. Please try again."
}
