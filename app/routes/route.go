package routes

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mahbubzaman/gobazaar/app/configs"
	"github.com/mahbubzaman/gobazaar/app/handlers"
	"github.com/mahbubzaman/gobazaar/app/handlers/admin"
	"github.com/mahbubzaman/gobazaar/app/middlewares"
	"github.com/mahbubzaman/gobazaar/app/repositories"
	"github.com/mahbubzaman/gobazaar/app/services"
	"github.com/mahbubzaman/gobazaar/app/utils/renderer"
	"github.com/mahbubzaman/gobazaar/app/utils/sessions"
)

// NewRouter wires every repository, service and handler and returns the
// root handler with CSRF protection applied.
func NewRouter(db *gorm.DB, env configs.ENV, keys *configs.SessionKeys) http.Handler {
	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)
	render := renderer.New()
	validate := validator.New()

	brandRepo := repositories.NewBrandRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	sliderRepo := repositories.NewSliderRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	userRepo := repositories.NewUserRepository(db)

	bkashClient := services.NewBkashClient(configs.LoadBkashConfig(), env.AppURL+"/checkout/payment/callback")

	feeInside, _ := decimal.NewFromString(env.DeliveryFeeInsideDhaka)
	feeOutside, _ := decimal.NewFromString(env.DeliveryFeeOutsideDhaka)
	checkoutSvc := services.NewCheckoutService(db, productRepo, orderRepo, bkashClient, feeInside, feeOutside)
	orderSvc := services.NewOrderService(db, orderRepo, productRepo)
	identitySvc := services.NewIdentityService(userRepo, services.NewGoogleTokenVerifier(env.GoogleClientID))

	homeHandler := handlers.NewHomeHandler(sliderRepo, categoryRepo, productRepo, render)
	productHandler := handlers.NewProductHandler(productRepo, categoryRepo, brandRepo, render, homeHandler.NotFound)
	cartHandler := handlers.NewCartHandler(productRepo, sessionStore, render)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutSvc, sessionStore, render, validate)
	orderHandler := handlers.NewOrderHandler(orderRepo, render, homeHandler.NotFound)
	authHandler := handlers.NewAuthHandler(identitySvc, sessionStore, render)
	sitemapHandler := handlers.NewSitemapHandler(env.AppURL, productRepo, categoryRepo, brandRepo)
	adminHandler := admin.NewAdminHandler(brandRepo, categoryRepo, productRepo, sliderRepo, orderRepo, userRepo, orderSvc, render, validate)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(homeHandler.NotFound)

	router.Use(middlewares.MethodOverrideMiddleware)
	router.Use(middlewares.UserContextMiddleware(sessionStore, userRepo))
	router.Use(middlewares.CartCountMiddleware(sessionStore))

	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("./static"))))

	router.HandleFunc("/", homeHandler.Home).Methods("GET")
	router.HandleFunc("/products", productHandler.ListProducts).Methods("GET")
	router.HandleFunc("/products/{slug}", productHandler.ProductDetail).Methods("GET")
	router.HandleFunc("/categories/{slug}", productHandler.CategoryPage).Methods("GET")
	router.HandleFunc("/brands/{slug}", productHandler.BrandPage).Methods("GET")

	router.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	router.HandleFunc("/cart/add", cartHandler.AddToCart).Methods("POST")
	router.HandleFunc("/cart/update", cartHandler.UpdateCartItem).Methods("POST")
	router.HandleFunc("/cart/remove", cartHandler.RemoveCartItem).Methods("POST")
	router.HandleFunc("/cart/clear", cartHandler.ClearCart).Methods("POST")

	router.HandleFunc("/checkout", checkoutHandler.GetCheckout).Methods("GET")
	router.HandleFunc("/checkout", checkoutHandler.PlaceOrderPost).Methods("POST")
	router.HandleFunc("/checkout/payment/callback", checkoutHandler.PaymentCallback).Methods("GET")
	router.HandleFunc("/checkout/success", checkoutHandler.OrderSuccess).Methods("GET")

	router.HandleFunc("/orders/track", orderHandler.TrackOrderPage).Methods("GET")
	router.HandleFunc("/orders", orderHandler.MyOrders).Methods("GET")

	router.HandleFunc("/auth/session", authHandler.CreateSession).Methods("POST")
	router.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	router.HandleFunc("/sitemap.xml", sitemapHandler.Sitemap).Methods("GET")
	router.HandleFunc("/robots.txt", sitemapHandler.Robots).Methods("GET")

	router.HandleFunc("/admin/login", authHandler.AdminLoginPage).Methods("GET")
	router.HandleFunc("/admin/login", authHandler.AdminLoginPost).Methods("POST")

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminAuthMiddleware(userRepo))

	adminRouter.HandleFunc("/dashboard", adminHandler.GetDashboard).Methods("GET")

	adminRouter.HandleFunc("/products", adminHandler.GetProductsPage).Methods("GET")
	adminRouter.HandleFunc("/products/add", adminHandler.AddProductPage).Methods("GET")
	adminRouter.HandleFunc("/products/add", adminHandler.AddProductPost).Methods("POST")
	adminRouter.HandleFunc("/products/edit/{id}", adminHandler.EditProductPage).Methods("GET")
	adminRouter.HandleFunc("/products/edit/{id}", adminHandler.EditProductPost).Methods("POST")
	adminRouter.HandleFunc("/products/delete/{id}", adminHandler.DeleteProductPost).Methods("POST", "DELETE")

	adminRouter.HandleFunc("/categories", adminHandler.GetCategoriesPage).Methods("GET")
	adminRouter.HandleFunc("/categories/add", adminHandler.AddCategoryPage).Methods("GET")
	adminRouter.HandleFunc("/categories/add", adminHandler.AddCategoryPost).Methods("POST")
	adminRouter.HandleFunc("/categories/edit/{id}", adminHandler.EditCategoryPage).Methods("GET")
	adminRouter.HandleFunc("/categories/edit/{id}", adminHandler.EditCategoryPost).Methods("POST")
	adminRouter.HandleFunc("/categories/delete/{id}", adminHandler.DeleteCategoryPost).Methods("POST", "DELETE")

	adminRouter.HandleFunc("/brands", adminHandler.GetBrandsPage).Methods("GET")
	adminRouter.HandleFunc("/brands/add", adminHandler.AddBrandPage).Methods("GET")
	adminRouter.HandleFunc("/brands/add", adminHandler.AddBrandPost).Methods("POST")
	adminRouter.HandleFunc("/brands/edit/{id}", adminHandler.EditBrandPage).Methods("GET")
	adminRouter.HandleFunc("/brands/edit/{id}", adminHandler.EditBrandPost).Methods("POST")
	adminRouter.HandleFunc("/brands/delete/{id}", adminHandler.DeleteBrandPost).Methods("POST", "DELETE")

	adminRouter.HandleFunc("/sliders", adminHandler.GetSlidersPage).Methods("GET")
	adminRouter.HandleFunc("/sliders/add", adminHandler.AddSliderPage).Methods("GET")
	adminRouter.HandleFunc("/sliders/add", adminHandler.AddSliderPost).Methods("POST")
	adminRouter.HandleFunc("/sliders/edit/{id}", adminHandler.EditSliderPage).Methods("GET")
	adminRouter.HandleFunc("/sliders/edit/{id}", adminHandler.EditSliderPost).Methods("POST")
	adminRouter.HandleFunc("/sliders/delete/{id}", adminHandler.DeleteSliderPost).Methods("POST", "DELETE")

	adminRouter.HandleFunc("/orders", adminHandler.GetOrdersPage).Methods("GET")
	adminRouter.HandleFunc("/orders/{id}", adminHandler.GetOrderDetailPage).Methods("GET")
	adminRouter.HandleFunc("/orders/{id}/status", adminHandler.UpdateOrderStatusPost).Methods("POST")

	adminRouter.HandleFunc("/customers", adminHandler.GetCustomersPage).Methods("GET")

	csrfMiddleware := csrf.Protect(
		keys.AuthKey,
		csrf.Secure(env.AppEnv == "production"),
		csrf.Path("/"),
	)

	return csrfMiddleware(router)
}
