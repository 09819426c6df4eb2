package admin

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/repositories"
	"github.com/mahbubzaman/gobazaar/app/services"
	"github.com/mahbubzaman/gobazaar/app/utils/breadcrumb"
)

const adminPageSize = 25

type AdminHandler struct {
	brandRepo    repositories.BrandRepository
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	sliderRepo   repositories.SliderRepository
	orderRepo    repositories.OrderRepository
	userRepo     repositories.UserRepositoryImpl
	orderSvc     *services.OrderService
	render       *render.Render
	validator    *validator.Validate
}

func NewAdminHandler(
	brandRepo repositories.BrandRepository,
	categoryRepo repositories.CategoryRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	sliderRepo repositories.SliderRepository,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepositoryImpl,
	orderSvc *services.OrderService,
	render *render.Render,
	validate *validator.Validate,
) *AdminHandler {
	return &AdminHandler{
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		sliderRepo:   sliderRepo,
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		orderSvc:     orderSvc,
		render:       render,
		validator:    validate,
	}
}

// adminData builds the base page data every back-office template expects.
func (h *AdminHandler) adminData(r *http.Request, title string, crumbs []breadcrumb.Breadcrumb, extra map[string]interface{}) map[string]interface{} {
	if extra == nil {
		extra = make(map[string]interface{})
	}
	extra["Title"] = title
	extra["IsAdminPage"] = true
	extra["Breadcrumbs"] = append([]breadcrumb.Breadcrumb{
		{Name: "Home", URL: "/"},
		{Name: "Admin", URL: "/admin/dashboard"},
	}, crumbs...)
	extra["MessageStatus"] = r.URL.Query().Get("status")
	extra["Message"] = r.URL.Query().Get("message")
	return helpers.GetBaseData(r, extra)
}
