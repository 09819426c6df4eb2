package handlers

import (
	"log"
	"net/http"

	"github.com/unrolled/render"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/repositories"
)

const homeShelfSize = 8

type HomeHandler struct {
	sliderRepo   repositories.SliderRepository
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	render       *render.Render
}

func NewHomeHandler(
	sliderRepo repositories.SliderRepository,
	categoryRepo repositories.CategoryRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	render *render.Render,
) *HomeHandler {
	return &HomeHandler{
		sliderRepo:   sliderRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		render:       render,
	}
}

func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	carousel, err := h.sliderRepo.GetActiveByType(ctx, models.SliderTypeCarousel)
	if err != nil {
		log.Printf("HomeHandler.Home: failed to load carousel sliders: %v", err)
	}
	promoTop, err := h.sliderRepo.GetActiveByType(ctx, models.SliderTypePromoTop)
	if err != nil {
		log.Printf("HomeHandler.Home: failed to load promo-top sliders: %v", err)
	}
	promoBottom, err := h.sliderRepo.GetActiveByType(ctx, models.SliderTypePromoBottom)
	if err != nil {
		log.Printf("HomeHandler.Home: failed to load promo-bottom sliders: %v", err)
	}

	featuredCategories, err := h.categoryRepo.GetFeatured(ctx, 6)
	if err != nil {
		log.Printf("HomeHandler.Home: failed to load featured categories: %v", err)
	}

	trending, err := h.productRepo.GetTrending(ctx, homeShelfSize)
	if err != nil {
		log.Printf("HomeHandler.Home: failed to load trending products: %v", err)
	}
	bestSelling, err := h.productRepo.GetBestSelling(ctx, homeShelfSize)
	if err != nil {
		log.Printf("HomeHandler.Home: failed to load best-selling products: %v", err)
	}
	featured, err := h.productRepo.GetFeatured(ctx, homeShelfSize)
	if err != nil {
		log.Printf("HomeHandler.Home: failed to load featured products: %v", err)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":               "GoBazaar",
		"Carousel":            carousel,
		"PromoTop":            promoTop,
		"PromoBottom":         promoBottom,
		"FeaturedCategories":  featuredCategories,
		"TrendingProducts":    trending,
		"BestSellingProducts": bestSelling,
		"FeaturedProducts":    featured,
		"MessageStatus":       r.URL.Query().Get("status"),
		"Message":             r.URL.Query().Get("message"),
	})

	_ = h.render.HTML(w, http.StatusOK, "home", data)
}

// NotFound renders the shared 404 page.
func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Page Not Found",
	})
	_ = h.render.HTML(w, http.StatusNotFound, "404", data)
}
