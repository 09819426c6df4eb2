package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/repositories"
	"github.com/mahbubzaman/gobazaar/app/utils/breadcrumb"
)

const storefrontPageSize = 12

type ProductHandler struct {
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	brandRepo    repositories.BrandRepository
	render       *render.Render
	notFound     http.HandlerFunc
}

func NewProductHandler(
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	brandRepo repositories.BrandRepository,
	render *render.Render,
	notFound http.HandlerFunc,
) *ProductHandler {
	return &ProductHandler{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		render:       render,
		notFound:     notFound,
	}
}

// ListProducts translates the URL query (page, q, category, brand, sort) into
// one bounded read and renders the result. Every navigation re-queries.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filter := repositories.ProductFilter{
		Query:        query.Get("q"),
		CategorySlug: query.Get("category"),
		BrandSlug:    query.Get("brand"),
		Sort:         query.Get("sort"),
	}

	page := helpers.PageFromRequest(r)
	pagination := helpers.NewPagination(page, storefrontPageSize, 0)

	products, total, err := h.productRepo.GetPaginated(ctx, filter, pagination.PerPage, pagination.Offset())
	if err != nil {
		log.Printf("ProductHandler.ListProducts: failed to load products: %v", err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}
	pagination = helpers.NewPagination(page, storefrontPageSize, total)

	categories, err := h.categoryRepo.GetAll(ctx)
	if err != nil {
		log.Printf("ProductHandler.ListProducts: failed to load categories: %v", err)
	}
	brands, err := h.brandRepo.GetAll(ctx)
	if err != nil {
		log.Printf("ProductHandler.ListProducts: failed to load brands: %v", err)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":      "Products",
		"Products":   products,
		"Categories": categories,
		"Brands":     brands,
		"Pagination": pagination,
		"Filter":     filter,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Products", URL: "/products"},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "products/index", data)
}

// ProductDetail renders one product by slug, 404 when the slug is unknown.
func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		log.Printf("ProductHandler.ProductDetail: product %q not found: %v", slug, err)
		h.notFound(w, r)
		return
	}

	related, _, err := h.productRepo.GetPaginated(ctx, repositories.ProductFilter{
		CategorySlug: product.Category.Slug,
	}, 4, 0)
	if err != nil {
		log.Printf("ProductHandler.ProductDetail: failed to load related products: %v", err)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":           product.Name,
		"Product":         product,
		"RelatedProducts": related,
		"MessageStatus":   r.URL.Query().Get("status"),
		"Message":         r.URL.Query().Get("message"),
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Products", URL: "/products"},
			{Name: product.Name, URL: "/products/" + product.Slug},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "products/detail", data)
}

// CategoryPage lists one category's products, 404 on unknown slug.
func (h *ProductHandler) CategoryPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	category, err := h.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		log.Printf("ProductHandler.CategoryPage: failed to load category %q: %v", slug, err)
		http.Error(w, "Failed to load category", http.StatusInternalServerError)
		return
	}
	if category == nil {
		h.notFound(w, r)
		return
	}

	page := helpers.PageFromRequest(r)
	filter := repositories.ProductFilter{CategorySlug: slug, Sort: r.URL.Query().Get("sort")}

	products, total, err := h.productRepo.GetPaginated(ctx, filter, storefrontPageSize, (page-1)*storefrontPageSize)
	if err != nil {
		log.Printf("ProductHandler.CategoryPage: failed to load products for %q: %v", slug, err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":      category.Name,
		"Category":   category,
		"Products":   products,
		"Pagination": helpers.NewPagination(page, storefrontPageSize, total),
		"Filter":     filter,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Categories", URL: "/products"},
			{Name: category.Name, URL: "/categories/" + category.Slug},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "categories/detail", data)
}

// BrandPage lists one brand's products, 404 on unknown slug.
func (h *ProductHandler) BrandPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	brand, err := h.brandRepo.GetBySlug(ctx, slug)
	if err != nil {
		log.Printf("ProductHandler.BrandPage: failed to load brand %q: %v", slug, err)
		http.Error(w, "Failed to load brand", http.StatusInternalServerError)
		return
	}
	if brand == nil {
		h.notFound(w, r)
		return
	}

	page := helpers.PageFromRequest(r)
	filter := repositories.ProductFilter{BrandSlug: slug, Sort: r.URL.Query().Get("sort")}

	products, total, err := h.productRepo.GetPaginated(ctx, filter, storefrontPageSize, (page-1)*storefrontPageSize)
	if err != nil {
		log.Printf("ProductHandler.BrandPage: failed to load products for %q: %v", slug, err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":      brand.Name,
		"Brand":      brand,
		"Products":   products,
		"Pagination": helpers.NewPagination(page, storefrontPageSize, total),
		"Filter":     filter,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Brands", URL: "/products"},
			{Name: brand.Name, URL: "/brands/" + brand.Slug},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "brands/detail", data)
}
