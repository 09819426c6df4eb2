package handlers

import (
	"encoding/xml"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mahbubzaman/gobazaar/app/repositories"
)

const (
	sitemapPriorityHome     = "1.0"
	sitemapPriorityProduct  = "0.7"
	sitemapPriorityTaxonomy = "0.6"
)

type sitemapURL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod"`
	Priority string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type SitemapHandler struct {
	appURL       string
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	brandRepo    repositories.BrandRepository
}

func NewSitemapHandler(
	appURL string,
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	brandRepo repositories.BrandRepository,
) *SitemapHandler {
	return &SitemapHandler{
		appURL:       appURL,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// Sitemap lists the public routes plus every product, category and brand
// slug, re-read from the store on each request.
func (h *SitemapHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().Format("2006-01-02")

	urlSet := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: h.appURL + "/", LastMod: now, Priority: sitemapPriorityHome},
			{Loc: h.appURL + "/products", LastMod: now, Priority: sitemapPriorityProduct},
			{Loc: h.appURL + "/orders/track", LastMod: now, Priority: sitemapPriorityTaxonomy},
		},
	}

	products, err := h.productRepo.GetAllSlugs(ctx)
	if err != nil {
		log.Printf("SitemapHandler.Sitemap: failed to load product slugs: %v", err)
	}
	for _, product := range products {
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc:      h.appURL + "/products/" + product.Slug,
			LastMod:  product.UpdatedAt.Format("2006-01-02"),
			Priority: sitemapPriorityProduct,
		})
	}

	categories, err := h.categoryRepo.GetAll(ctx)
	if err != nil {
		log.Printf("SitemapHandler.Sitemap: failed to load categories: %v", err)
	}
	for _, category := range categories {
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc:      h.appURL + "/categories/" + category.Slug,
			LastMod:  category.UpdatedAt.Format("2006-01-02"),
			Priority: sitemapPriorityTaxonomy,
		})
	}

	brands, err := h.brandRepo.GetAll(ctx)
	if err != nil {
		log.Printf("SitemapHandler.Sitemap: failed to load brands: %v", err)
	}
	for _, brand := range brands {
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc:      h.appURL + "/brands/" + brand.Slug,
			LastMod:  brand.UpdatedAt.Format("2006-01-02"),
			Priority: sitemapPriorityTaxonomy,
		})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(urlSet); err != nil {
		log.Printf("SitemapHandler.Sitemap: failed to encode sitemap: %v", err)
	}
}

func (h *SitemapHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", h.appURL)
}
