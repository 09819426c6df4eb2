package admin

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/repositories"
	"github.com/mahbubzaman/gobazaar/app/utils/breadcrumb"
)

type ProductForm struct {
	Name          string `validate:"required,min=2,max=255"`
	Sku           string `validate:"required,max=100"`
	Description   string
	Price         string `validate:"required"`
	OriginalPrice string
	BuyPrice      string
	Stock         string `validate:"required"`
	Keywords      string
	CategoryID    string `validate:"required"`
	BrandID       string `validate:"required"`
	Image         string `validate:"max=255"`
	Trending      bool
	BestSelling   bool
	Featured      bool
}

func (h *AdminHandler) GetProductsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := helpers.PageFromRequest(r)

	filter := repositories.ProductFilter{
		Query: r.URL.Query().Get("q"),
		Sort:  r.URL.Query().Get("sort"),
	}

	offset := (page - 1) * adminPageSize
	products, total, err := h.productRepo.GetPaginated(ctx, filter, adminPageSize, offset)
	if err != nil {
		log.Printf("AdminHandler.GetProductsPage: failed to load products: %v", err)
	}

	data := h.adminData(r, "Product Management", []breadcrumb.Breadcrumb{
		{Name: "Products", URL: "/admin/products"},
	}, map[string]interface{}{
		"Products":    products,
		"Pagination":  helpers.NewPagination(page, adminPageSize, total),
		"SearchQuery": filter.Query,
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/products/index", data)
}

func (h *AdminHandler) renderProductForm(w http.ResponseWriter, r *http.Request, title, action string, form *ProductForm, formErrors map[string]string) {
	ctx := r.Context()

	categories, err := h.categoryRepo.GetAll(ctx)
	if err != nil {
		log.Printf("AdminHandler.renderProductForm: failed to load categories: %v", err)
	}
	brands, err := h.brandRepo.GetAll(ctx)
	if err != nil {
		log.Printf("AdminHandler.renderProductForm: failed to load brands: %v", err)
	}

	data := h.adminData(r, title, []breadcrumb.Breadcrumb{
		{Name: "Products", URL: "/admin/products"},
	}, map[string]interface{}{
		"FormAction":  action,
		"ProductData": form,
		"Categories":  categories,
		"Brands":      brands,
		"Errors":      formErrors,
	})
	_ = h.render.HTML(w, http.StatusOK, "admin/products/form", data)
}

func (h *AdminHandler) AddProductPage(w http.ResponseWriter, r *http.Request) {
	h.renderProductForm(w, r, "Add Product", "/admin/products/add", &ProductForm{}, nil)
}

// parseProductForm validates the posted form and converts the money and
// stock fields. Money never goes through float64.
func (h *AdminHandler) parseProductForm(r *http.Request) (*ProductForm, *productValues, map[string]string) {
	form := ProductForm{
		Name:          r.PostFormValue("name"),
		Sku:           r.PostFormValue("sku"),
		Description:   r.PostFormValue("description"),
		Price:         r.PostFormValue("price"),
		OriginalPrice: r.PostFormValue("original_price"),
		BuyPrice:      r.PostFormValue("buy_price"),
		Stock:         r.PostFormValue("stock"),
		Keywords:      r.PostFormValue("keywords"),
		CategoryID:    r.PostFormValue("category_id"),
		BrandID:       r.PostFormValue("brand_id"),
		Image:         r.PostFormValue("image"),
		Trending:      r.PostFormValue("trending") == "on",
		BestSelling:   r.PostFormValue("best_selling") == "on",
		Featured:      r.PostFormValue("featured") == "on",
	}

	if err := h.validator.Struct(&form); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return &form, nil, helpers.FormatValidationErrors(validationErrors)
		}
		return &form, nil, map[string]string{"form": "Invalid form submission."}
	}

	formErrors := map[string]string{}
	values := productValues{}

	var err error
	values.price, err = decimal.NewFromString(form.Price)
	if err != nil || values.price.IsNegative() {
		formErrors["Price"] = "Price must be a non-negative number."
	}
	if form.OriginalPrice != "" {
		values.originalPrice, err = decimal.NewFromString(form.OriginalPrice)
		if err != nil || values.originalPrice.IsNegative() {
			formErrors["OriginalPrice"] = "Original price must be a non-negative number."
		}
	}
	if form.BuyPrice != "" {
		values.buyPrice, err = decimal.NewFromString(form.BuyPrice)
		if err != nil || values.buyPrice.IsNegative() {
			formErrors["BuyPrice"] = "Buy price must be a non-negative number."
		}
	}
	values.stock, err = strconv.Atoi(form.Stock)
	if err != nil || values.stock < 0 {
		formErrors["Stock"] = "Stock must be a non-negative whole number."
	}

	if len(formErrors) > 0 {
		return &form, nil, formErrors
	}
	return &form, &values, nil
}

type productValues struct {
	price         decimal.Decimal
	originalPrice decimal.Decimal
	buyPrice      decimal.Decimal
	stock         int
}

func (h *AdminHandler) AddProductPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, values, formErrors := h.parseProductForm(r)
	if formErrors != nil {
		h.renderProductForm(w, r, "Add Product", "/admin/products/add", form, formErrors)
		return
	}

	productSlug := helpers.Slugify(form.Name)
	if existing, err := h.productRepo.GetBySlug(ctx, productSlug); err == nil && existing != nil {
		productSlug = helpers.SlugifyUnique(form.Name)
	}

	product := &models.Product{
		Name:          form.Name,
		Sku:           form.Sku,
		Slug:          productSlug,
		Description:   form.Description,
		Price:         values.price,
		OriginalPrice: values.originalPrice,
		BuyPrice:      values.buyPrice,
		Stock:         values.stock,
		Keywords:      form.Keywords,
		CategoryID:    form.CategoryID,
		BrandID:       form.BrandID,
		Trending:      form.Trending,
		BestSelling:   form.BestSelling,
		Featured:      form.Featured,
	}
	if form.Image != "" {
		product.ProductImages = []models.ProductImage{{Path: form.Image}}
	}

	if err := h.productRepo.Create(ctx, product); err != nil {
		log.Printf("AdminHandler.AddProductPost: failed to create product: %v", err)
		http.Redirect(w, r, "/admin/products?status=error&message="+url.QueryEscape("Failed to create product. The SKU may already be in use."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/products?status=success&message="+url.QueryEscape("Product created."), http.StatusSeeOther)
}

func (h *AdminHandler) EditProductPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil || product == nil {
		http.Redirect(w, r, "/admin/products?status=error&message="+url.QueryEscape("Product not found."), http.StatusSeeOther)
		return
	}

	form := &ProductForm{
		Name:        product.Name,
		Sku:         product.Sku,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		Stock:       strconv.Itoa(product.Stock),
		Keywords:    product.Keywords,
		CategoryID:  product.CategoryID,
		BrandID:     product.BrandID,
		Image:       product.FirstImage(),
		Trending:    product.Trending,
		BestSelling: product.BestSelling,
		Featured:    product.Featured,
	}
	if !product.OriginalPrice.IsZero() {
		form.OriginalPrice = product.OriginalPrice.StringFixed(2)
	}
	if !product.BuyPrice.IsZero() {
		form.BuyPrice = product.BuyPrice.StringFixed(2)
	}

	h.renderProductForm(w, r, "Edit Product", "/admin/products/edit/"+id, form, nil)
}

func (h *AdminHandler) EditProductPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(ctx, id)
	if err != nil || product == nil {
		http.Redirect(w, r, "/admin/products?status=error&message="+url.QueryEscape("Product not found."), http.StatusSeeOther)
		return
	}

	form, values, formErrors := h.parseProductForm(r)
	if formErrors != nil {
		h.renderProductForm(w, r, "Edit Product", "/admin/products/edit/"+id, form, formErrors)
		return
	}

	product.Name = form.Name
	product.Sku = form.Sku
	product.Description = form.Description
	product.Price = values.price
	product.OriginalPrice = values.originalPrice
	product.BuyPrice = values.buyPrice
	product.Stock = values.stock
	product.Keywords = form.Keywords
	product.CategoryID = form.CategoryID
	product.BrandID = form.BrandID
	product.Trending = form.Trending
	product.BestSelling = form.BestSelling
	product.Featured = form.Featured

	if err := h.productRepo.Update(ctx, product); err != nil {
		log.Printf("AdminHandler.EditProductPost: failed to update product %s: %v", id, err)
		http.Redirect(w, r, "/admin/products?status=error&message="+url.QueryEscape("Failed to update product."), http.StatusSeeOther)
		return
	}

	if form.Image != "" {
		if err := h.productRepo.ReplacePrimaryImage(ctx, product.ID, form.Image); err != nil {
			log.Printf("AdminHandler.EditProductPost: failed to update image for product %s: %v", id, err)
			http.Redirect(w, r, "/admin/products?status=error&message="+url.QueryEscape("Failed to update product image."), http.StatusSeeOther)
			return
		}
	}

	http.Redirect(w, r, "/admin/products?status=success&message="+url.QueryEscape("Product updated."), http.StatusSeeOther)
}

func (h *AdminHandler) DeleteProductPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.productRepo.Delete(r.Context(), id); err != nil {
		log.Printf("AdminHandler.DeleteProductPost: failed to delete product %s: %v", id, err)
		http.Redirect(w, r, "/admin/products?status=error&message="+url.QueryEscape("Failed to delete product."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/products?status=success&message="+url.QueryEscape("Product deleted."), http.StatusSeeOther)
}
