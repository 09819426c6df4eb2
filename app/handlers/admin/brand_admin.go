package admin

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/repositories"
	"github.com/mahbubzaman/gobazaar/app/utils/breadcrumb"
)

type BrandForm struct {
	Name  string `validate:"required,min=2,max=100"`
	Image string `validate:"max=255"`
}

func (h *AdminHandler) GetBrandsPage(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brandRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("AdminHandler.GetBrandsPage: failed to load brands: %v", err)
	}

	data := h.adminData(r, "Brand Management", []breadcrumb.Breadcrumb{
		{Name: "Brands", URL: "/admin/brands"},
	}, map[string]interface{}{
		"Brands": brands,
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/brands/index", data)
}

func (h *AdminHandler) renderBrandForm(w http.ResponseWriter, r *http.Request, title, action string, form *BrandForm, formErrors map[string]string) {
	data := h.adminData(r, title, []breadcrumb.Breadcrumb{
		{Name: "Brands", URL: "/admin/brands"},
	}, map[string]interface{}{
		"FormAction": action,
		"BrandData":  form,
		"Errors":     formErrors,
	})
	_ = h.render.HTML(w, http.StatusOK, "admin/brands/form", data)
}

func (h *AdminHandler) AddBrandPage(w http.ResponseWriter, r *http.Request) {
	h.renderBrandForm(w, r, "Add Brand", "/admin/brands/add", &BrandForm{}, nil)
}

func (h *AdminHandler) parseBrandForm(r *http.Request) (*BrandForm, map[string]string) {
	form := BrandForm{
		Name:  r.PostFormValue("name"),
		Image: r.PostFormValue("image"),
	}

	if err := h.validator.Struct(&form); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return &form, helpers.FormatValidationErrors(validationErrors)
		}
		return &form, map[string]string{"form": "Invalid form submission."}
	}
	return &form, nil
}

func (h *AdminHandler) AddBrandPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, formErrors := h.parseBrandForm(r)
	if formErrors != nil {
		h.renderBrandForm(w, r, "Add Brand", "/admin/brands/add", form, formErrors)
		return
	}

	brandSlug := helpers.Slugify(form.Name)
	if existing, err := h.brandRepo.GetBySlug(ctx, brandSlug); err == nil && existing != nil {
		brandSlug = helpers.SlugifyUnique(form.Name)
	}

	brand := &models.Brand{
		Name:  form.Name,
		Slug:  brandSlug,
		Image: form.Image,
	}

	if err := h.brandRepo.Create(ctx, brand); err != nil {
		log.Printf("AdminHandler.AddBrandPost: failed to create brand: %v", err)
		http.Redirect(w, r, "/admin/brands?status=error&message="+url.QueryEscape("Failed to create brand."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/brands?status=success&message="+url.QueryEscape("Brand created."), http.StatusSeeOther)
}

func (h *AdminHandler) EditBrandPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	brand, err := h.brandRepo.GetByID(r.Context(), id)
	if err != nil || brand == nil {
		http.Redirect(w, r, "/admin/brands?status=error&message="+url.QueryEscape("Brand not found."), http.StatusSeeOther)
		return
	}

	h.renderBrandForm(w, r, "Edit Brand", "/admin/brands/edit/"+id, &BrandForm{
		Name:  brand.Name,
		Image: brand.Image,
	}, nil)
}

func (h *AdminHandler) EditBrandPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	brand, err := h.brandRepo.GetByID(ctx, id)
	if err != nil || brand == nil {
		http.Redirect(w, r, "/admin/brands?status=error&message="+url.QueryEscape("Brand not found."), http.StatusSeeOther)
		return
	}

	form, formErrors := h.parseBrandForm(r)
	if formErrors != nil {
		h.renderBrandForm(w, r, "Edit Brand", "/admin/brands/edit/"+id, form, formErrors)
		return
	}

	brand.Name = form.Name
	brand.Image = form.Image

	if err := h.brandRepo.Update(ctx, brand); err != nil {
		log.Printf("AdminHandler.EditBrandPost: failed to update brand %s: %v", id, err)
		http.Redirect(w, r, "/admin/brands?status=error&message="+url.QueryEscape("Failed to update brand."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/brands?status=success&message="+url.QueryEscape("Brand updated."), http.StatusSeeOther)
}

func (h *AdminHandler) DeleteBrandPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.brandRepo.Delete(r.Context(), id); err != nil {
		log.Printf("AdminHandler.DeleteBrandPost: failed to delete brand %s: %v", id, err)
		message := "Failed to delete brand."
		if errors.Is(err, repositories.ErrBrandInUse) {
			message = "Brand cannot be deleted while products reference it."
		}
		http.Redirect(w, r, "/admin/brands?status=error&message="+url.QueryEscape(message), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/brands?status=success&message="+url.QueryEscape("Brand deleted."), http.StatusSeeOther)
}
