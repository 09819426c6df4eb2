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

type CategoryForm struct {
	Name     string `validate:"required,min=2,max=100"`
	Image    string `validate:"max=255"`
	ParentID string
	Featured bool
}

func (h *AdminHandler) GetCategoriesPage(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("AdminHandler.GetCategoriesPage: failed to load categories: %v", err)
	}

	data := h.adminData(r, "Category Management", []breadcrumb.Breadcrumb{
		{Name: "Categories", URL: "/admin/categories"},
	}, map[string]interface{}{
		"Categories": categories,
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/categories/index", data)
}

func (h *AdminHandler) renderCategoryForm(w http.ResponseWriter, r *http.Request, title, action string, form *CategoryForm, formErrors map[string]string) {
	// only top-level categories can be parents; the UI shows one level of
	// nesting
	parents, err := h.categoryRepo.GetTopLevel(r.Context())
	if err != nil {
		log.Printf("AdminHandler.renderCategoryForm: failed to load parent categories: %v", err)
	}

	data := h.adminData(r, title, []breadcrumb.Breadcrumb{
		{Name: "Categories", URL: "/admin/categories"},
	}, map[string]interface{}{
		"FormAction":   action,
		"CategoryData": form,
		"Parents":      parents,
		"Errors":       formErrors,
	})
	_ = h.render.HTML(w, http.StatusOK, "admin/categories/form", data)
}

func (h *AdminHandler) AddCategoryPage(w http.ResponseWriter, r *http.Request) {
	h.renderCategoryForm(w, r, "Add Category", "/admin/categories/add", &CategoryForm{}, nil)
}

func (h *AdminHandler) parseCategoryForm(r *http.Request) (*CategoryForm, map[string]string) {
	form := CategoryForm{
		Name:     r.PostFormValue("name"),
		Image:    r.PostFormValue("image"),
		ParentID: r.PostFormValue("parent_id"),
		Featured: r.PostFormValue("featured") == "on",
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

func (h *AdminHandler) AddCategoryPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, formErrors := h.parseCategoryForm(r)
	if formErrors != nil {
		h.renderCategoryForm(w, r, "Add Category", "/admin/categories/add", form, formErrors)
		return
	}

	categorySlug := helpers.Slugify(form.Name)
	if existing, err := h.categoryRepo.GetBySlug(ctx, categorySlug); err == nil && existing != nil {
		categorySlug = helpers.SlugifyUnique(form.Name)
	}

	category := &models.Category{
		Name:     form.Name,
		Slug:     categorySlug,
		Image:    form.Image,
		Featured: form.Featured,
	}
	if form.ParentID != "" {
		category.ParentID = &form.ParentID
	}

	if err := h.categoryRepo.Create(ctx, category); err != nil {
		log.Printf("AdminHandler.AddCategoryPost: failed to create category: %v", err)
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape("Failed to create category."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/categories?status=success&message="+url.QueryEscape("Category created."), http.StatusSeeOther)
}

func (h *AdminHandler) EditCategoryPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	category, err := h.categoryRepo.GetByID(r.Context(), id)
	if err != nil || category == nil {
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape("Category not found."), http.StatusSeeOther)
		return
	}

	form := &CategoryForm{
		Name:     category.Name,
		Image:    category.Image,
		Featured: category.Featured,
	}
	if category.ParentID != nil {
		form.ParentID = *category.ParentID
	}

	h.renderCategoryForm(w, r, "Edit Category", "/admin/categories/edit/"+id, form, nil)
}

func (h *AdminHandler) EditCategoryPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	category, err := h.categoryRepo.GetByID(ctx, id)
	if err != nil || category == nil {
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape("Category not found."), http.StatusSeeOther)
		return
	}

	form, formErrors := h.parseCategoryForm(r)
	if formErrors != nil {
		h.renderCategoryForm(w, r, "Edit Category", "/admin/categories/edit/"+id, form, formErrors)
		return
	}

	category.Name = form.Name
	category.Image = form.Image
	category.Featured = form.Featured
	if form.ParentID != "" && form.ParentID != category.ID {
		category.ParentID = &form.ParentID
	} else {
		category.ParentID = nil
	}

	if err := h.categoryRepo.Update(ctx, category); err != nil {
		log.Printf("AdminHandler.EditCategoryPost: failed to update category %s: %v", id, err)
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape("Failed to update category."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/categories?status=success&message="+url.QueryEscape("Category updated."), http.StatusSeeOther)
}

func (h *AdminHandler) DeleteCategoryPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.categoryRepo.Delete(r.Context(), id); err != nil {
		log.Printf("AdminHandler.DeleteCategoryPost: failed to delete category %s: %v", id, err)
		message := "Failed to delete category."
		if errors.Is(err, repositories.ErrCategoryInUse) {
			message = "Category cannot be deleted while products reference it."
		}
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape(message), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/categories?status=success&message="+url.QueryEscape("Category deleted."), http.StatusSeeOther)
}
