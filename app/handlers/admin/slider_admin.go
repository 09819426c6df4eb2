package admin

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/utils/breadcrumb"
)

type SliderForm struct {
	Title        string `validate:"required,min=2,max=255"`
	Image        string `validate:"required,max=255"`
	Link         string `validate:"max=255"`
	Type         string `validate:"required,oneof=carousel promo-top promo-bottom"`
	DisplayOrder string
	Active       bool
}

func (h *AdminHandler) GetSlidersPage(w http.ResponseWriter, r *http.Request) {
	sliders, err := h.sliderRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("AdminHandler.GetSlidersPage: failed to load sliders: %v", err)
	}

	data := h.adminData(r, "Slider Management", []breadcrumb.Breadcrumb{
		{Name: "Sliders", URL: "/admin/sliders"},
	}, map[string]interface{}{
		"Sliders": sliders,
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/sliders/index", data)
}

func (h *AdminHandler) renderSliderForm(w http.ResponseWriter, r *http.Request, title, action string, form *SliderForm, formErrors map[string]string) {
	data := h.adminData(r, title, []breadcrumb.Breadcrumb{
		{Name: "Sliders", URL: "/admin/sliders"},
	}, map[string]interface{}{
		"FormAction": action,
		"SliderData": form,
		"SliderTypes": []string{
			models.SliderTypeCarousel,
			models.SliderTypePromoTop,
			models.SliderTypePromoBottom,
		},
		"Errors": formErrors,
	})
	_ = h.render.HTML(w, http.StatusOK, "admin/sliders/form", data)
}

func (h *AdminHandler) AddSliderPage(w http.ResponseWriter, r *http.Request) {
	h.renderSliderForm(w, r, "Add Slider", "/admin/sliders/add", &SliderForm{Active: true}, nil)
}

func (h *AdminHandler) parseSliderForm(r *http.Request) (*SliderForm, int, map[string]string) {
	form := SliderForm{
		Title:        r.PostFormValue("title"),
		Image:        r.PostFormValue("image"),
		Link:         r.PostFormValue("link"),
		Type:         r.PostFormValue("type"),
		DisplayOrder: r.PostFormValue("display_order"),
		Active:       r.PostFormValue("active") == "on",
	}

	if err := h.validator.Struct(&form); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return &form, 0, helpers.FormatValidationErrors(validationErrors)
		}
		return &form, 0, map[string]string{"form": "Invalid form submission."}
	}

	displayOrder := 0
	if form.DisplayOrder != "" {
		parsed, err := strconv.Atoi(form.DisplayOrder)
		if err != nil {
			return &form, 0, map[string]string{"DisplayOrder": "Display order must be a whole number."}
		}
		displayOrder = parsed
	}
	return &form, displayOrder, nil
}

func (h *AdminHandler) AddSliderPost(w http.ResponseWriter, r *http.Request) {
	form, displayOrder, formErrors := h.parseSliderForm(r)
	if formErrors != nil {
		h.renderSliderForm(w, r, "Add Slider", "/admin/sliders/add", form, formErrors)
		return
	}

	slider := &models.HeroSlider{
		Title:        form.Title,
		Image:        form.Image,
		Link:         form.Link,
		Type:         form.Type,
		DisplayOrder: displayOrder,
		Active:       form.Active,
	}

	if err := h.sliderRepo.Create(r.Context(), slider); err != nil {
		log.Printf("AdminHandler.AddSliderPost: failed to create slider: %v", err)
		http.Redirect(w, r, "/admin/sliders?status=error&message="+url.QueryEscape("Failed to create slider."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/sliders?status=success&message="+url.QueryEscape("Slider created."), http.StatusSeeOther)
}

func (h *AdminHandler) EditSliderPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	slider, err := h.sliderRepo.GetByID(r.Context(), id)
	if err != nil || slider == nil {
		http.Redirect(w, r, "/admin/sliders?status=error&message="+url.QueryEscape("Slider not found."), http.StatusSeeOther)
		return
	}

	form := &SliderForm{
		Title:        slider.Title,
		Image:        slider.Image,
		Link:         slider.Link,
		Type:         slider.Type,
		DisplayOrder: strconv.Itoa(slider.DisplayOrder),
		Active:       slider.Active,
	}

	h.renderSliderForm(w, r, "Edit Slider", "/admin/sliders/edit/"+id, form, nil)
}

func (h *AdminHandler) EditSliderPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	slider, err := h.sliderRepo.GetByID(ctx, id)
	if err != nil || slider == nil {
		http.Redirect(w, r, "/admin/sliders?status=error&message="+url.QueryEscape("Slider not found."), http.StatusSeeOther)
		return
	}

	form, displayOrder, formErrors := h.parseSliderForm(r)
	if formErrors != nil {
		h.renderSliderForm(w, r, "Edit Slider", "/admin/sliders/edit/"+id, form, formErrors)
		return
	}

	slider.Title = form.Title
	slider.Image = form.Image
	slider.Link = form.Link
	slider.Type = form.Type
	slider.DisplayOrder = displayOrder
	slider.Active = form.Active

	if err := h.sliderRepo.Update(ctx, slider); err != nil {
		log.Printf("AdminHandler.EditSliderPost: failed to update slider %s: %v", id, err)
		http.Redirect(w, r, "/admin/sliders?status=error&message="+url.QueryEscape("Failed to update slider."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/sliders?status=success&message="+url.QueryEscape("Slider updated."), http.StatusSeeOther)
}

func (h *AdminHandler) DeleteSliderPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.sliderRepo.Delete(r.Context(), id); err != nil {
		log.Printf("AdminHandler.DeleteSliderPost: failed to delete slider %s: %v", id, err)
		http.Redirect(w, r, "/admin/sliders?status=error&message="+url.QueryEscape("Failed to delete slider."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/sliders?status=success&message="+url.QueryEscape("Slider deleted."), http.StatusSeeOther)
}
