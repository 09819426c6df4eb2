package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/models/migrations"
	"github.com/mahbubzaman/gobazaar/app/repositories"
	"github.com/mahbubzaman/gobazaar/app/services"
)

func setupAdminTest(t *testing.T) (*AdminHandler, *gorm.DB, repositories.ProductRepositoryImpl) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	h := NewAdminHandler(
		repositories.NewBrandRepository(db),
		repositories.NewCategoryRepository(db),
		productRepo,
		repositories.NewSliderRepository(db),
		orderRepo,
		repositories.NewUserRepository(db),
		services.NewOrderService(db, orderRepo, productRepo),
		render.New(render.Options{Directory: t.TempDir()}),
		validator.New(),
	)
	return h, db, productRepo
}

func seedEditableProduct(t *testing.T, db *gorm.DB, imagePath string) (*models.Product, *models.Category, *models.Brand) {
	t.Helper()

	category := &models.Category{Name: "Audio", Slug: "audio"}
	require.NoError(t, db.Create(category).Error)
	brand := &models.Brand{Name: "Walton", Slug: "walton"}
	require.NoError(t, db.Create(brand).Error)

	product := &models.Product{
		Name:       "Earbuds",
		Sku:        "EB-01",
		Slug:       "earbuds",
		Price:      decimal.NewFromInt(700),
		Stock:      5,
		CategoryID: category.ID,
		BrandID:    brand.ID,
	}
	if imagePath != "" {
		product.ProductImages = []models.ProductImage{{Path: imagePath}}
	}
	require.NoError(t, db.Create(product).Error)
	return product, category, brand
}

func postProductEdit(t *testing.T, h *AdminHandler, productID string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest("POST", "/admin/products/edit/"+productID, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r = mux.SetURLVars(r, map[string]string{"id": productID})

	w := httptest.NewRecorder()
	h.EditProductPost(w, r)
	return w
}

func TestEditProductPostReplacesImage(t *testing.T) {
	h, db, productRepo := setupAdminTest(t)

	product, category, brand := seedEditableProduct(t, db, "/images/products/old.jpg")

	w := postProductEdit(t, h, product.ID, url.Values{
		"name":        {"Earbuds"},
		"sku":         {"EB-01"},
		"price":       {"700"},
		"stock":       {"5"},
		"category_id": {category.ID},
		"brand_id":    {brand.ID},
		"image":       {"/images/products/new.jpg"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "status=success")

	updated, err := productRepo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "/images/products/new.jpg", updated.FirstImage())
	assert.Len(t, updated.ProductImages, 1)
}

func TestEditProductPostAddsImageWhenMissing(t *testing.T) {
	h, db, productRepo := setupAdminTest(t)

	product, category, brand := seedEditableProduct(t, db, "")

	w := postProductEdit(t, h, product.ID, url.Values{
		"name":        {"Earbuds"},
		"sku":         {"EB-01"},
		"price":       {"700"},
		"stock":       {"5"},
		"category_id": {category.ID},
		"brand_id":    {brand.ID},
		"image":       {"/images/products/fresh.jpg"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)

	updated, err := productRepo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "/images/products/fresh.jpg", updated.FirstImage())
}

// A blank image field leaves the current image alone.
func TestEditProductPostKeepsImageWhenBlank(t *testing.T) {
	h, db, productRepo := setupAdminTest(t)

	product, category, brand := seedEditableProduct(t, db, "/images/products/old.jpg")

	w := postProductEdit(t, h, product.ID, url.Values{
		"name":        {"Earbuds Pro"},
		"sku":         {"EB-01"},
		"price":       {"900"},
		"stock":       {"5"},
		"category_id": {category.ID},
		"brand_id":    {brand.ID},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)

	updated, err := productRepo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Earbuds Pro", updated.Name)
	assert.Equal(t, "/images/products/old.jpg", updated.FirstImage())
}
