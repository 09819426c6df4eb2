package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/mahbubzaman/gobazaar/app/db/fakers"
	"github.com/mahbubzaman/gobazaar/app/models"
)

const (
	seedCategoryCount       = 6
	seedBrandCount          = 4
	seedProductsPerCategory = 8
)

// DBSeed fills an empty database with fake catalog data plus the default
// admin account. Running it twice doubles the catalog, it is meant for
// fresh development databases.
func DBSeed(db *gorm.DB) error {
	admin := fakers.AdminFaker()
	if err := db.FirstOrCreate(admin, "email = ?", admin.Email).Error; err != nil {
		return err
	}

	for i := 0; i < 3; i++ {
		user := fakers.UserFaker()
		if err := db.FirstOrCreate(user, "email = ?", user.Email).Error; err != nil {
			return err
		}
	}

	brands := make([]*models.Brand, 0, seedBrandCount)
	for i := 0; i < seedBrandCount; i++ {
		brand := fakers.BrandFaker()
		if err := db.FirstOrCreate(brand, "slug = ?", brand.Slug).Error; err != nil {
			return err
		}
		brands = append(brands, brand)
	}

	for i := 0; i < seedCategoryCount; i++ {
		category := fakers.CategoryFaker()
		if err := db.FirstOrCreate(category, "slug = ?", category.Slug).Error; err != nil {
			return err
		}

		for j := 0; j < seedProductsPerCategory; j++ {
			product := fakers.ProductFaker(category, brands[j%len(brands)])
			if err := db.Create(product).Error; err != nil {
				return err
			}
		}
		log.Printf("seeded category %s with %d products", category.Name, seedProductsPerCategory)
	}

	sliders := []models.HeroSlider{
		{Title: "Big Sale", Image: "/images/sliders/sale.jpg", Link: "/products", Type: models.SliderTypeCarousel, DisplayOrder: 0, Active: true},
		{Title: "New Arrivals", Image: "/images/sliders/new.jpg", Link: "/products?sort=newest", Type: models.SliderTypeCarousel, DisplayOrder: 1, Active: true},
		{Title: "Free Delivery", Image: "/images/sliders/delivery.jpg", Link: "/products", Type: models.SliderTypePromoTop, Active: true},
		{Title: "Trending Now", Image: "/images/sliders/trending.jpg", Link: "/products", Type: models.SliderTypePromoBottom, Active: true},
	}
	for i := range sliders {
		if err := db.FirstOrCreate(&sliders[i], "title = ? AND type = ?", sliders[i].Title, sliders[i].Type).Error; err != nil {
			return err
		}
	}

	return nil
}
