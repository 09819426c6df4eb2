package migrations

import (
	"github.com/mahbubzaman/gobazaar/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Brand{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.HeroSlider{},
		&models.Order{},
		&models.OrderItem{},
	)
}
