package fakers

import (
	"math/rand"
	"strings"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/mahbubzaman/gobazaar/app/models"
)

var productImagePaths = []string{
	"/images/products/sample-1.jpg",
	"/images/products/sample-2.jpg",
	"/images/products/sample-3.jpg",
}

func ProductFaker(category *models.Category, brand *models.Brand) *models.Product {
	name := faker.Word() + " " + faker.Word()
	productID := uuid.New().String()

	// taka amounts, whole numbers between 100 and 10099
	price := decimal.NewFromInt(int64(rand.Intn(10000) + 100))
	originalPrice := price
	if rand.Intn(2) == 0 {
		originalPrice = price.Add(decimal.NewFromInt(int64(rand.Intn(500) + 50)))
	}

	numImages := rand.Intn(3) + 1
	images := make([]models.ProductImage, numImages)
	for i := 0; i < numImages; i++ {
		images[i] = models.ProductImage{
			ProductID: productID,
			Path:      productImagePaths[rand.Intn(len(productImagePaths))],
			Position:  i,
		}
	}

	return &models.Product{
		ID:            productID,
		Sku:           strings.ToUpper(slug.Make(name)[:3]) + "-" + uuid.NewString()[:8],
		Name:          name,
		Slug:          slug.Make(name + "-" + uuid.NewString()[:6]),
		Description:   faker.Paragraph(),
		Price:         price,
		OriginalPrice: originalPrice,
		BuyPrice:      price.Mul(decimal.NewFromFloat(0.8)).Round(2),
		Stock:         rand.Intn(50) + 1,
		Keywords:      faker.Word() + "," + faker.Word(),
		CategoryID:    category.ID,
		BrandID:       brand.ID,
		Trending:      rand.Intn(4) == 0,
		BestSelling:   rand.Intn(4) == 0,
		Featured:      rand.Intn(4) == 0,
		ProductImages: images,
	}
}
