package fakers

import (
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"

	"github.com/mahbubzaman/gobazaar/app/models"
)

func CategoryFaker() *models.Category {
	name := faker.Word() + " " + faker.Word()

	return &models.Category{
		Name:     name,
		Slug:     slug.Make(name),
		Image:    "/images/categories/placeholder.png",
		Featured: rand.Intn(3) == 0,
	}
}
