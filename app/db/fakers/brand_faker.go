package fakers

import (
	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"

	"github.com/mahbubzaman/gobazaar/app/models"
)

func BrandFaker() *models.Brand {
	name := faker.FirstName() + " " + faker.Word()

	return &models.Brand{
		Name:  name,
		Slug:  slug.Make(name),
		Image: "/images/brands/placeholder.png",
	}
}
