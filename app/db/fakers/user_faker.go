package fakers

import (
	"log"

	"github.com/go-faker/faker/v4"

	"github.com/mahbubzaman/gobazaar/app/helpers"
	"github.com/mahbubzaman/gobazaar/app/models"
)

func UserFaker() *models.User {
	return &models.User{
		ProviderUID: faker.UUIDHyphenated(),
		Name:        faker.Name(),
		Email:       faker.Email(),
		Phone:       faker.Phonenumber(),
		Role:        models.RoleCustomer,
	}
}

// AdminFaker builds the default back-office account used in development.
func AdminFaker() *models.User {
	hash, err := helpers.HashPassword("admin12345")
	if err != nil {
		log.Fatal("failed to hash admin password:", err)
	}

	return &models.User{
		Name:         "Admin",
		Email:        "admin@gobazaar.test",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
}
