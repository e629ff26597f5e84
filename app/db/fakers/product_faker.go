package fakers

import (
	"math/rand"

	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

func ProductFaker() *models.Product {
	name := faker.Word() + " " + faker.Word()

	return &models.Product{
		ID:       uuid.New().String(),
		Name:     name,
		Slug:     slug.Make(name + "-" + uuid.NewString()[:6]),
		Price:    fakePrice(),
		Stock:    rand.Intn(50) + 1,
		IsActive: true,
	}
}

// fakePrice stays between 1.00 and 500.00 with whole cents.
func fakePrice() decimal.Decimal {
	cents := rand.Int63n(49901) + 100
	return decimal.New(cents, -2)
}
