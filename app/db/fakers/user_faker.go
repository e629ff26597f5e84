package fakers

import (
	"strings"

	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

// DefaultPassword is the plain text password of every seeded customer.
const DefaultPassword = "password123"

func UserFaker() *models.User {
	suffix := uuid.NewString()[:8]

	return &models.User{
		ID:       uuid.New().String(),
		Username: strings.ToLower(faker.FirstName()) + "_" + suffix,
		Email:    suffix + "." + strings.ToLower(faker.Email()),
		Password: DefaultPassword,
		Role:     models.RoleCustomer,
	}
}
