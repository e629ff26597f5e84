package seeders_test

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-shop/app/db/fakers"
	"github.com/Rakhulsr/go-shop/app/db/seeders"
	"github.com/Rakhulsr/go-shop/app/db/testdb"
	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

func TestDBSeed(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	require.NoError(t, seeders.DBSeed(ctx, db, seeders.Options{Products: 12, Users: 2}, zaptest.NewLogger(t)))

	var products int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	assert.EqualValues(t, 12, products)

	active, err := repositories.NewProductRepository(db).GetActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 12)

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(fakers.DefaultPassword)))
	}
}
