package repositories

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahbubzaman/gobazaar/app/models"
)

func TestBrandSlugUniqueness(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBrandRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Brand{Name: "Walton", Slug: "walton"}))
	assert.Error(t, repo.Create(ctx, &models.Brand{Name: "Walton Again", Slug: "walton"}))
}

func TestBrandDeleteGuard(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBrandRepository(db)
	ctx := context.Background()

	brand := &models.Brand{Name: "Symphony", Slug: "symphony"}
	require.NoError(t, repo.Create(ctx, brand))

	product := &models.Product{
		Name:    "Feature Phone",
		Sku:     "FP-01",
		Slug:    "feature-phone",
		Price:   decimal.NewFromInt(1500),
		BrandID: brand.ID,
	}
	require.NoError(t, db.Create(product).Error)

	assert.ErrorIs(t, repo.Delete(ctx, brand.ID), ErrBrandInUse)

	require.NoError(t, db.Delete(product).Error)
	assert.NoError(t, repo.Delete(ctx, brand.ID))
}

func TestBrandGetBySlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBrandRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Brand{Name: "Minister", Slug: "minister"}))

	brand, err := repo.GetBySlug(ctx, "minister")
	require.NoError(t, err)
	require.NotNil(t, brand)
	assert.Equal(t, "Minister", brand.Name)

	missing, err := repo.GetBySlug(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
