package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/models/migrations"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:  name,
		Sku:   "SKU-" + name,
		Slug:  "slug-" + name,
		Price: decimal.NewFromInt(price),
		Stock: stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestProductSlugUniqueness(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	first := &models.Product{Name: "Gaming Mouse", Sku: "GM-001", Slug: "gaming-mouse", Price: decimal.NewFromInt(500)}
	require.NoError(t, repo.Create(ctx, first))

	duplicate := &models.Product{Name: "Gaming Mouse", Sku: "GM-002", Slug: "gaming-mouse", Price: decimal.NewFromInt(600)}
	assert.Error(t, repo.Create(ctx, duplicate))
}

func TestProductSkuUniqueness(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Product{Name: "A", Sku: "SAME", Slug: "a", Price: decimal.NewFromInt(100)}))
	assert.Error(t, repo.Create(ctx, &models.Product{Name: "B", Sku: "SAME", Slug: "b", Price: decimal.NewFromInt(100)}))
}

func TestGetPaginated(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		createTestProduct(t, db, fmt.Sprintf("item-%02d", i), int64(100+i), 10)
	}

	page1, total, err := repo.GetPaginated(ctx, ProductFilter{}, 12, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, page1, 12)

	page3, _, err := repo.GetPaginated(ctx, ProductFilter{}, 12, 24)
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	// a page past the end is empty, not an error
	beyond, total, err := repo.GetPaginated(ctx, ProductFilter{}, 12, 36)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Empty(t, beyond)
}

func TestGetPaginatedSearchFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	createTestProduct(t, db, "Wireless Mouse", 500, 10)
	createTestProduct(t, db, "Mechanical Keyboard", 1200, 5)
	kw := &models.Product{Name: "Laptop Stand", Sku: "LS-01", Slug: "laptop-stand", Price: decimal.NewFromInt(900), Keywords: "desk,mouse pad"}
	require.NoError(t, db.Create(kw).Error)

	results, total, err := repo.GetPaginated(ctx, ProductFilter{Query: "MOUSE"}, 12, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, results, 2)
}

func TestGetPaginatedCategoryAndSort(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	electronics := &models.Category{Name: "Electronics", Slug: "electronics"}
	clothing := &models.Category{Name: "Clothing", Slug: "clothing"}
	require.NoError(t, db.Create(electronics).Error)
	require.NoError(t, db.Create(clothing).Error)

	for i, price := range []int64{900, 300, 600} {
		product := &models.Product{
			Name:       fmt.Sprintf("gadget-%d", i),
			Sku:        fmt.Sprintf("G-%d", i),
			Slug:       fmt.Sprintf("gadget-%d", i),
			Price:      decimal.NewFromInt(price),
			CategoryID: electronics.ID,
		}
		require.NoError(t, db.Create(product).Error)
	}
	shirt := &models.Product{Name: "shirt", Sku: "S-1", Slug: "shirt", Price: decimal.NewFromInt(450), CategoryID: clothing.ID}
	require.NoError(t, db.Create(shirt).Error)

	results, total, err := repo.GetPaginated(ctx, ProductFilter{CategorySlug: "electronics", Sort: SortPriceAsc}, 12, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, results, 3)
	assert.True(t, results[0].Price.LessThanOrEqual(results[1].Price))
	assert.True(t, results[1].Price.LessThanOrEqual(results[2].Price))
}

func TestDecrementStockGuard(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "limited", 999, 3)

	require.NoError(t, repo.DecrementStock(ctx, db, product.ID, 2))

	var updated models.Product
	require.NoError(t, db.First(&updated, "id = ?", product.ID).Error)
	assert.Equal(t, 1, updated.Stock)

	err := repo.DecrementStock(ctx, db, product.ID, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	require.NoError(t, db.First(&updated, "id = ?", product.ID).Error)
	assert.Equal(t, 1, updated.Stock)
}

func TestIncrementStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "restocked", 700, 1)

	require.NoError(t, repo.IncrementStock(ctx, db, product.ID, 4))

	var updated models.Product
	require.NoError(t, db.First(&updated, "id = ?", product.ID).Error)
	assert.Equal(t, 5, updated.Stock)
}

func TestFlaggedShelves(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	trending := createTestProduct(t, db, "hot", 100, 5)
	trending.Trending = true
	require.NoError(t, db.Save(trending).Error)
	createTestProduct(t, db, "cold", 100, 5)

	results, err := repo.GetTrending(ctx, 8)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "hot", results[0].Name)
}

func TestReplacePrimaryImage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := &models.Product{
		Name:  "Camera",
		Sku:   "CAM-01",
		Slug:  "camera",
		Price: decimal.NewFromInt(5000),
		ProductImages: []models.ProductImage{
			{Path: "/images/products/old.jpg", Position: 0},
			{Path: "/images/products/side.jpg", Position: 1},
		},
	}
	require.NoError(t, db.Create(product).Error)

	require.NoError(t, repo.ReplacePrimaryImage(ctx, product.ID, "/images/products/new.jpg"))

	updated, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, updated.ProductImages, 2)
	assert.Equal(t, "/images/products/new.jpg", updated.FirstImage())
	assert.Equal(t, "/images/products/side.jpg", updated.ProductImages[1].Path)
}

func TestReplacePrimaryImageCreatesRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "bare", 300, 2)

	require.NoError(t, repo.ReplacePrimaryImage(ctx, product.ID, "/images/products/first.jpg"))

	updated, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "/images/products/first.jpg", updated.FirstImage())
}

// GetForUpdate runs on the caller's transaction, so it observes writes made
// earlier in that same transaction.
func TestGetForUpdateSeesTransactionWrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "tripod", 1100, 4)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			UpdateColumn("sku", "TRIPOD-NEW").Error; err != nil {
			return err
		}

		read, err := repo.GetForUpdate(ctx, tx, product.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, "TRIPOD-NEW", read.Sku)
		return nil
	})
	require.NoError(t, err)
}

func TestGetAllSlugs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	createTestProduct(t, db, "one", 100, 1)
	createTestProduct(t, db, "two", 200, 2)

	products, err := repo.GetAllSlugs(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.NotEmpty(t, p.Slug)
		assert.False(t, p.UpdatedAt.Equal(time.Time{}))
	}
}
