package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/mahbubzaman/gobazaar/app/models"
	"gorm.io/gorm"
)

var ErrInsufficientStock = errors.New("insufficient product stock")

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
)

// ProductFilter narrows a paginated product listing. Zero values mean "no
// filter"; an unknown sort key falls back to newest.
type ProductFilter struct {
	Query        string
	CategorySlug string
	BrandSlug    string
	Sort         string
}

type ProductRepositoryImpl interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetPaginated(ctx context.Context, filter ProductFilter, limit, offset int) ([]models.Product, int64, error)
	GetFeatured(ctx context.Context, limit int) ([]models.Product, error)
	GetTrending(ctx context.Context, limit int) ([]models.Product, error)
	GetBestSelling(ctx context.Context, limit int) ([]models.Product, error)
	GetAllSlugs(ctx context.Context) ([]models.Product, error)
	GetForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Product, error)
	ReplacePrimaryImage(ctx context.Context, productID, path string) error
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error
	IncrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Save(product).Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Preload("ProductImages", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Preload("ProductImages", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) listQuery(ctx context.Context, filter ProductFilter) *gorm.DB {
	query := p.db.WithContext(ctx).Model(&models.Product{})

	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories c ON c.id = products.category_id").
			Where("c.slug = ?", filter.CategorySlug)
	}

	if filter.BrandSlug != "" {
		query = query.
			Joins("JOIN brands b ON b.id = products.brand_id").
			Where("b.slug = ?", filter.BrandSlug)
	}

	if filter.Query != "" {
		keyword := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where(
			"LOWER(products.name) LIKE ? OR LOWER(products.sku) LIKE ? OR LOWER(products.keywords) LIKE ?",
			keyword, keyword, keyword,
		)
	}

	return query
}

func orderClause(sort string) string {
	switch sort {
	case SortPriceAsc:
		return "products.price ASC"
	case SortPriceDesc:
		return "products.price DESC"
	case SortNameAsc:
		return "products.name ASC"
	case SortNameDesc:
		return "products.name DESC"
	default:
		return "products.created_at DESC"
	}
}

func (p *productRepository) GetPaginated(ctx context.Context, filter ProductFilter, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := p.listQuery(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := p.listQuery(ctx, filter).
		Preload("Category").
		Preload("Brand").
		Preload("ProductImages", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order(orderClause(filter.Sort)).
		Limit(limit).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) flaggedProducts(ctx context.Context, column string, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Preload("ProductImages", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Category").
		Where(column+" = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	return p.flaggedProducts(ctx, "featured", limit)
}

func (p *productRepository) GetTrending(ctx context.Context, limit int) ([]models.Product, error) {
	return p.flaggedProducts(ctx, "trending", limit)
}

func (p *productRepository) GetBestSelling(ctx context.Context, limit int) ([]models.Product, error) {
	return p.flaggedProducts(ctx, "best_selling", limit)
}

func (p *productRepository) GetAllSlugs(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Select("slug", "updated_at").
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// GetForUpdate reads a product through the caller's transaction so a
// snapshot taken next to a stock write sees the same connection.
func (p *productRepository) GetForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	if err := tx.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ReplacePrimaryImage updates the product's first image in place, creating
// the row when the product has none yet.
func (p *productRepository) ReplacePrimaryImage(ctx context.Context, productID, path string) error {
	var image models.ProductImage
	err := p.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position ASC").
		First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p.db.WithContext(ctx).Create(&models.ProductImage{ProductID: productID, Path: path}).Error
	}
	if err != nil {
		return err
	}

	image.Path = path
	return p.db.WithContext(ctx).Save(&image).Error
}

// DecrementStock is guarded in the UPDATE itself so concurrent checkouts
// cannot drive stock below zero.
func (p *productRepository) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	result := tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (p *productRepository) IncrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	return tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
}

func (p *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}
