package repositories

import (
	"context"
	"errors"

	"github.com/mahbubzaman/gobazaar/app/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	Save(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByCode(ctx context.Context, code string) (*models.Order, error)
	GetByCodeAndEmail(ctx context.Context, code, email string) (*models.Order, error)
	GetByBkashPaymentID(ctx context.Context, paymentID string) (*models.Order, error)
	GetPaginated(ctx context.Context, limit, offset int) ([]models.Order, int64, error)
	GetByUserPaginated(ctx context.Context, userID string, limit, offset int) ([]models.Order, int64, error)
	GetRecent(ctx context.Context, limit int) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status int) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) getOne(ctx context.Context, cond string, args ...interface{}) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("User").
		First(&order, append([]interface{}{cond}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *orderRepository) GetByCode(ctx context.Context, code string) (*models.Order, error) {
	return r.getOne(ctx, "order_code = ?", code)
}

func (r *orderRepository) GetByCodeAndEmail(ctx context.Context, code, email string) (*models.Order, error) {
	return r.getOne(ctx, "order_code = ? AND customer_email = ?", code, email)
}

func (r *orderRepository) GetByBkashPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	return r.getOne(ctx, "bkash_payment_id = ?", paymentID)
}

func (r *orderRepository) GetPaginated(ctx context.Context, limit, offset int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Order("order_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) GetByUserPaginated(ctx context.Context, userID string, limit, offset int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) GetRecent(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Order("order_date DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error
	return total, err
}

func (r *orderRepository) CountByStatus(ctx context.Context, status int) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, err
}
