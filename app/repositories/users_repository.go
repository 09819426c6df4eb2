package repositories

import (
	"context"
	"errors"

	"github.com/mahbubzaman/gobazaar/app/models"
	"gorm.io/gorm"
)

type UserRepositoryImpl interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByProviderUID(ctx context.Context, providerUID string) (*models.User, error)
	GetCustomersPaginated(ctx context.Context, limit, offset int) ([]models.User, int64, error)
	CountCustomers(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepositoryImpl {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) findOne(ctx context.Context, cond string, arg string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, cond, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) FindByProviderUID(ctx context.Context, providerUID string) (*models.User, error) {
	return r.findOne(ctx, "provider_uid = ?", providerUID)
}

func (r *userRepository) GetCustomersPaginated(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	base := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleCustomer)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("role = ?", models.RoleCustomer).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error

	return users, total, err
}

func (r *userRepository) CountCustomers(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleCustomer).
		Count(&total).Error
	return total, err
}
