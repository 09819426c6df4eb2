package repositories

import (
	"context"
	"errors"

	"github.com/mahbubzaman/gobazaar/app/models"
	"gorm.io/gorm"
)

type SliderRepository interface {
	Create(ctx context.Context, slider *models.HeroSlider) error
	GetByID(ctx context.Context, id string) (*models.HeroSlider, error)
	GetAll(ctx context.Context) ([]models.HeroSlider, error)
	GetActiveByType(ctx context.Context, sliderType string) ([]models.HeroSlider, error)
	Update(ctx context.Context, slider *models.HeroSlider) error
	Delete(ctx context.Context, id string) error
}

type sliderRepository struct {
	db *gorm.DB
}

func NewSliderRepository(db *gorm.DB) SliderRepository {
	return &sliderRepository{db: db}
}

func (r *sliderRepository) Create(ctx context.Context, slider *models.HeroSlider) error {
	return r.db.WithContext(ctx).Create(slider).Error
}

func (r *sliderRepository) GetByID(ctx context.Context, id string) (*models.HeroSlider, error) {
	var slider models.HeroSlider
	err := r.db.WithContext(ctx).First(&slider, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slider, nil
}

func (r *sliderRepository) GetAll(ctx context.Context) ([]models.HeroSlider, error) {
	var sliders []models.HeroSlider
	err := r.db.WithContext(ctx).
		Order("type ASC, display_order ASC").
		Find(&sliders).Error
	if err != nil {
		return nil, err
	}
	return sliders, nil
}

func (r *sliderRepository) GetActiveByType(ctx context.Context, sliderType string) ([]models.HeroSlider, error) {
	var sliders []models.HeroSlider
	err := r.db.WithContext(ctx).
		Where("active = ? AND type = ?", true, sliderType).
		Order("display_order ASC").
		Find(&sliders).Error
	if err != nil {
		return nil, err
	}
	return sliders, nil
}

func (r *sliderRepository) Update(ctx context.Context, slider *models.HeroSlider) error {
	return r.db.WithContext(ctx).Save(slider).Error
}

func (r *sliderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.HeroSlider{}, "id = ?", id).Error
}
