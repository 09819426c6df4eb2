package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SliderTypeCarousel    = "carousel"
	SliderTypePromoTop    = "promo-top"
	SliderTypePromoBottom = "promo-bottom"
)

type HeroSlider struct {
	ID           string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Title        string `gorm:"size:255;not null"`
	Image        string `gorm:"size:255;not null"`
	Link         string `gorm:"size:255"`
	DisplayOrder int    `gorm:"default:0"`
	Active       bool
	Type         string `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (h *HeroSlider) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return
}
