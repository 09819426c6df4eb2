package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        string     `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string     `gorm:"size:100;not null"`
	Slug      string     `gorm:"size:100;not null;uniqueIndex"`
	Image     string     `gorm:"size:255"`
	Featured  bool       `gorm:"default:false"`
	ParentID  *string    `gorm:"size:36;index"`
	Parent    *Category  `gorm:"foreignKey:ParentID"`
	Children  []Category `gorm:"foreignKey:ParentID"`
	Products  []Product
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
