package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Sku           string          `gorm:"size:100;uniqueIndex"`
	Name          string          `gorm:"size:255;not null"`
	Slug          string          `gorm:"size:255;not null;uniqueIndex"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(16,2)"`
	BuyPrice      decimal.Decimal `gorm:"type:decimal(16,2)"`
	Stock         int             `gorm:"not null"`
	Keywords      string          `gorm:"type:text"`
	CategoryID    string          `gorm:"size:36;index"`
	Category      Category        `gorm:"foreignKey:CategoryID"`
	BrandID       string          `gorm:"size:36;index"`
	Brand         Brand           `gorm:"foreignKey:BrandID"`
	Trending      bool            `gorm:"default:false"`
	BestSelling   bool            `gorm:"default:false"`
	Featured      bool            `gorm:"default:false"`
	ProductImages []ProductImage
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// KeywordList splits the comma-separated keywords column.
func (p *Product) KeywordList() []string {
	if p.Keywords == "" {
		return nil
	}
	parts := strings.Split(p.Keywords, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// FirstImage returns the primary image path, empty when the product has none.
func (p *Product) FirstImage() string {
	if len(p.ProductImages) == 0 {
		return ""
	}
	return p.ProductImages[0].Path
}

type ProductImage struct {
	ID        string  `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID string  `gorm:"size:36;index;not null"`
	Product   Product `gorm:"foreignKey:ProductID"`
	Path      string  `gorm:"size:255;not null"`
	Position  int     `gorm:"default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (pi *ProductImage) BeforeCreate(tx *gorm.DB) (err error) {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return
}
