package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is the local profile record. Customers are keyed by the stable
// ProviderUID issued by the external identity provider and upserted on first
// sight; admins additionally carry a password hash for the back-office login.
type User struct {
	ID           string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProviderUID  string `gorm:"size:128;uniqueIndex" json:"provider_uid"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:100;not null;uniqueIndex"`
	Phone        string `gorm:"size:20"`
	Photo        string `gorm:"size:255"`
	PasswordHash string `gorm:"size:255"`
	Role         string `gorm:"size:20;default:'customer';not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
