package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = 1
	OrderStatusProcessing = 2
	OrderStatusShipped    = 3
	OrderStatusDelivered  = 4
	OrderStatusCancelled  = 5
)

const (
	PaymentMethodCOD   = "cod"
	PaymentMethodBkash = "bkash"
)

const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

var ErrInvalidTransition = errors.New("invalid order status transition")

var OrderStatusLabels = map[int]string{
	OrderStatusPending:    "Pending",
	OrderStatusProcessing: "Processing",
	OrderStatusShipped:    "Shipped",
	OrderStatusDelivered:  "Delivered",
	OrderStatusCancelled:  "Cancelled",
}

type Order struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID    string    `gorm:"size:36;index"`
	User      User      `gorm:"foreignKey:UserID"`
	OrderCode string    `gorm:"size:255;unique;not null" json:"order_code"`
	OrderDate time.Time `gorm:"not null" json:"order_date"`

	CustomerName    string `gorm:"size:255;not null"`
	CustomerEmail   string `gorm:"size:100;not null"`
	CustomerPhone   string `gorm:"size:20;not null"`
	ShippingAddress string `gorm:"type:text;not null"`
	ShippingArea    string `gorm:"size:100;not null"`

	OrderItems  []OrderItem
	Subtotal    decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	GrandTotal  decimal.Decimal `gorm:"type:decimal(16,2);not null"`

	PaymentMethod  string `gorm:"size:20;not null"`
	PaymentStatus  string `gorm:"size:20;default:'unpaid'"`
	BkashPaymentID string `gorm:"size:255;index"`
	BkashTrxID     string `gorm:"size:255"`

	Status       int `gorm:"default:1"`
	ProcessingAt *time.Time
	ShippedAt    *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

// CanTransition reports whether the status machine allows moving to the
// target status. Forward moves go one step at a time; cancelled is reachable
// from any non-terminal state; delivered and cancelled are terminal.
func (o *Order) CanTransition(target int) bool {
	switch target {
	case OrderStatusProcessing:
		return o.Status == OrderStatusPending
	case OrderStatusShipped:
		return o.Status == OrderStatusProcessing
	case OrderStatusDelivered:
		return o.Status == OrderStatusShipped
	case OrderStatusCancelled:
		return o.Status != OrderStatusDelivered && o.Status != OrderStatusCancelled
	default:
		return false
	}
}

// Transition applies a guarded status change and stamps the matching
// timestamp field. The caller persists the order afterwards.
func (o *Order) Transition(target int, at time.Time) error {
	if !o.CanTransition(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition,
			OrderStatusLabels[o.Status], OrderStatusLabels[target])
	}

	o.Status = target
	switch target {
	case OrderStatusProcessing:
		o.ProcessingAt = &at
	case OrderStatusShipped:
		o.ShippedAt = &at
	case OrderStatusDelivered:
		o.DeliveredAt = &at
	case OrderStatusCancelled:
		o.CancelledAt = &at
	}
	return nil
}

func (o *Order) StatusLabel() string {
	return OrderStatusLabels[o.Status]
}
