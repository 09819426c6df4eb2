package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/repositories"
	"gorm.io/gorm"
)

type OrderService struct {
	db          *gorm.DB
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepositoryImpl
}

func NewOrderService(db *gorm.DB, orderRepo repositories.OrderRepository, productRepo repositories.ProductRepositoryImpl) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// TransitionStatus applies a guarded status change. Cancelling an order that
// has not shipped releases its reserved stock in the same transaction.
func (s *OrderService) TransitionStatus(ctx context.Context, orderID string, target int) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %s not found", orderID)
	}

	restock := target == models.OrderStatusCancelled && order.Status != models.OrderStatusShipped

	if err := order.Transition(target, time.Now()); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if restock {
			for _, item := range order.OrderItems {
				if err := s.productRepo.IncrementStock(ctx, tx, item.ProductID, item.Qty); err != nil {
					return fmt.Errorf("failed to restock %s: %w", item.ProductID, err)
				}
			}
		}
		return tx.Save(order).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("OrderService.TransitionStatus: order %s moved to %s", order.OrderCode, order.StatusLabel())
	return order, nil
}
